package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/urfave/negroni/v3"

	"github.com/dtelecom/channel-auth/pkg/config"
	"github.com/dtelecom/channel-auth/pkg/logger"
	"github.com/dtelecom/channel-auth/version"
)

type AuthServer struct {
	config       *config.Config
	tokenService *TokenService
	httpServer   *http.Server
	running      bool
	doneChan     chan struct{}
}

func NewAuthServer(conf *config.Config, tokenService *TokenService) *AuthServer {
	middlewares := []negroni.Handler{
		// always the first
		negroni.NewRecovery(),
	}

	mux := http.NewServeMux()
	mux.Handle("/api/node/token", tokenService)
	mux.HandleFunc("/health", healthCheck)

	bindAddress := ""
	if len(conf.BindAddresses) > 0 {
		bindAddress = conf.BindAddresses[0]
	}

	return &AuthServer{
		config:       conf,
		tokenService: tokenService,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", bindAddress, conf.Port),
			Handler: configureMiddlewares(mux, middlewares...),
		},
	}
}

func (s *AuthServer) IsRunning() bool {
	return s.running
}

func (s *AuthServer) Start() error {
	if s.running {
		return errors.New("already running")
	}

	s.doneChan = make(chan struct{}, 1)

	// ensure we could listen
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}

	go func() {
		logger.Infow("starting channel auth service", "address", s.httpServer.Addr,
			"livekitHost", s.config.LiveKit.Host)
		_ = s.httpServer.Serve(ln)
	}()

	s.running = true

	<-s.doneChan

	// wait for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	_ = s.httpServer.Shutdown(ctx)
	s.tokenService.Stop()

	return nil
}

func (s *AuthServer) Stop() {
	s.running = false
	s.doneChan <- struct{}{}
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "up",
		"version": version.Version,
	})
}

func configureMiddlewares(handler http.Handler, middlewares ...negroni.Handler) *negroni.Negroni {
	n := negroni.New()
	for _, m := range middlewares {
		n.Use(m)
	}
	n.UseHandler(handler)
	return n
}
