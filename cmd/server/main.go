package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dtelecom/channel-auth/pkg/logger"
	"github.com/dtelecom/channel-auth/pkg/service"
	"github.com/dtelecom/channel-auth/version"
)

var baseFlags = []cli.Flag{
	&cli.StringSliceFlag{
		Name:    "bind",
		Usage:   "IP address to listen on",
		EnvVars: []string{"AUTH_SERVICE_HOST"},
	},
	&cli.StringFlag{
		Name:  "config",
		Usage: "path to config file",
	},
	&cli.StringFlag{
		Name:    "config-body",
		Usage:   "config in YAML, typically passed in as an environment var in a container",
		EnvVars: []string{"CHANNEL_AUTH_CONFIG"},
	},
	&cli.UintFlag{
		Name:    "port",
		Usage:   "port to listen on",
		EnvVars: []string{"AUTH_SERVICE_PORT"},
	},
	&cli.StringFlag{
		Name:    "supabase-url",
		Usage:   "URL of the Supabase project",
		EnvVars: []string{"SUPABASE_URL"},
	},
	&cli.StringFlag{
		Name:    "supabase-service-key",
		Usage:   "Supabase service-role key",
		EnvVars: []string{"SUPABASE_SERVICE_ROLE_KEY"},
	},
	&cli.StringFlag{
		Name:    "livekit-host",
		Usage:   "LiveKit host advertised to media clients",
		EnvVars: []string{"LIVEKIT_HOST"},
	},
	&cli.StringFlag{
		Name:    "livekit-api-key",
		Usage:   "API key to sign access tokens with",
		EnvVars: []string{"LIVEKIT_API_KEY"},
	},
	&cli.StringFlag{
		Name:    "livekit-api-secret",
		Usage:   "API secret to sign access tokens with",
		EnvVars: []string{"LIVEKIT_API_SECRET"},
	},
	&cli.StringFlag{
		Name:  "key-file",
		Usage: "path to file that contains API keys/secrets",
	},
	&cli.StringFlag{
		Name:    "keys",
		Usage:   "api keys (key: secret\\n)",
		EnvVars: []string{"LIVEKIT_KEYS"},
	},
	&cli.BoolFlag{
		Name:  "dev",
		Usage: "sets log-level to debug and console formatter. insecure for production",
	},
	&cli.BoolFlag{
		Name:   "disable-strict-config",
		Usage:  "disables strict config parsing",
		Hidden: true,
	},
}

func main() {
	app := &cli.App{
		Name:        "channel-auth",
		Usage:       "Channel access token service for LiveKit",
		Description: "run without subcommands to start the server",
		Version:     version.Version,
		Flags:       baseFlags,
		Action:      startServer,
		Commands: []*cli.Command{
			{
				Name:   "generate-keys",
				Usage:  "generates an API key and secret pair",
				Action: generateKeys,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func startServer(c *cli.Context) error {
	conf, err := getConfig(c)
	if err != nil {
		return err
	}

	if conf.Development {
		logger.InitDevelopment(conf.Logging.Level)
	} else {
		logger.InitProduction(conf.Logging.Level)
	}

	if err := conf.Validate(); err != nil {
		return err
	}

	server, err := service.InitializeServer(conf)
	if err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Infow("exit requested, shutting down", "signal", sig)
		server.Stop()
	}()

	return server.Start()
}
