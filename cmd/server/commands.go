package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtelecom/channel-auth/pkg/config"
	"github.com/dtelecom/channel-auth/pkg/utils"
)

func generateKeys(_ *cli.Context) error {
	apiKey := utils.NewGuid(utils.APIKeyPrefix)
	secret := utils.RandomSecret()
	fmt.Println("API Key: ", apiKey)
	fmt.Println("API Secret: ", secret)
	return nil
}

func getConfig(c *cli.Context) (*config.Config, error) {
	confString, err := getConfigString(c.String("config"), c.String("config-body"))
	if err != nil {
		return nil, err
	}

	strictMode := !c.Bool("disable-strict-config")
	return config.NewConfig(confString, strictMode, c)
}

func getConfigString(configFile string, inConfigBody string) (string, error) {
	if inConfigBody != "" || configFile == "" {
		return inConfigBody, nil
	}

	outConfigBody, err := os.ReadFile(configFile)
	if err != nil {
		return "", err
	}
	return string(outConfigBody), nil
}
