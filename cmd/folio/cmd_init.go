package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/foliomarket/folio-go/config"
	"github.com/foliomarket/folio-go/logctx"
)

var initArgs = struct {
	// Identity is the party identity for the new config.
	Identity string
}{}

func init() {
	folioCommands = append(folioCommands, cli.Command{
		Name:   "init",
		Usage:  "write a default node config",
		Action: cmdInit,
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:        "init-identity",
				Usage:       "the party identity to configure",
				Value:       initArgs.Identity,
				Destination: &initArgs.Identity,
			},
		},
	})
}

func cmdInit(c *cli.Context) error {
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		return errors.Errorf("config already exists: %s", configPath)
	}

	conf := config.Default()
	if initArgs.Identity != "" {
		conf.Identity = initArgs.Identity
	}
	if err := conf.Save(configPath); err != nil {
		return err
	}

	logctx.GetLogEntry(rootContext).
		WithField("path", configPath).
		WithField("identity", conf.Identity).
		Info("wrote node config")
	return nil
}
