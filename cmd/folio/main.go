package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/foliomarket/folio-go/logctx"
)

var rootContext context.Context
var folioCommands []cli.Command
var folioFlags []cli.Flag

func main() {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	le := logrus.NewEntry(log)
	ctx, ctxCancel := context.WithCancel(context.Background())
	defer ctxCancel()

	rootContext = logctx.WithLogEntry(ctx, le)

	app := cli.NewApp()
	app.Name = "folio"
	app.Usage = "document marketplace ledger cli"
	app.HideVersion = true
	app.Commands = folioCommands
	app.Flags = folioFlags
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err.Error())
	}
}
