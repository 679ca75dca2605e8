package main

import (
	"context"

	"github.com/urfave/cli"

	"github.com/foliomarket/folio-go/logctx"
	"github.com/foliomarket/folio-go/wishlist"
)

func init() {
	folioCommands = append(folioCommands, cli.Command{
		Name:      "watch",
		Usage:     "watch for listings and auto-buy wishlist documents",
		ArgsUsage: "[docID...]",
		Action:    cmdWatch,
	})
}

func cmdWatch(c *cli.Context) error {
	conf, err := GetConfig()
	if err != nil {
		return err
	}
	rt, err := GetRuntime()
	if err != nil {
		return err
	}

	// CLI args extend the wishlist seeded from the config file.
	want := append([]string{}, conf.Wishlist...)
	want = append(want, c.Args()...)

	le := logctx.GetLogEntry(rootContext)
	le.WithField("wishlist", want).Info("watching for listings")

	watcher := wishlist.NewWatcher(rt, conf.Identity, want)
	if err := watcher.Run(rootContext); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
