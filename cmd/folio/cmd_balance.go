package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/foliomarket/folio-go/contract"
	"github.com/foliomarket/folio-go/logctx"
	"github.com/foliomarket/folio-go/market"
)

func init() {
	folioCommands = append(folioCommands, cli.Command{
		Name:  "balance",
		Usage: "balance operations for the configured identity",
		Subcommands: []cli.Command{
			{
				Name:      "add",
				Usage:     "credit the identity balance",
				ArgsUsage: "[amount]",
				Action:    cmdBalanceAdd,
			},
			{
				Name:   "get",
				Usage:  "print the identity balance",
				Action: cmdBalanceGet,
			},
		},
	})
}

func cmdBalanceAdd(c *cli.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return errors.New("usage: balance add [amount]")
	}

	ident, err := GetIdentity()
	if err != nil {
		return err
	}
	rt, err := GetRuntime()
	if err != nil {
		return err
	}

	// the amount rides in transient input, off the public log
	_, err = rt.Submit(
		rootContext,
		ident,
		contract.OpAddBalance,
		nil,
		map[string][]byte{market.TransientAmount: []byte(args[0])},
	)
	if err != nil {
		return err
	}

	logctx.GetLogEntry(rootContext).
		WithField("party", ident).
		Info("balance credited")
	return nil
}

func cmdBalanceGet(c *cli.Context) error {
	ident, err := GetIdentity()
	if err != nil {
		return err
	}
	rt, err := GetRuntime()
	if err != nil {
		return err
	}

	result, err := rt.Evaluate(rootContext, ident, contract.OpGetBalance, nil)
	if err != nil {
		return err
	}

	logctx.GetLogEntry(rootContext).
		WithField("party", ident).
		WithField("balance", string(result)).
		Info("current balance")
	return nil
}
