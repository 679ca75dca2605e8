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
		Name:  "doc",
		Usage: "private document store operations",
		Subcommands: []cli.Command{
			{
				Name:      "add",
				Usage:     "stage a document in the private partition",
				ArgsUsage: "[docID] [title] [data] [price]",
				Action:    cmdDocAdd,
			},
			{
				Name:      "get",
				Usage:     "print a private document",
				ArgsUsage: "[docID]",
				Action:    cmdDocGet,
			},
			{
				Name:      "update",
				Usage:     "replace the data of a private document",
				ArgsUsage: "[docID] [newData] [updateHash]",
				Action:    cmdDocUpdate,
			},
			{
				Name:   "list",
				Usage:  "print all private documents",
				Action: cmdDocList,
			},
		},
	})
}

func cmdDocAdd(c *cli.Context) error {
	args := c.Args()
	if len(args) != 4 {
		return errors.New("usage: doc add [docID] [title] [data] [price]")
	}

	ident, err := GetIdentity()
	if err != nil {
		return err
	}
	rt, err := GetRuntime()
	if err != nil {
		return err
	}

	// document fields ride in transient input, off the public log
	result, err := rt.Submit(
		rootContext,
		ident,
		contract.OpAddDocument,
		nil,
		map[string][]byte{
			market.TransientDocID:    []byte(args[0]),
			market.TransientDocTitle: []byte(args[1]),
			market.TransientDocData:  []byte(args[2]),
			market.TransientPrice:    []byte(args[3]),
		},
	)
	if err != nil {
		return err
	}

	logctx.GetLogEntry(rootContext).
		WithField("document", string(result)).
		Info("private document stored")
	return nil
}

func cmdDocGet(c *cli.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return errors.New("usage: doc get [docID]")
	}

	ident, err := GetIdentity()
	if err != nil {
		return err
	}
	rt, err := GetRuntime()
	if err != nil {
		return err
	}

	result, err := rt.Evaluate(rootContext, ident, contract.OpGetDocument, []string{args[0]})
	if err != nil {
		return err
	}

	logctx.GetLogEntry(rootContext).
		WithField("document", string(result)).
		Info("private document")
	return nil
}

func cmdDocUpdate(c *cli.Context) error {
	args := c.Args()
	if len(args) != 3 {
		return errors.New("usage: doc update [docID] [newData] [updateHash]")
	}

	ident, err := GetIdentity()
	if err != nil {
		return err
	}
	rt, err := GetRuntime()
	if err != nil {
		return err
	}

	result, err := rt.Submit(
		rootContext,
		ident,
		contract.OpUpdateDocument,
		[]string{args[0], args[1], args[2]},
		nil,
	)
	if err != nil {
		return err
	}

	logctx.GetLogEntry(rootContext).
		WithField("document", string(result)).
		Info("private document updated")
	return nil
}

func cmdDocList(c *cli.Context) error {
	ident, err := GetIdentity()
	if err != nil {
		return err
	}
	rt, err := GetRuntime()
	if err != nil {
		return err
	}

	result, err := rt.Evaluate(rootContext, ident, contract.OpGetAllDocuments, nil)
	if err != nil {
		return err
	}

	logctx.GetLogEntry(rootContext).
		WithField("documents", string(result)).
		Info("private documents")
	return nil
}
