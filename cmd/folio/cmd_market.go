package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/foliomarket/folio-go/contract"
	"github.com/foliomarket/folio-go/logctx"
)

func init() {
	folioCommands = append(folioCommands, cli.Command{
		Name:      "enlist",
		Usage:     "list a staged private document for sale",
		ArgsUsage: "[docID] [title] [dataHash] [data] [price]",
		Action:    cmdEnlist,
	})
	folioCommands = append(folioCommands, cli.Command{
		Name:      "buy",
		Usage:     "buy a listed document",
		ArgsUsage: "[docID]",
		Action:    cmdBuy,
	})
	folioCommands = append(folioCommands, cli.Command{
		Name:   "docs",
		Usage:  "print all documents in the marketplace",
		Action: cmdDocs,
	})
	folioCommands = append(folioCommands, cli.Command{
		Name:   "records",
		Usage:  "print all purchase records",
		Action: cmdRecords,
	})
}

func cmdEnlist(c *cli.Context) error {
	args := c.Args()
	if len(args) != 5 {
		return errors.New("usage: enlist [docID] [title] [dataHash] [data] [price]")
	}

	ident, err := GetIdentity()
	if err != nil {
		return err
	}
	rt, err := GetRuntime()
	if err != nil {
		return err
	}

	_, err = rt.Submit(
		rootContext,
		ident,
		contract.OpAddDocumentToMarketplace,
		[]string{args[0], args[1], args[2], args[3], args[4], ident},
		nil,
	)
	if err != nil {
		return err
	}

	logctx.GetLogEntry(rootContext).
		WithField("doc-id", args[0]).
		Info("document added to marketplace")
	return nil
}

func cmdBuy(c *cli.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return errors.New("usage: buy [docID]")
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
		contract.OpBuyDocument,
		[]string{args[0], ident},
		nil,
	)
	if err != nil {
		return err
	}

	logctx.GetLogEntry(rootContext).
		WithField("record", string(result)).
		Info("purchased document from marketplace")
	return nil
}

func cmdDocs(c *cli.Context) error {
	ident, err := GetIdentity()
	if err != nil {
		return err
	}
	rt, err := GetRuntime()
	if err != nil {
		return err
	}

	result, err := rt.Evaluate(rootContext, ident, contract.OpGetAllDocumentsInMarketplace, nil)
	if err != nil {
		return err
	}

	logctx.GetLogEntry(rootContext).
		WithField("documents", string(result)).
		Info("marketplace documents")
	return nil
}

func cmdRecords(c *cli.Context) error {
	ident, err := GetIdentity()
	if err != nil {
		return err
	}
	rt, err := GetRuntime()
	if err != nil {
		return err
	}

	result, err := rt.Evaluate(rootContext, ident, contract.OpGetAllPurchaseRecords, nil)
	if err != nil {
		return err
	}

	logctx.GetLogEntry(rootContext).
		WithField("records", string(result)).
		Info("purchase records")
	return nil
}
