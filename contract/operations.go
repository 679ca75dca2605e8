package contract

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"

	"github.com/foliomarket/folio-go/errdefs"
	"github.com/foliomarket/folio-go/hostapi"
	"github.com/foliomarket/folio-go/ledger"
	"github.com/foliomarket/folio-go/market"
)

// Client-facing operation names.
const (
	OpAddDocumentToMarketplace     = "addDocumentToMarketplace"
	OpBuyDocument                  = "buyDocument"
	OpGetAllDocumentsInMarketplace = "getAllDocumentsInMarketplace"
	OpGetAllPurchaseRecords        = "getAllPurchaseRecords"
	OpAddBalance                   = "AddBalance"
	OpAddDocument                  = "AddDocument"
	OpGetBalance                   = "GetBalance"
	OpUpdateDocument               = "UpdateDocument"
	OpGetAllDocuments              = "GetAllDocuments"
	OpGetDocument                  = "GetDocument"
)

func operations() []*Operation {
	return []*Operation{
		{
			Name:     OpAddDocumentToMarketplace,
			Args:     []string{"docID", "title", "dataHash", "data", "price", "seller"},
			Mutating: true,
			Handler:  handleAddDocumentToMarketplace,
		},
		{
			Name:     OpBuyDocument,
			Args:     []string{"docID", "buyer"},
			Mutating: true,
			Handler:  handleBuyDocument,
		},
		{
			Name:    OpGetAllDocumentsInMarketplace,
			Handler: handleGetAllDocumentsInMarketplace,
		},
		{
			Name:    OpGetAllPurchaseRecords,
			Handler: handleGetAllPurchaseRecords,
		},
		{
			Name:     OpAddBalance,
			Mutating: true,
			Handler:  handleAddBalance,
		},
		{
			Name:     OpAddDocument,
			Mutating: true,
			Handler:  handleAddDocument,
		},
		{
			Name:    OpGetBalance,
			Handler: handleGetBalance,
		},
		{
			Name:     OpUpdateDocument,
			Args:     []string{"docID", "newDocData", "updateHash"},
			Mutating: true,
			Handler:  handleUpdateDocument,
		},
		{
			Name:    OpGetAllDocuments,
			Handler: handleGetAllDocuments,
		},
		{
			Name:    OpGetDocument,
			Args:    []string{"docID"},
			Handler: handleGetDocument,
		},
	}
}

func marshalResult(v interface{}) ([]byte, error) {
	dat, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshal result")
	}
	return dat, nil
}

func handleAddDocumentToMarketplace(ctx context.Context, inv hostapi.Invocation, args []string) ([]byte, error) {
	price, err := ledger.Parse("price", args[4])
	if err != nil {
		return nil, err
	}

	listing, err := market.ListDocument(ctx, inv, market.ListParams{
		DocID:  args[0],
		Title:  args[1],
		Hash:   args[2],
		Data:   args[3],
		Price:  price,
		Seller: args[5],
	})
	if err != nil {
		return nil, err
	}
	return marshalResult(listing)
}

func handleBuyDocument(ctx context.Context, inv hostapi.Invocation, args []string) ([]byte, error) {
	record, err := market.BuyDocument(ctx, inv, args[0], args[1])
	if err != nil {
		return nil, err
	}
	return marshalResult(record)
}

func handleGetAllDocumentsInMarketplace(ctx context.Context, inv hostapi.Invocation, args []string) ([]byte, error) {
	listings, err := market.AllListings(ctx, inv)
	if err != nil {
		return nil, err
	}
	return marshalResult(listings)
}

func handleGetAllPurchaseRecords(ctx context.Context, inv hostapi.Invocation, args []string) ([]byte, error) {
	records, err := market.AllPurchaseRecords(ctx, inv)
	if err != nil {
		return nil, err
	}
	return marshalResult(records)
}

func handleAddBalance(ctx context.Context, inv hostapi.Invocation, args []string) ([]byte, error) {
	if err := market.AddBalance(ctx, inv); err != nil {
		return nil, err
	}
	return nil, nil
}

func handleAddDocument(ctx context.Context, inv hostapi.Invocation, args []string) ([]byte, error) {
	doc, err := market.AddDocument(ctx, inv)
	if err != nil {
		return nil, err
	}
	return marshalResult(doc)
}

func handleGetBalance(ctx context.Context, inv hostapi.Invocation, args []string) ([]byte, error) {
	balance, err := market.Balance(ctx, inv)
	if err != nil {
		return nil, err
	}
	return []byte(balance), nil
}

func handleUpdateDocument(ctx context.Context, inv hostapi.Invocation, args []string) ([]byte, error) {
	updateHash, err := strconv.ParseBool(args[2])
	if err != nil {
		return nil, &errdefs.ValidationError{Field: "updateHash", Reason: "not a boolean"}
	}

	doc, err := market.UpdateDocument(ctx, inv, args[0], args[1], updateHash)
	if err != nil {
		return nil, err
	}
	return marshalResult(doc)
}

func handleGetAllDocuments(ctx context.Context, inv hostapi.Invocation, args []string) ([]byte, error) {
	docs, err := market.AllDocuments(ctx, inv)
	if err != nil {
		return nil, err
	}
	return marshalResult(docs)
}

func handleGetDocument(ctx context.Context, inv hostapi.Invocation, args []string) ([]byte, error) {
	doc, err := market.GetDocument(ctx, inv, args[0])
	if err != nil {
		return nil, err
	}
	return marshalResult(doc)
}
