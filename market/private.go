package market

import (
	"context"

	"github.com/foliomarket/folio-go/errdefs"
	"github.com/foliomarket/folio-go/hostapi"
	"github.com/foliomarket/folio-go/integrity"
	"github.com/foliomarket/folio-go/ledger"
	"github.com/foliomarket/folio-go/logctx"
)

// Transient input field names for the private-store operations. Document
// content and amounts travel as transient data so they never appear in the
// public transaction log.
const (
	TransientDocID    = "docID"
	TransientDocTitle = "docTitle"
	TransientDocData  = "docData"
	TransientPrice    = "price"
	TransientAmount   = "amount"
)

func transientField(inv hostapi.Invocation, field string) (string, error) {
	val, ok := inv.Transient()[field]
	if !ok {
		return "", &errdefs.ValidationError{Field: field, Reason: "missing transient field"}
	}
	return string(val), nil
}

// AddBalance credits the caller's public balance by the transient amount.
func AddBalance(ctx context.Context, inv hostapi.Invocation) error {
	amountStr, err := transientField(inv, TransientAmount)
	if err != nil {
		return err
	}
	amount, err := ledger.Parse(TransientAmount, amountStr)
	if err != nil {
		return err
	}

	next, err := ledger.Credit(ctx, inv.Public(), inv.Caller(), amount)
	if err != nil {
		return err
	}

	logctx.GetLogEntry(ctx).
		WithField("party", inv.Caller()).
		WithField("balance", next).
		Info("balance credited")
	return nil
}

// Balance returns the caller's public balance as a decimal string, "0" if
// unset.
func Balance(ctx context.Context, inv hostapi.Invocation) (string, error) {
	amount, err := ledger.Get(ctx, inv.Public(), inv.Caller())
	if err != nil {
		return "", err
	}
	return ledger.Format(amount), nil
}

// AddDocument stores a document in the caller's private partition, sealing
// it with a digest computed from the supplied data. All fields arrive as
// transient input.
func AddDocument(ctx context.Context, inv hostapi.Invocation) (*PrivateDocument, error) {
	docID, err := transientField(inv, TransientDocID)
	if err != nil {
		return nil, err
	}
	if docID == "" {
		return nil, &errdefs.ValidationError{Field: TransientDocID, Reason: "must not be empty"}
	}
	title, err := transientField(inv, TransientDocTitle)
	if err != nil {
		return nil, err
	}
	data, err := transientField(inv, TransientDocData)
	if err != nil {
		return nil, err
	}
	priceStr, err := transientField(inv, TransientPrice)
	if err != nil {
		return nil, err
	}
	price, err := ledger.Parse(TransientPrice, priceStr)
	if err != nil {
		return nil, err
	}

	doc := &PrivateDocument{
		ID:       docID,
		Title:    title,
		Data:     data,
		DataHash: integrity.Digest([]byte(data)),
		Price:    price,
	}
	dat, err := marshalRecord(doc)
	if err != nil {
		return nil, err
	}
	if err := inv.Private(inv.Caller()).Put(ctx, []byte(docID), dat); err != nil {
		return nil, err
	}

	logctx.GetLogEntry(ctx).
		WithField("doc-id", docID).
		WithField("party", inv.Caller()).
		Info("private document stored")
	return doc, nil
}

// UpdateDocument replaces the data of a document in the caller's private
// partition. The stored digest is only recomputed when updateHash is set;
// otherwise it intentionally goes stale relative to the new data.
func UpdateDocument(ctx context.Context, inv hostapi.Invocation, docID, newData string, updateHash bool) (*PrivateDocument, error) {
	part := inv.Private(inv.Caller())
	dat, err := part.Get(ctx, []byte(docID))
	if err != nil {
		return nil, err
	}
	if len(dat) == 0 {
		return nil, &errdefs.NotFoundError{Kind: "document", Key: docID}
	}

	doc := &PrivateDocument{}
	if err := unmarshalRecord(dat, doc); err != nil {
		return nil, err
	}

	doc.Data = newData
	if updateHash {
		doc.DataHash = integrity.Digest([]byte(newData))
	}

	out, err := marshalRecord(doc)
	if err != nil {
		return nil, err
	}
	if err := part.Put(ctx, []byte(docID), out); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocument reads a document from the caller's private partition.
func GetDocument(ctx context.Context, inv hostapi.Invocation, docID string) (*PrivateDocument, error) {
	dat, err := inv.Private(inv.Caller()).Get(ctx, []byte(docID))
	if err != nil {
		return nil, err
	}
	if len(dat) == 0 {
		return nil, &errdefs.NotFoundError{Kind: "document", Key: docID}
	}

	doc := &PrivateDocument{}
	if err := unmarshalRecord(dat, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// AllDocuments returns every document in the caller's private partition,
// ordered by key.
func AllDocuments(ctx context.Context, inv hostapi.Invocation) ([]*PrivateDocument, error) {
	kvs, err := inv.Private(inv.Caller()).RangeScan(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	docs := make([]*PrivateDocument, 0, len(kvs))
	for _, kv := range kvs {
		doc := &PrivateDocument{}
		if err := unmarshalRecord(kv.Value, doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
