// Package market implements the marketplace ledger engine: public listings,
// atomic integrity-gated purchases, per-party private document stores and
// purchase records.
//
// Every operation runs inside one host invocation and performs no explicit
// locking or rollback: the host commits all writes of an invocation or none
// of them, so a failed operation leaves no partial state behind and is safe
// to retry from scratch.
package market

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Record docType discriminators for public-state entries.
const (
	DocTypeListing  = "listing"
	DocTypePurchase = "purchase"
)

// PurchaseKeyPrefix is the public-state key prefix for purchase records.
const PurchaseKeyPrefix = "purchase_"

// Event names emitted by the engine.
const (
	EventDocumentAdded     = "DocumentAdded"
	EventDocumentPurchased = "DocumentPurchased"
)

// Listing is the public, purchasable representation of a document.
// It exists in public state only while unsold.
type Listing struct {
	DocType string `json:"docType"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Hash    string `json:"hash"`
	Data    string `json:"data"`
	Price   uint64 `json:"price"`
	Seller  string `json:"seller"`
}

// PurchaseRecord is the append-only log entry for a completed purchase.
type PurchaseRecord struct {
	DocType string `json:"docType"`
	DocID   string `json:"docID"`
	Seller  string `json:"seller"`
	Buyer   string `json:"buyer"`
	Price   uint64 `json:"price"`
	Hash    string `json:"hash"`
}

// PrivateDocument is a document held in a party's private partition.
type PrivateDocument struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Data     string `json:"data"`
	DataHash string `json:"dataHash"`
	Price    uint64 `json:"price"`
}

// PurchaseKey returns the public-state key for a purchase record.
func PurchaseKey(docID string) []byte {
	return []byte(PurchaseKeyPrefix + docID)
}

func marshalRecord(v interface{}) ([]byte, error) {
	dat, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshal record")
	}
	return dat, nil
}

func unmarshalRecord(dat []byte, v interface{}) error {
	if err := json.Unmarshal(dat, v); err != nil {
		return errors.Wrap(err, "unmarshal record")
	}
	return nil
}
