package market

import (
	"context"
	"strings"

	"github.com/foliomarket/folio-go/errdefs"
	"github.com/foliomarket/folio-go/hostapi"
	"github.com/foliomarket/folio-go/integrity"
	"github.com/foliomarket/folio-go/ledger"
	"github.com/foliomarket/folio-go/logctx"
)

// ListParams are the arguments to ListDocument.
type ListParams struct {
	DocID  string
	Title  string
	Hash   string
	Data   string
	Price  uint64
	Seller string
}

// ListDocument writes a public listing for a document staged in the seller's
// private partition and emits a DocumentAdded event.
//
// The supplied hash is checked against both the private copy and the listed
// data before anything is written, so a forged hash is rejected at listing
// time rather than surfacing as a purchase failure later.
//
// Listing the same docID twice overwrites the previous listing.
func ListDocument(ctx context.Context, inv hostapi.Invocation, p ListParams) (*Listing, error) {
	if p.DocID == "" {
		return nil, &errdefs.ValidationError{Field: "docID", Reason: "must not be empty"}
	}
	// Listings share the public keyspace with balance and purchase records.
	// A docID carrying a reserved prefix would overwrite them.
	if strings.HasPrefix(p.DocID, ledger.KeyPrefix) ||
		strings.HasPrefix(p.DocID, PurchaseKeyPrefix) {
		return nil, &errdefs.ValidationError{Field: "docID", Reason: "reserved key prefix"}
	}

	privDat, err := inv.Private(p.Seller).Get(ctx, []byte(p.DocID))
	if err != nil {
		return nil, err
	}
	if len(privDat) == 0 {
		return nil, &errdefs.NotFoundError{Kind: "document", Key: p.DocID}
	}

	priv := &PrivateDocument{}
	if err := unmarshalRecord(privDat, priv); err != nil {
		return nil, err
	}
	if err := integrity.Verify(p.DocID, []byte(priv.Data), p.Hash); err != nil {
		return nil, err
	}
	if err := integrity.Verify(p.DocID, []byte(p.Data), p.Hash); err != nil {
		return nil, err
	}

	listing := &Listing{
		DocType: DocTypeListing,
		ID:      p.DocID,
		Title:   p.Title,
		Hash:    p.Hash,
		Data:    p.Data,
		Price:   p.Price,
		Seller:  p.Seller,
	}
	dat, err := marshalRecord(listing)
	if err != nil {
		return nil, err
	}
	if err := inv.Public().Put(ctx, []byte(p.DocID), dat); err != nil {
		return nil, err
	}

	inv.EmitEvent(EventDocumentAdded, dat)
	logctx.GetLogEntry(ctx).
		WithField("doc-id", p.DocID).
		WithField("seller", p.Seller).
		WithField("price", p.Price).
		Info("document listed")
	return listing, nil
}

// BuyDocument executes an atomic purchase: it verifies the listing's content
// digest, moves funds from buyer to seller, hands the document to the
// buyer's private partition, removes the listing and appends a purchase
// record.
//
// On a digest mismatch no balance moves: the listing is deleted and the
// invocation fails with IntegrityMismatchError, leaving the buyer whole.
func BuyDocument(ctx context.Context, inv hostapi.Invocation, docID, buyer string) (*PurchaseRecord, error) {
	le := logctx.GetLogEntry(ctx).WithField("doc-id", docID).WithField("buyer", buyer)
	pub := inv.Public()

	listingDat, err := pub.Get(ctx, []byte(docID))
	if err != nil {
		return nil, err
	}
	if len(listingDat) == 0 {
		return nil, &errdefs.NotFoundError{Kind: "listing", Key: docID}
	}

	listing := &Listing{}
	if err := unmarshalRecord(listingDat, listing); err != nil {
		return nil, err
	}

	balance, err := ledger.Get(ctx, pub, buyer)
	if err != nil {
		return nil, err
	}
	if balance < listing.Price {
		return nil, &errdefs.InsufficientFundsError{
			Party:   buyer,
			Balance: balance,
			Needed:  listing.Price,
		}
	}

	if err := integrity.Verify(docID, []byte(listing.Data), listing.Hash); err != nil {
		// A tampered listing must not survive the attempt. The buyer is
		// left whole: no debit happened, so there is nothing to refund.
		if delErr := pub.Delete(ctx, []byte(docID)); delErr != nil {
			return nil, delErr
		}
		le.Warn("listing failed integrity check, delisting")
		return nil, err
	}

	if err := ledger.Transfer(ctx, pub, buyer, listing.Seller, listing.Price); err != nil {
		return nil, err
	}

	privDoc := &PrivateDocument{
		ID:       listing.ID,
		Title:    listing.Title,
		Data:     listing.Data,
		DataHash: listing.Hash,
		Price:    listing.Price,
	}
	privDat, err := marshalRecord(privDoc)
	if err != nil {
		return nil, err
	}
	if err := inv.Private(buyer).Put(ctx, []byte(docID), privDat); err != nil {
		return nil, err
	}

	if err := pub.Delete(ctx, []byte(docID)); err != nil {
		return nil, err
	}

	record := &PurchaseRecord{
		DocType: DocTypePurchase,
		DocID:   docID,
		Seller:  listing.Seller,
		Buyer:   buyer,
		Price:   listing.Price,
		Hash:    listing.Hash,
	}
	recordDat, err := marshalRecord(record)
	if err != nil {
		return nil, err
	}
	if err := pub.Put(ctx, PurchaseKey(docID), recordDat); err != nil {
		return nil, err
	}

	inv.EmitEvent(EventDocumentPurchased, recordDat)
	le.WithField("seller", listing.Seller).
		WithField("price", listing.Price).
		Info("document purchased")
	return record, nil
}

// AllListings returns every public listing, ordered by key.
func AllListings(ctx context.Context, inv hostapi.Invocation) ([]*Listing, error) {
	kvs, err := inv.Public().RangeScan(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	listings := make([]*Listing, 0, len(kvs))
	for _, kv := range kvs {
		key := string(kv.Key)
		if strings.HasPrefix(key, PurchaseKeyPrefix) ||
			strings.HasPrefix(key, ledger.KeyPrefix) {
			continue
		}

		listing := &Listing{}
		if err := unmarshalRecord(kv.Value, listing); err != nil {
			return nil, err
		}
		if listing.DocType != DocTypeListing {
			continue
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// AllPurchaseRecords returns every purchase record, ordered by key.
func AllPurchaseRecords(ctx context.Context, inv hostapi.Invocation) ([]*PurchaseRecord, error) {
	kvs, err := inv.Public().RangeScan(
		ctx,
		[]byte(PurchaseKeyPrefix),
		prefixScanEnd(PurchaseKeyPrefix),
	)
	if err != nil {
		return nil, err
	}

	records := make([]*PurchaseRecord, 0, len(kvs))
	for _, kv := range kvs {
		record := &PurchaseRecord{}
		if err := unmarshalRecord(kv.Value, record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// GetBalance returns the public balance of a party, 0 if unset.
func GetBalance(ctx context.Context, inv hostapi.Invocation, party string) (uint64, error) {
	return ledger.Get(ctx, inv.Public(), party)
}

// UpdateBalance writes the public balance of a party. It performs no
// validation beyond key shape: callers own non-negativity.
func UpdateBalance(ctx context.Context, inv hostapi.Invocation, party string, amount uint64) error {
	return ledger.Set(ctx, inv.Public(), party, amount)
}

// prefixScanEnd returns the exclusive scan bound after all keys with prefix,
// nil if no such bound exists.
func prefixScanEnd(prefix string) []byte {
	end := []byte(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
