package market_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foliomarket/folio-go/errdefs"
	"github.com/foliomarket/folio-go/integrity"
	"github.com/foliomarket/folio-go/ledger"
	"github.com/foliomarket/folio-go/market"
	"github.com/foliomarket/folio-go/state"
)

type emittedEvent struct {
	name    string
	payload []byte
}

// fakeInvocation is a direct-write invocation for engine unit tests.
// Commit atomicity is covered by the runtime package tests.
type fakeInvocation struct {
	caller    string
	transient map[string][]byte
	base      state.Store
	events    []emittedEvent
}

func newFakeInvocation(caller string) *fakeInvocation {
	return &fakeInvocation{
		caller:    caller,
		transient: make(map[string][]byte),
		base:      state.NewInmemStore(),
	}
}

func (f *fakeInvocation) Public() state.Store {
	return state.WithPrefix(f.base, []byte("/public/"))
}

func (f *fakeInvocation) Private(partition string) state.Store {
	return state.WithPrefix(f.base, []byte("/private/"+partition+"/"))
}

func (f *fakeInvocation) Caller() string {
	return f.caller
}

func (f *fakeInvocation) Transient() map[string][]byte {
	return f.transient
}

func (f *fakeInvocation) EmitEvent(name string, payload []byte) {
	f.events = append(f.events, emittedEvent{name: name, payload: payload})
}

// stageDocument places a private document in the seller's partition.
func stageDocument(t *testing.T, inv *fakeInvocation, seller, docID, title, data string, price uint64) string {
	t.Helper()
	ctx := context.Background()

	hash := integrity.Digest([]byte(data))
	doc := &market.PrivateDocument{
		ID:       docID,
		Title:    title,
		Data:     data,
		DataHash: hash,
		Price:    price,
	}
	dat, err := marshalDoc(doc)
	require.NoError(t, err)
	require.NoError(t, inv.Private(seller).Put(ctx, []byte(docID), dat))
	return hash
}

func listStaged(t *testing.T, inv *fakeInvocation, seller, docID, title, data string, price uint64) *market.Listing {
	t.Helper()
	hash := stageDocument(t, inv, seller, docID, title, data, price)
	listing, err := market.ListDocument(context.Background(), inv, market.ListParams{
		DocID:  docID,
		Title:  title,
		Hash:   hash,
		Data:   data,
		Price:  price,
		Seller: seller,
	})
	require.NoError(t, err)
	return listing
}

func TestListDocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInvocation("Org1MSP")

	listing := listStaged(t, inv, "Org1MSP", "D1", "white paper", "contents of D1", 10)
	require.Equal(t, "D1", listing.ID)
	require.Equal(t, "Org1MSP", listing.Seller)

	listings, err := market.AllListings(ctx, inv)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	require.Equal(t, listing, listings[0])

	require.Len(t, inv.events, 1)
	require.Equal(t, market.EventDocumentAdded, inv.events[0].name)
}

func TestListDocumentMissingPrivate(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInvocation("Org1MSP")

	_, err := market.ListDocument(ctx, inv, market.ListParams{
		DocID:  "D1",
		Title:  "white paper",
		Hash:   integrity.Digest([]byte("data")),
		Data:   "data",
		Price:  10,
		Seller: "Org1MSP",
	})
	require.True(t, errdefs.IsNotFound(err))

	// nothing may be listed
	listings, err := market.AllListings(ctx, inv)
	require.NoError(t, err)
	require.Empty(t, listings)
}

func TestListDocumentForgedHash(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInvocation("Org1MSP")
	stageDocument(t, inv, "Org1MSP", "D1", "white paper", "real contents", 10)

	_, err := market.ListDocument(ctx, inv, market.ListParams{
		DocID:  "D1",
		Title:  "white paper",
		Hash:   integrity.Digest([]byte("something else entirely")),
		Data:   "real contents",
		Price:  10,
		Seller: "Org1MSP",
	})
	require.True(t, errdefs.IsIntegrityMismatch(err))
	require.Empty(t, inv.events)
}

func TestListDocumentRejectsReservedDocID(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInvocation("Org1MSP")
	require.NoError(t, ledger.Set(ctx, inv.Public(), "Org2MSP", 100))

	// a docID shaped like a balance key must not clobber the balance record
	docID := "balance_Org2MSP"
	hash := stageDocument(t, inv, "Org1MSP", docID, "sneaky", "contents", 10)
	_, err := market.ListDocument(ctx, inv, market.ListParams{
		DocID:  docID,
		Title:  "sneaky",
		Hash:   hash,
		Data:   "contents",
		Price:  10,
		Seller: "Org1MSP",
	})
	require.True(t, errdefs.IsValidation(err))

	bal, err := ledger.Get(ctx, inv.Public(), "Org2MSP")
	require.NoError(t, err)
	require.Equal(t, uint64(100), bal)

	// likewise for the purchase record keyspace
	docID = "purchase_D1"
	hash = stageDocument(t, inv, "Org1MSP", docID, "sneaky", "contents", 10)
	_, err = market.ListDocument(ctx, inv, market.ListParams{
		DocID:  docID,
		Title:  "sneaky",
		Hash:   hash,
		Data:   "contents",
		Price:  10,
		Seller: "Org1MSP",
	})
	require.True(t, errdefs.IsValidation(err))

	records, err := market.AllPurchaseRecords(ctx, inv)
	require.NoError(t, err)
	require.Empty(t, records)
	require.Empty(t, inv.events)
}

func TestListDocumentOverwrite(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInvocation("Org1MSP")

	listStaged(t, inv, "Org1MSP", "D1", "v1", "contents v1", 10)
	listStaged(t, inv, "Org1MSP", "D1", "v2", "contents v2", 12)

	listings, err := market.AllListings(ctx, inv)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	require.Equal(t, "v2", listings[0].Title)
	require.Equal(t, uint64(12), listings[0].Price)
}

func TestBuyDocumentScenario(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInvocation("Org2MSP")

	listStaged(t, inv, "Org1MSP", "D1", "white paper", "contents of D1", 10)
	require.NoError(t, ledger.Set(ctx, inv.Public(), "Org2MSP", 15))

	record, err := market.BuyDocument(ctx, inv, "D1", "Org2MSP")
	require.NoError(t, err)
	require.Equal(t, "D1", record.DocID)
	require.Equal(t, "Org1MSP", record.Seller)
	require.Equal(t, "Org2MSP", record.Buyer)
	require.Equal(t, uint64(10), record.Price)

	buyerBal, err := ledger.Get(ctx, inv.Public(), "Org2MSP")
	require.NoError(t, err)
	sellerBal, err := ledger.Get(ctx, inv.Public(), "Org1MSP")
	require.NoError(t, err)
	require.Equal(t, uint64(5), buyerBal)
	require.Equal(t, uint64(10), sellerBal)
	require.Equal(t, uint64(15), buyerBal+sellerBal)

	// D1 absent from listings
	listings, err := market.AllListings(ctx, inv)
	require.NoError(t, err)
	require.Empty(t, listings)

	// one purchase record for D1
	records, err := market.AllPurchaseRecords(ctx, inv)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, record, records[0])

	// document handed to the buyer's partition
	doc, err := market.GetDocument(ctx, inv, "D1")
	require.NoError(t, err)
	require.Equal(t, "contents of D1", doc.Data)
	require.Equal(t, record.Hash, doc.DataHash)

	require.Len(t, inv.events, 2)
	require.Equal(t, market.EventDocumentPurchased, inv.events[1].name)
}

func TestBuyDocumentInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInvocation("Org2MSP")

	listStaged(t, inv, "Org1MSP", "D1", "white paper", "contents of D1", 10)
	require.NoError(t, ledger.Set(ctx, inv.Public(), "Org2MSP", 5))

	_, err := market.BuyDocument(ctx, inv, "D1", "Org2MSP")
	require.True(t, errdefs.IsInsufficientFunds(err))

	// listing still present, balances unchanged
	listings, err := market.AllListings(ctx, inv)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	buyerBal, err := ledger.Get(ctx, inv.Public(), "Org2MSP")
	require.NoError(t, err)
	require.Equal(t, uint64(5), buyerBal)
	sellerBal, err := ledger.Get(ctx, inv.Public(), "Org1MSP")
	require.NoError(t, err)
	require.Equal(t, uint64(0), sellerBal)
}

func TestBuyDocumentNotFound(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInvocation("Org2MSP")

	_, err := market.BuyDocument(ctx, inv, "missing", "Org2MSP")
	require.True(t, errdefs.IsNotFound(err))
}

func TestBuyDocumentHashGate(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInvocation("Org2MSP")

	listing := listStaged(t, inv, "Org1MSP", "D1", "white paper", "contents of D1", 10)
	require.NoError(t, ledger.Set(ctx, inv.Public(), "Org2MSP", 15))

	// tamper with the listed data behind the engine's back
	listing.Data = "tampered contents"
	dat, err := marshalDoc(listing)
	require.NoError(t, err)
	require.NoError(t, inv.Public().Put(ctx, []byte("D1"), dat))

	_, err = market.BuyDocument(ctx, inv, "D1", "Org2MSP")
	require.True(t, errdefs.IsIntegrityMismatch(err))

	// the listing is delisted and the buyer is left whole
	listings, err := market.AllListings(ctx, inv)
	require.NoError(t, err)
	require.Empty(t, listings)

	buyerBal, err := ledger.Get(ctx, inv.Public(), "Org2MSP")
	require.NoError(t, err)
	require.Equal(t, uint64(15), buyerBal)
	sellerBal, err := ledger.Get(ctx, inv.Public(), "Org1MSP")
	require.NoError(t, err)
	require.Equal(t, uint64(0), sellerBal)

	// no purchase record, no private copy, no purchase event
	records, err := market.AllPurchaseRecords(ctx, inv)
	require.NoError(t, err)
	require.Empty(t, records)
	_, err = market.GetDocument(ctx, inv, "D1")
	require.True(t, errdefs.IsNotFound(err))
	require.Len(t, inv.events, 1)
}

func TestPurchaseRecordsDistinct(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInvocation("Org2MSP")
	require.NoError(t, ledger.Set(ctx, inv.Public(), "Org2MSP", 100))

	ids := []string{"D1", "D2", "D3"}
	for _, id := range ids {
		listStaged(t, inv, "Org1MSP", id, "doc "+id, "contents of "+id, 10)
		_, err := market.BuyDocument(ctx, inv, id, "Org2MSP")
		require.NoError(t, err)
	}

	records, err := market.AllPurchaseRecords(ctx, inv)
	require.NoError(t, err)
	require.Len(t, records, len(ids))

	seen := make(map[string]struct{})
	for _, record := range records {
		_, dup := seen[record.DocID]
		require.False(t, dup, "duplicate record for %s", record.DocID)
		seen[record.DocID] = struct{}{}
	}
}

func TestUpdateBalanceNoValidation(t *testing.T) {
	ctx := context.Background()
	inv := newFakeInvocation("Org1MSP")

	require.NoError(t, market.UpdateBalance(ctx, inv, "Org1MSP", 42))
	bal, err := market.GetBalance(ctx, inv, "Org1MSP")
	require.NoError(t, err)
	require.Equal(t, uint64(42), bal)
}
