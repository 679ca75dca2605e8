package wishlist_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/foliomarket/folio-go/contract"
	"github.com/foliomarket/folio-go/integrity"
	"github.com/foliomarket/folio-go/market"
	"github.com/foliomarket/folio-go/runtime"
	"github.com/foliomarket/folio-go/state"
	"github.com/foliomarket/folio-go/wishlist"
)

const (
	sellerID = "Org1MSP"
	buyerID  = "Org2MSP"
)

func submit(t *testing.T, rt *runtime.Runtime, party, op string, args []string, transient map[string][]byte) {
	t.Helper()
	_, err := rt.Submit(context.Background(), party, op, args, transient)
	require.NoError(t, err)
}

func TestWatcherBuysWishedDocument(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt := runtime.NewRuntime(state.NewInmemStore(), contract.NewTable())
	submit(t, rt, buyerID, contract.OpAddBalance, nil,
		map[string][]byte{market.TransientAmount: []byte("20")})

	watcher := wishlist.NewWatcher(rt, buyerID, []string{"D1"})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = watcher.Run(ctx)
	}()

	// stage and list: D2 is not wished for, D1 is
	for _, id := range []string{"D2", "D1"} {
		data := "contents of " + id
		submit(t, rt, sellerID, contract.OpAddDocument, nil, map[string][]byte{
			market.TransientDocID:    []byte(id),
			market.TransientDocTitle: []byte("doc " + id),
			market.TransientDocData:  []byte(data),
			market.TransientPrice:    []byte("10"),
		})
		submit(t, rt, sellerID, contract.OpAddDocumentToMarketplace,
			[]string{id, "doc " + id, integrity.Digest([]byte(data)), data, "10", sellerID}, nil)
	}

	// the watcher purchase is asynchronous
	require.Eventually(t, func() bool {
		result, err := rt.Evaluate(context.Background(), buyerID, contract.OpGetBalance, nil)
		return err == nil && string(result) == "10"
	}, 3*time.Second, 10*time.Millisecond)

	result, err := rt.Evaluate(context.Background(), buyerID, contract.OpGetAllDocumentsInMarketplace, nil)
	require.NoError(t, err)
	require.Contains(t, string(result), `"id":"D2"`)
	require.NotContains(t, string(result), `"id":"D1"`)

	cancel()
	<-done
}

func TestWatcherSurvivesFailedPurchase(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt := runtime.NewRuntime(state.NewInmemStore(), contract.NewTable())

	// buyer has no funds: the purchase fails, the watcher keeps running
	watcher := wishlist.NewWatcher(rt, buyerID, []string{"D1"})
	go func() { _ = watcher.Run(ctx) }()

	data := "contents of D1"
	submit(t, rt, sellerID, contract.OpAddDocument, nil, map[string][]byte{
		market.TransientDocID:    []byte("D1"),
		market.TransientDocTitle: []byte("doc"),
		market.TransientDocData:  []byte(data),
		market.TransientPrice:    []byte("10"),
	})
	submit(t, rt, sellerID, contract.OpAddDocumentToMarketplace,
		[]string{"D1", "doc", integrity.Digest([]byte(data)), data, "10", sellerID}, nil)

	// fund the buyer and relist: the watcher retries on the fresh event
	submit(t, rt, buyerID, contract.OpAddBalance, nil,
		map[string][]byte{market.TransientAmount: []byte("20")})
	submit(t, rt, sellerID, contract.OpAddDocumentToMarketplace,
		[]string{"D1", "doc", integrity.Digest([]byte(data)), data, "10", sellerID}, nil)

	require.Eventually(t, func() bool {
		result, err := rt.Evaluate(context.Background(), buyerID, contract.OpGetBalance, nil)
		return err == nil && string(result) == "10"
	}, 3*time.Second, 10*time.Millisecond)
}
