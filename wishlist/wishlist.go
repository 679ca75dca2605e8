// Package wishlist implements the reactive buyer: an observer that watches
// DocumentAdded events and submits a purchase for documents on its list.
//
// The watcher is an external collaborator of the ledger core. The list is
// owned by the caller and handed in at construction; a purchase failure is
// logged and dropped, ending only that one attempt.
package wishlist

import (
	"context"
	"encoding/json"

	"github.com/foliomarket/folio-go/contract"
	"github.com/foliomarket/folio-go/logctx"
	"github.com/foliomarket/folio-go/market"
	"github.com/foliomarket/folio-go/runtime"
)

// Watcher buys wished-for documents as they are listed.
type Watcher struct {
	rt    *runtime.Runtime
	buyer string
	want  map[string]struct{}
}

// NewWatcher builds a watcher for the given buyer and document IDs.
func NewWatcher(rt *runtime.Runtime, buyer string, docIDs []string) *Watcher {
	want := make(map[string]struct{}, len(docIDs))
	for _, id := range docIDs {
		want[id] = struct{}{}
	}
	return &Watcher{rt: rt, buyer: buyer, want: want}
}

// Run watches for DocumentAdded events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	events := w.rt.Bus().Subscribe(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return ctx.Err()
			}
			w.handle(ctx, ev.Name, ev.Payload)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, name string, payload []byte) {
	if name != market.EventDocumentAdded {
		return
	}

	le := logctx.GetLogEntry(ctx).WithField("buyer", w.buyer)
	listing := &market.Listing{}
	if err := json.Unmarshal(payload, listing); err != nil {
		le.WithError(err).Warn("dropping malformed event payload")
		return
	}
	if _, ok := w.want[listing.ID]; !ok {
		return
	}

	le = le.WithField("doc-id", listing.ID)
	le.Info("wished document listed, purchasing")
	_, err := w.rt.Submit(
		ctx,
		w.buyer,
		contract.OpBuyDocument,
		[]string{listing.ID, w.buyer},
		nil,
	)
	if err != nil {
		le.WithError(err).Warn("wishlist purchase failed")
		return
	}

	delete(w.want, listing.ID)
	le.Info("wishlist purchase complete")
}
