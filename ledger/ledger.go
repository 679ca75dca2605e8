// Package ledger tracks per-party balances in a state space.
//
// Balances are stored as decimal strings under balance_<party> and are
// never allowed to go negative: Debit checks before writing.
package ledger

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/foliomarket/folio-go/errdefs"
	"github.com/foliomarket/folio-go/state"
)

// KeyPrefix is the state key prefix for balance records.
const KeyPrefix = "balance_"

// Key returns the state key for a party balance.
func Key(party string) []byte {
	return []byte(KeyPrefix + party)
}

// Parse parses a caller-supplied amount string.
func Parse(field, s string) (uint64, error) {
	amount, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &errdefs.ValidationError{Field: field, Reason: "not a non-negative integer"}
	}
	return amount, nil
}

// Format formats an amount as its decimal string form.
func Format(amount uint64) string {
	return strconv.FormatUint(amount, 10)
}

func checkParty(party string) error {
	if party == "" {
		return &errdefs.ValidationError{Field: "party", Reason: "must not be empty"}
	}
	return nil
}

// Get returns the balance of a party, 0 if unset.
func Get(ctx context.Context, st state.Store, party string) (uint64, error) {
	if err := checkParty(party); err != nil {
		return 0, err
	}

	val, err := st.Get(ctx, Key(party))
	if err != nil {
		return 0, errors.Wrap(err, "get balance")
	}
	if len(val) == 0 {
		return 0, nil
	}

	amount, err := strconv.ParseUint(string(val), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "corrupt balance record for %s", party)
	}
	return amount, nil
}

// Set writes the balance of a party unconditionally.
func Set(ctx context.Context, st state.Store, party string, amount uint64) error {
	if err := checkParty(party); err != nil {
		return err
	}

	return st.Put(ctx, Key(party), []byte(Format(amount)))
}

// Credit adds amount to the party balance and returns the new balance.
// Fails with ValidationError if the balance would overflow.
func Credit(ctx context.Context, st state.Store, party string, amount uint64) (uint64, error) {
	cur, err := Get(ctx, st, party)
	if err != nil {
		return 0, err
	}
	if amount > ^uint64(0)-cur {
		return 0, &errdefs.ValidationError{Field: "amount", Reason: "balance overflow"}
	}

	next := cur + amount
	if err := Set(ctx, st, party, next); err != nil {
		return 0, err
	}
	return next, nil
}

// Debit subtracts amount from the party balance and returns the new balance.
// Fails with InsufficientFundsError if the balance would go negative.
func Debit(ctx context.Context, st state.Store, party string, amount uint64) (uint64, error) {
	cur, err := Get(ctx, st, party)
	if err != nil {
		return 0, err
	}
	if cur < amount {
		return 0, &errdefs.InsufficientFundsError{Party: party, Balance: cur, Needed: amount}
	}

	next := cur - amount
	if err := Set(ctx, st, party, next); err != nil {
		return 0, err
	}
	return next, nil
}

// Transfer moves amount from one party to another. Both sides are applied
// within the caller's invocation, so the host commit keeps them together.
func Transfer(ctx context.Context, st state.Store, from, to string, amount uint64) error {
	if err := checkParty(to); err != nil {
		return err
	}
	if _, err := Debit(ctx, st, from, amount); err != nil {
		return err
	}
	if _, err := Credit(ctx, st, to, amount); err != nil {
		return err
	}
	return nil
}
