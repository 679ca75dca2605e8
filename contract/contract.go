// Package contract maps client-facing operation names to typed handlers.
//
// The operation set is closed: every name resolves to a handler with a
// declared positional argument list, and anything else fails with a
// ValidationError before it can touch state.
package contract

import (
	"context"

	"github.com/foliomarket/folio-go/errdefs"
	"github.com/foliomarket/folio-go/hostapi"
)

// HandlerFunc executes one operation against an invocation.
type HandlerFunc func(ctx context.Context, inv hostapi.Invocation, args []string) ([]byte, error)

// Operation is one entry of the dispatch table.
type Operation struct {
	// Name is the client-facing operation name.
	Name string
	// Args names the required positional arguments, in order.
	Args []string
	// Mutating marks operations that write state. Non-mutating operations
	// may be evaluated without committing.
	Mutating bool
	// Handler executes the operation.
	Handler HandlerFunc
}

// Table is the closed set of dispatchable operations.
type Table struct {
	ops map[string]*Operation
}

// NewTable builds the dispatch table with the full marketplace operation set.
func NewTable() *Table {
	t := &Table{ops: make(map[string]*Operation)}
	for _, op := range operations() {
		t.register(op)
	}
	return t
}

func (t *Table) register(op *Operation) {
	t.ops[op.Name] = op
}

// Lookup resolves an operation by name.
func (t *Table) Lookup(name string) (*Operation, error) {
	op, ok := t.ops[name]
	if !ok {
		return nil, &errdefs.ValidationError{Field: "operation", Reason: "unknown operation " + name}
	}
	return op, nil
}

// Invoke resolves and executes an operation, enforcing argument arity.
func (t *Table) Invoke(ctx context.Context, inv hostapi.Invocation, name string, args []string) ([]byte, error) {
	op, err := t.Lookup(name)
	if err != nil {
		return nil, err
	}
	if len(args) != len(op.Args) {
		return nil, &errdefs.ValidationError{
			Field:  "args",
			Reason: name + " takes exactly " + argList(op.Args),
		}
	}
	return op.Handler(ctx, inv, args)
}

func argList(args []string) string {
	if len(args) == 0 {
		return "no arguments"
	}

	out := "("
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += a
	}
	return out + ")"
}
