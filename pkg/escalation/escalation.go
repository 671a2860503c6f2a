// Package escalation implements GSX general escalations.
package escalation

import (
	"context"

	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/field"
	"github.com/servicetools/go-gsxws/pkg/objectify"
)

// Escalation is a general escalation to be created or updated.
type Escalation struct {
	sub client.Submitter
	bag *field.Bag
}

// New creates an empty Escalation.
func New(sub client.Submitter) *Escalation {
	return &Escalation{sub: sub, bag: field.New("asp")}
}

// Set adds an escalation field (notes, issue type, attachments and so
// on).
func (e *Escalation) Set(name string, value any) error {
	return e.bag.Set(name, value)
}

// Create files a new general escalation and returns its confirmation.
func (e *Escalation) Create(ctx context.Context) (*objectify.Node, error) {
	return e.run(ctx, "CreateGeneralEscalation")
}

// Update amends an existing escalation (depot users only).
func (e *Escalation) Update(ctx context.Context) (*objectify.Node, error) {
	return e.run(ctx, "UpdateGeneralEscalation")
}

func (e *Escalation) run(ctx context.Context, op string) (*objectify.Node, error) {
	nodes, err := e.sub.Submit(ctx, client.Request{
		Operation:   op,
		PayloadName: "escalationRequest",
		ResponseTag: "escalationConfirmation",
		Payload:     e.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}
