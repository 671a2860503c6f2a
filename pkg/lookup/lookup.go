// Package lookup implements the GSX lookup operations: parts, repair,
// invoice and component-check searches.
package lookup

import (
	"context"
	"fmt"

	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/field"
	"github.com/servicetools/go-gsxws/pkg/objectify"
)

// Lookup accumulates search criteria and runs lookup operations
// against a submitter.
type Lookup struct {
	sub client.Submitter
	bag *field.Bag
}

// New creates an empty Lookup.
func New(sub client.Submitter) *Lookup {
	return &Lookup{sub: sub, bag: field.New("asp")}
}

// Set adds a search criterion. Values are encoded per the wire
// conventions, so dates and booleans may be passed natively.
func (l *Lookup) Set(name string, value any) error {
	return l.bag.Set(name, value)
}

// Repairs runs the Repair Lookup, which mirrors the front-end repair
// search and returns up to 2500 repairs matching the criteria.
func (l *Lookup) Repairs(ctx context.Context) ([]*objectify.Node, error) {
	return l.run(ctx, "RepairLookup", "lookupResponseData")
}

// Parts runs the Parts Lookup, for part and part-pricing data by
// part number, config code, EEE code, serial number and similar
// attributes.
func (l *Lookup) Parts(ctx context.Context) ([]*objectify.Node, error) {
	l.bag.SetPrefix("core")
	return l.run(ctx, "PartsLookup", "parts")
}

// Invoices runs the Invoice ID Lookup, returning invoices generated
// in the last 24 hours.
func (l *Lookup) Invoices(ctx context.Context) ([]*objectify.Node, error) {
	return l.run(ctx, "InvoiceIDLookup", "lookupResponseData")
}

// InvoiceDetails downloads the invoice PDF for the invoiceID
// criterion. The invoiceData field of the result is replaced with the
// path of the materialized file.
func (l *Lookup) InvoiceDetails(ctx context.Context) (*objectify.Node, string, error) {
	nodes, err := l.run(ctx, "InvoiceDetailsLookup", "lookupResponseData")
	if err != nil {
		return nil, "", err
	}

	result := nodes[0]
	data := result.Get("invoiceData")
	if data == nil {
		return nil, "", fmt.Errorf("lookup: no invoiceData in response")
	}
	path, err := field.WriteAttachment("invoiceData", data.Text())
	if err != nil {
		return nil, "", &field.DecodeError{Field: "invoiceData", Err: err}
	}
	return result, path, nil
}

// ComponentCheck submits repair information and reports whether the
// repair needs component serial number verification. parts become the
// repeated orderLines elements of the request.
func (l *Lookup) ComponentCheck(ctx context.Context, parts []*field.Bag) ([]*objectify.Node, error) {
	if len(parts) > 0 {
		if err := l.bag.Set("orderLines", parts); err != nil {
			return nil, err
		}
	}
	return l.sub.Submit(ctx, client.Request{
		Operation:   "ComponentCheck",
		PayloadName: "repairData",
		ResponseTag: "componentCheckDetails",
		Payload:     l.bag,
	})
}

func (l *Lookup) run(ctx context.Context, op, responseTag string) ([]*objectify.Node, error) {
	return l.sub.Submit(ctx, client.Request{
		Operation:   op,
		PayloadName: "lookupRequestData",
		ResponseTag: responseTag,
		Payload:     l.bag,
	})
}
