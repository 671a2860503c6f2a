// Package diag implements the GSX diagnostics operations.
package diag

import (
	"context"
	"fmt"

	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/field"
	"github.com/servicetools/go-gsxws/pkg/objectify"
)

// Diagnostics fetches diagnostic details for a unit, addressed by
// serial number, alternate device ID or diagnostic event number.
type Diagnostics struct {
	sub client.Submitter
	bag *field.Bag
	ios bool
}

// New creates a Diagnostics lookup. The shape of id decides which
// field it is submitted as and whether the iOS diagnostic path is
// taken.
func New(sub client.Submitter, id string) (*Diagnostics, error) {
	name := field.Identify(id)
	switch name {
	case "serialNumber", "alternateDeviceId", "diagnosticEventNumber":
	default:
		return nil, fmt.Errorf("diag: cannot identify %q", id)
	}

	d := &Diagnostics{sub: sub, bag: field.New("glob"), ios: name == "alternateDeviceId"}
	if err := d.bag.Set(name, id); err != nil {
		return nil, err
	}
	return d, nil
}

// Fetch retrieves MRI/CPU diagnostic details from the diagnostic
// repository, or the diagnostic test details for iOS devices.
func (d *Diagnostics) Fetch(ctx context.Context) ([]*objectify.Node, error) {
	op, tag := "FetchRepairDiagnostic", "FetchRepairDiagnosticResponse"
	if d.ios {
		op, tag = "FetchIOSDiagnostic", "diagnosticTestData"
	}
	return d.sub.Submit(ctx, client.Request{
		Operation:   op,
		PayloadName: "lookupRequestData",
		ResponseTag: tag,
		Payload:     d.bag,
	})
}

// Events retrieves all diagnostic event numbers associated with the
// unit.
func (d *Diagnostics) Events(ctx context.Context) ([]*objectify.Node, error) {
	return d.sub.Submit(ctx, client.Request{
		Operation:   "FetchDiagnosticEventNumbers",
		PayloadName: "lookupRequestData",
		ResponseTag: "diagnosticEventNumbers",
		Payload:     d.bag,
	})
}
