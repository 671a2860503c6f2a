// Package returns implements the GSX parts return operations:
// pending returns, return reports, return labels and bulk returns.
//
// Responses from these operations carry file attachments (packing
// lists, proforma documents, return labels) which arrive
// base64-encoded and are materialized to temporary files during
// parsing.
package returns

import (
	"context"
	"fmt"

	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/field"
	"github.com/servicetools/go-gsxws/pkg/objectify"
)

// Return type codes accepted by UpdateParts.
const (
	DeadOnArrival          = 1
	GoodPartReturn         = 2
	ConvertToStock         = 3
	TransferToOutOfWarranty = 4
)

// TypeNames maps return type codes to their descriptions.
var TypeNames = map[int]string{
	DeadOnArrival:           "Dead On Arrival",
	GoodPartReturn:          "Good Part Return",
	ConvertToStock:          "Convert To Stock",
	TransferToOutOfWarranty: "Transfer to Out of Warranty",
}

// Carriers maps GSX carrier codes to carrier names.
var Carriers = map[string]string{
	"XAER":    "Aero 2000",
	"XAIRBEC": "Airborne",
	"XAIRB":   "Airborne",
	"XARM":    "Aramex",
	"XOZP":    "Australia Post",
	"XBAX":    "BAX GLOBAL PTE LTD",
	"XCPW":    "CPW Internal",
	"XCL":     "Citylink",
	"XDHL":    "DHL",
	"XDHLC":   "DHL",
	"XDZNA":   "Danzas-AEI",
	"XEAS":    "EAS",
	"XEGL":    "Eagle ASIA PACIFIC HOLDINGS",
	"XEXXN":   "Exel",
	"XFEDE":   "FedEx",
	"XFDE":    "FedEx Air",
	"XGLS":    "GLS-General Logistics Systems",
	"XHNF":    "H and Friends",
	"XNGLN":   "Nightline",
	"XPL":     "Parceline",
	"XPRLA":   "Purolator",
	"SDS":     "SDS An Post",
	"XSNO":    "Seino Transportation Co. Ltd.",
	"XSTE":    "Star Track Express",
	"XTNT":    "TNT",
	"XUPSN":   "UPS",
	"XUTI":    "UTi (Japan) K.K.",
	"XYMT":    "YAMATO",
}

// Return addresses parts return operations, optionally scoped to a
// return order number.
type Return struct {
	sub client.Submitter
	bag *field.Bag
}

// New creates a Return. orderNumber may be empty for operations that
// search by other criteria.
func New(sub client.Submitter, orderNumber string) *Return {
	r := &Return{sub: sub, bag: field.New("asp")}
	if orderNumber != "" {
		r.bag.Set("returnOrderNumber", orderNumber)
	}
	return r
}

// Set adds a request field.
func (r *Return) Set(name string, value any) error {
	return r.bag.Set(name, value)
}

// Pending lists all parts pending return matching the criteria.
func (r *Return) Pending(ctx context.Context) ([]*objectify.Node, error) {
	return r.sub.Submit(ctx, client.Request{
		Operation:   "PartsPendingReturn",
		PayloadName: "repairData",
		ResponseTag: "partsPendingResponse",
		Payload:     r.bag,
	})
}

// Report lists all parts returned or pending return matching the
// criteria.
func (r *Return) Report(ctx context.Context) ([]*objectify.Node, error) {
	return r.sub.Submit(ctx, client.Request{
		Operation:   "ReturnReport",
		PayloadName: "returnRequestData",
		ResponseTag: "returnResponseData",
		Payload:     r.bag,
	})
}

// Label retrieves the return label for the given part on this return
// order. The label and packing list arrive as attachments; their
// fields hold the materialized file paths.
func (r *Return) Label(ctx context.Context, partNumber string) (*objectify.Node, error) {
	if !field.Validate(partNumber, "partNumber") {
		return nil, fmt.Errorf("returns: invalid part number %q", partNumber)
	}
	if err := r.bag.Set("partNumber", partNumber); err != nil {
		return nil, err
	}
	nodes, err := r.sub.Submit(ctx, client.Request{
		Operation:   "ReturnLabel",
		PayloadName: "ReturnLabelRequest",
		ResponseTag: "returnLabelData",
		Payload:     r.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// RegisterParts creates a bulk return for the given parts and returns
// the bulk return ID together with the packing list attachment.
func (r *Return) RegisterParts(ctx context.Context, parts []*field.Bag) ([]*objectify.Node, error) {
	if err := r.bag.Set("bulkReturnOrder", parts); err != nil {
		return nil, err
	}
	return r.sub.Submit(ctx, client.Request{
		Operation:   "RegisterPartsForBulkReturn",
		PayloadName: "bulkPartsRegistrationRequest",
		ResponseTag: "bulkPartsRegistrationData",
		Payload:     r.bag,
	})
}

// UpdateParts marks parts on a repair confirmation with a return type
// code (see the package constants).
func (r *Return) UpdateParts(ctx context.Context, confirmation string, parts []*field.Bag) ([]*objectify.Node, error) {
	if err := r.bag.Set("repairConfirmationNumber", confirmation); err != nil {
		return nil, err
	}
	if err := r.bag.Set("orderLines", parts); err != nil {
		return nil, err
	}
	return r.sub.Submit(ctx, client.Request{
		Operation:   "PartsReturnUpdate",
		PayloadName: "repairData",
		ResponseTag: "PartsReturnUpdateResponse",
		Payload:     r.bag,
	})
}
