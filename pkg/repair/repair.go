// Package repair implements the GSX repair operations: creation of
// carry-in and onsite repairs, status and details retrieval, serial
// number updates and completion marking.
package repair

import (
	"context"
	"fmt"
	"strings"

	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/field"
	"github.com/servicetools/go-gsxws/pkg/objectify"
)

// Types maps GSX repair type codes to their descriptions.
var Types = map[string]string{
	"CA": "Carry-In/Non-Replinished",
	"NE": "Return Before Replace",
	"NT": "No Trouble Found",
	"ON": "Onsite (Indirect/Direct)",
	"RR": "Repair Or Replace/Whole Unit Mail-In",
	"WH": "Mail-In",
}

// Repair addresses an existing repair by its dispatch ID and carries
// any additional request fields.
type Repair struct {
	sub        client.Submitter
	bag        *field.Bag
	dispatchID string
}

// New creates a Repair for the given dispatch ID. An empty ID is
// allowed for operations addressed purely by other criteria.
func New(sub client.Submitter, dispatchID string) *Repair {
	r := &Repair{sub: sub, bag: field.New("asp"), dispatchID: dispatchID}
	if dispatchID != "" {
		r.bag.Set("dispatchId", dispatchID)
	}
	return r
}

// Set adds a request field.
func (r *Repair) Set(name string, value any) error {
	return r.bag.Set(name, value)
}

// Status retrieves the repair status for the dispatch ID.
func (r *Repair) Status(ctx context.Context) (*objectify.Node, error) {
	if err := r.bag.Set("repairConfirmationNumbers", r.dispatchID); err != nil {
		return nil, err
	}
	nodes, err := r.sub.Submit(ctx, client.Request{
		Operation:   "RepairStatus",
		PayloadName: "RepairStatusRequest",
		ResponseTag: "repairStatus",
		Payload:     r.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// Details retrieves the extended repair details, including shipment
// information.
func (r *Repair) Details(ctx context.Context) (*objectify.Node, error) {
	r.bag.SetPrefix("core")
	nodes, err := r.sub.Submit(ctx, client.Request{
		Operation:   "RepairDetails",
		PayloadName: "RepairDetailsRequest",
		ResponseTag: "lookupResponseData",
		Payload:     r.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// TrackingURL resolves the carrier tracking URL of a partsInfo entry.
// GSX returns the URL with a literal <<TRKNO>> placeholder for the
// tracking number.
func TrackingURL(part *objectify.Node) string {
	url := part.GetString("carrierURL")
	trk := part.GetString("deliveryTrackingNumber")
	if url == "" || trk == "" {
		return url
	}
	return strings.ReplaceAll(url, "<<TRKNO>>", trk)
}

// MarkComplete marks one or more repair confirmation numbers as
// complete. With no arguments the repair's own dispatch ID is used.
func (r *Repair) MarkComplete(ctx context.Context, numbers ...string) (*objectify.Node, error) {
	value := r.dispatchID
	if len(numbers) > 0 {
		value = strings.Join(numbers, ",")
	}
	if err := r.bag.Set("repairConfirmationNumbers", value); err != nil {
		return nil, err
	}
	nodes, err := r.sub.Submit(ctx, client.Request{
		Operation:   "MarkRepairComplete",
		PayloadName: "MarkRepairCompleteRequest",
		ResponseTag: "MarkRepairCompleteResponse",
		Payload:     r.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// UpdateSerialNumber updates module serial numbers on the repair. Not
// applicable to whole unit replacements; see UpdateKGBSerialNumber.
func (r *Repair) UpdateSerialNumber(ctx context.Context, parts []*field.Bag) (*objectify.Node, error) {
	if err := r.bag.Set("partInfo", parts); err != nil {
		return nil, err
	}
	if r.dispatchID != "" {
		if err := r.bag.Set("repairConfirmationNumber", r.dispatchID); err != nil {
			return nil, err
		}
	}
	nodes, err := r.sub.Submit(ctx, client.Request{
		Operation:   "UpdateSerialNumber",
		PayloadName: "repairData",
		ResponseTag: "repairConfirmation",
		Payload:     r.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// UpdateKGBSerialNumber provides the KGB serial number for a whole
// unit exchange repair in released state.
func (r *Repair) UpdateKGBSerialNumber(ctx context.Context, serial string) (*objectify.Node, error) {
	if err := r.bag.Set("serialNumber", serial); err != nil {
		return nil, err
	}
	if err := r.bag.Set("repairConfirmationNumber", r.dispatchID); err != nil {
		return nil, err
	}
	nodes, err := r.sub.Submit(ctx, client.Request{
		Operation:   "UpdateKGBSerialNumber",
		PayloadName: "UpdateKGBSerialNumberRequest",
		ResponseTag: "UpdateKGBSerialNumberResponse",
		Payload:     r.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// CarryIn is a carry-in repair to be created or updated.
type CarryIn struct {
	*Repair
}

// NewCarryIn creates an empty carry-in repair.
func NewCarryIn(sub client.Submitter) *CarryIn {
	c := &CarryIn{Repair: New(sub, "")}
	c.bag.SetPrefix("emea")
	return c
}

// Create validates the accumulated data on the service side, obtains
// a quote and creates the carry-in repair.
func (c *CarryIn) Create(ctx context.Context) (*objectify.Node, error) {
	nodes, err := c.sub.Submit(ctx, client.Request{
		Operation:   "CreateCarryIn",
		PayloadName: "repairData",
		ResponseTag: "repairConfirmation",
		Payload:     c.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// Update amends an open carry-in repair: part additions/removals and
// notes. The existing fields (which must include the dispatch ID) are
// merged with changes.
func (c *CarryIn) Update(ctx context.Context, changes map[string]any) (*objectify.Node, error) {
	c.bag.SetPrefix("asp")
	for name, value := range changes {
		if err := c.bag.Set(name, value); err != nil {
			return nil, err
		}
	}
	nodes, err := c.sub.Submit(ctx, client.Request{
		Operation:   "UpdateCarryIn",
		PayloadName: "repairData",
		ResponseTag: "repairConfirmation",
		Payload:     c.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// IndirectOnsite is an indirect onsite repair, created when a
// provider performs an onsite-eligible repair at the customer
// location.
type IndirectOnsite struct {
	*Repair
}

// NewIndirectOnsite creates an empty indirect onsite repair.
func NewIndirectOnsite(sub client.Submitter) *IndirectOnsite {
	return &IndirectOnsite{Repair: New(sub, "")}
}

// Create submits the onsite repair. Carry-in and onsite schemas name
// several fields differently; the common spellings are translated
// before submission.
func (o *IndirectOnsite) Create(ctx context.Context) (*objectify.Node, error) {
	renames := map[string]string{
		"shipTo":            "shippingLocation",
		"poNumber":          "purchaseOrderNumber",
		"diagnosedByTechId": "technicianName",
	}
	for from, to := range renames {
		if v, ok := o.bag.Get(from); ok {
			if err := o.bag.Set(to, v); err != nil {
				return nil, err
			}
			o.bag.Delete(from)
		}
	}

	nodes, err := o.sub.Submit(ctx, client.Request{
		Operation:   "CreateIndirectOnsiteRepair",
		PayloadName: "repairData",
		ResponseTag: "repairConfirmation",
		Payload:     o.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// OrderLine builds a repair order line bag from a part number and its
// CompTIA code and modifier.
func OrderLine(partNumber, comptiaCode, comptiaModifier string) (*field.Bag, error) {
	if !field.Validate(partNumber, "partNumber") {
		return nil, fmt.Errorf("repair: invalid part number %q", partNumber)
	}
	b := field.New("asp")
	b.Set("partNumber", partNumber)
	b.Set("comptiaCode", comptiaCode)
	b.Set("comptiaModifier", comptiaModifier)
	return b, nil
}
