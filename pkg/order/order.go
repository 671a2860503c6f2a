// Package order implements GSX stocking orders.
package order

import (
	"context"
	"fmt"

	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/field"
	"github.com/servicetools/go-gsxws/pkg/objectify"
)

// StockingOrder accumulates order lines for a parts stocking order.
// The service account comes from the session; a purchase order number
// and ship-to code are required.
type StockingOrder struct {
	sub   client.Submitter
	bag   *field.Bag
	lines []*field.Bag
}

// New creates a StockingOrder.
func New(sub client.Submitter, purchaseOrderNumber, shipTo string) (*StockingOrder, error) {
	o := &StockingOrder{sub: sub, bag: field.New("asp")}
	if err := o.bag.Set("purchaseOrderNumber", purchaseOrderNumber); err != nil {
		return nil, err
	}
	if err := o.bag.Set("shipToCode", shipTo); err != nil {
		return nil, err
	}
	return o, nil
}

// AddPart appends an order line for quantity units of the given part.
func (o *StockingOrder) AddPart(partNumber string, quantity int) error {
	if !field.Validate(partNumber, "partNumber") {
		return fmt.Errorf("order: invalid part number %q", partNumber)
	}
	line := field.New("asp")
	if err := line.Set("partNumber", partNumber); err != nil {
		return err
	}
	if err := line.Set("quantity", quantity); err != nil {
		return err
	}
	o.lines = append(o.lines, line)
	return nil
}

// Submit places the order. The response carries the confirmation
// number, the quoted parts with net price and availability, sub-total,
// tax and total.
func (o *StockingOrder) Submit(ctx context.Context) (*objectify.Node, error) {
	if len(o.lines) == 0 {
		return nil, fmt.Errorf("order: no order lines")
	}
	if err := o.bag.Set("orderLines", o.lines); err != nil {
		return nil, err
	}

	nodes, err := o.sub.Submit(ctx, client.Request{
		Operation:   "CreateStockingOrder",
		PayloadName: "orderData",
		ResponseTag: "orderConfirmation",
		Payload:     o.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}
