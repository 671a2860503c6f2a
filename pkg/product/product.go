// Package product implements the GSX product operations: model and
// warranty lookup, diagnostics, iOS activation details and product
// images.
package product

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/diag"
	"github.com/servicetools/go-gsxws/pkg/field"
	"github.com/servicetools/go-gsxws/pkg/lookup"
	"github.com/servicetools/go-gsxws/pkg/objectify"
)

// Product is a serviceable unit, addressed by serial number or
// alternate device ID.
type Product struct {
	sub    client.Submitter
	bag    *field.Bag
	serial string
}

// New creates a Product. id may be a serial number or an alternate
// device ID; its shape decides which field it is submitted as.
func New(sub client.Submitter, id string) (*Product, error) {
	name := field.Identify(id)
	if name != "serialNumber" && name != "alternateDeviceId" {
		return nil, fmt.Errorf("product: %q is not a serial number or device id", id)
	}
	p := &Product{sub: sub, bag: field.New("glob"), serial: id}
	if err := p.bag.Set(name, id); err != nil {
		return nil, err
	}
	return p, nil
}

// Set adds a request field, e.g. part information for a part-level
// warranty check.
func (p *Product) Set(name string, value any) error {
	return p.bag.Set(name, value)
}

// Model fetches the product model: configuration description, product
// line and config code.
func (p *Product) Model(ctx context.Context) (*objectify.Node, error) {
	nodes, err := p.sub.Submit(ctx, client.Request{
		Operation:   "FetchProductModel",
		PayloadName: "productModelRequest",
		ResponseTag: "productModelResponse",
		Payload:     p.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// Warranty retrieves the warranty details shown on the GSX coverage
// screen. With part information set on the product, part-level
// warranty is returned instead of unit-level.
func (p *Product) Warranty(ctx context.Context) (*objectify.Node, error) {
	nodes, err := p.sub.Submit(ctx, client.Request{
		Operation:   "WarrantyStatus",
		PayloadName: "unitDetail",
		ResponseTag: "warrantyDetailInfo",
		Payload:     p.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// Activation fetches the activation details of an iOS device.
func (p *Product) Activation(ctx context.Context) (*objectify.Node, error) {
	nodes, err := p.sub.Submit(ctx, client.Request{
		Operation:   "FetchIOSActivationDetails",
		PayloadName: "FetchIOSActivationDetailsRequest",
		ResponseTag: "activationDetailsInfo",
		Payload:     p.bag,
	})
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// Parts looks up service parts for this product.
func (p *Product) Parts(ctx context.Context) ([]*objectify.Node, error) {
	l := lookup.New(p.sub)
	if err := l.Set("serialNumber", p.serial); err != nil {
		return nil, err
	}
	return l.Parts(ctx)
}

// Repairs looks up repairs filed for this product.
func (p *Product) Repairs(ctx context.Context) ([]*objectify.Node, error) {
	l := lookup.New(p.sub)
	if err := l.Set("serialNumber", p.serial); err != nil {
		return nil, err
	}
	return l.Repairs(ctx)
}

// Diagnostics fetches the diagnostic details for this product. iOS
// devices addressed by alternate device ID take the iOS diagnostic
// path.
func (p *Product) Diagnostics(ctx context.Context) ([]*objectify.Node, error) {
	d, err := diag.New(p.sub, p.serial)
	if err != nil {
		return nil, err
	}
	return d.Fetch(ctx)
}

// FetchImage downloads the product image referenced by a warranty
// response's imageURL into a temporary file and returns its path.
func FetchImage(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("product: no image URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("product: %w", err)
	}
	resp, err := cleanhttp.DefaultClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("product: fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("product: image fetch returned status %d", resp.StatusCode)
	}

	f, err := os.CreateTemp("", "product-image-"+uuid.NewString()+"-*")
	if err != nil {
		return "", fmt.Errorf("product: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("product: writing image: %w", err)
	}
	return f.Name(), nil
}
