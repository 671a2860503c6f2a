// Package part implements service part lookup and part images.
package part

import (
	"context"
	"fmt"

	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/field"
	"github.com/servicetools/go-gsxws/pkg/lookup"
	"github.com/servicetools/go-gsxws/pkg/objectify"
	"github.com/servicetools/go-gsxws/pkg/product"
)

// imageURL is the knowledge-base image service pattern for part
// images.
const imageURL = "https://km.support.apple.com.edgekey.net/kb/imageService.jsp?image=%s_350_350.gif"

// Part is a service part addressed by part number.
type Part struct {
	sub    client.Submitter
	number string
}

// New creates a Part, validating the part number shape.
func New(sub client.Submitter, number string) (*Part, error) {
	if !field.Validate(number, "partNumber") {
		return nil, fmt.Errorf("part: invalid part number %q", number)
	}
	return &Part{sub: sub, number: number}, nil
}

// Number returns the part number.
func (p *Part) Number() string { return p.number }

// Lookup fetches part and pricing details.
func (p *Part) Lookup(ctx context.Context) ([]*objectify.Node, error) {
	l := lookup.New(p.sub)
	if err := l.Set("partNumber", p.number); err != nil {
		return nil, err
	}
	return l.Parts(ctx)
}

// FetchImage downloads the part's product image into a temporary file
// and returns its path.
func (p *Part) FetchImage(ctx context.Context) (string, error) {
	return product.FetchImage(ctx, fmt.Sprintf(imageURL, p.number))
}
