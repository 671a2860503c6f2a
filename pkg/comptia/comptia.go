// Package comptia fetches and caches the CompTIA symptom code tables
// used when creating or updating repairs.
package comptia

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/servicetools/go-gsxws/pkg/cache"
	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/field"
)

// cacheKey stores the fetched code table; it changes rarely, so the
// default TTL applies.
const cacheKey = "comptia-codes"

// Modifiers maps CompTIA modifier codes to their descriptions.
var Modifiers = map[string]string{
	"A": "Not Applicable",
	"B": "Continuous",
	"C": "Intermittent",
	"D": "Fails After Warm Up",
	"E": "Environmental",
	"F": "Configuration: Peripheral",
	"G": "Damaged",
}

// Groups maps CompTIA component group codes to their descriptions.
var Groups = map[string]string{
	"0": "General",
	"1": "Visual",
	"2": "Displays",
	"3": "Mass Storage",
	"4": "Input Devices",
	"5": "Boards",
	"6": "Power",
	"7": "Printer",
	"8": "Multi-function Device",
	"9": "Communication Devices",
	"A": "Share",
	"B": "iPhone",
	"E": "iPod",
	"F": "iPad",
}

// Codes maps component group code to a code-to-description table.
type Codes map[string]map[string]string

// CompTIA fetches symptom codes, keeping a cached copy when a store
// is provided.
type CompTIA struct {
	sub   client.Submitter
	store *cache.Store
	codes Codes
}

// New creates a CompTIA lookup. store may be nil to always hit the
// service.
func New(sub client.Submitter, store *cache.Store) *CompTIA {
	return &CompTIA{sub: sub, store: store}
}

// Fetch retrieves the CompTIA groups and codes, preferring the cached
// copy.
func (c *CompTIA) Fetch(ctx context.Context) (Codes, error) {
	if c.store != nil {
		raw, ok, err := c.store.Get(cacheKey)
		if err != nil {
			return nil, err
		}
		if ok {
			var codes Codes
			if err := json.Unmarshal([]byte(raw), &codes); err == nil {
				c.codes = codes
				return codes, nil
			}
		}
	}

	nodes, err := c.sub.Submit(ctx, client.Request{
		Operation:   "ComptiaCodeLookup",
		PayloadName: "ComptiaCodeLookupRequest",
		ResponseTag: "comptiaInfo",
		Payload:     field.New("glob"),
	})
	if err != nil {
		return nil, err
	}

	codes := Codes{}
	for _, group := range nodes[0].All("comptiaGroup") {
		id := group.GetString("comptiaGroupId")
		if id == "" {
			continue
		}
		table := map[string]string{}
		for _, info := range group.All("comptiaCodeInfo") {
			kids := info.Children()
			if len(kids) >= 2 {
				table[kids[0].String()] = kids[1].String()
			}
		}
		codes[id] = table
	}

	if c.store != nil {
		if raw, err := json.Marshal(codes); err == nil {
			if err := c.store.Set(cacheKey, string(raw)); err != nil {
				return nil, err
			}
		}
	}

	c.codes = codes
	return codes, nil
}

// Symptoms returns the fetched symptom codes for one component group,
// or every group when component is empty.
func (c *CompTIA) Symptoms(component string) (Codes, error) {
	if c.codes == nil {
		return nil, fmt.Errorf("comptia: codes not fetched")
	}
	if component == "" {
		return c.codes, nil
	}
	table, ok := c.codes[component]
	if !ok {
		return nil, fmt.Errorf("comptia: unknown component group %q", component)
	}
	return Codes{component: table}, nil
}
