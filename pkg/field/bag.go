package field

import (
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/servicetools/go-gsxws/pkg/locale"
)

// internalPrefix marks bookkeeping fields that bypass coercion and
// XML serialization. They are set through SetInternal only.
const internalPrefix = "_"

// Bag is an ordered, named collection of wire-encoded fields. The
// zero value is not usable; construct with New.
type Bag struct {
	prefix  string
	formats locale.Formats
	fields  []entry
}

type entry struct {
	name  string
	value any // string, *Bag or []*Bag
}

// Option configures a Bag at construction.
type Option func(*Bag)

// WithFormats overrides the locale formats used to encode dates and
// times stored in the bag.
func WithFormats(f locale.Formats) Option {
	return func(b *Bag) { b.formats = f }
}

// New creates an empty Bag. The namespace prefix is consulted only
// when the bag is the outermost payload of an operation; nested bags
// inherit the enclosing element's namespace.
func New(prefix string, opts ...Option) *Bag {
	f, _ := locale.GetFormats(locale.DefaultLocale)
	b := &Bag{prefix: prefix, formats: f}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Prefix returns the bag's namespace prefix.
func (b *Bag) Prefix() string { return b.prefix }

// SetPrefix replaces the bag's namespace prefix. Some operations live
// in a different namespace than the object that builds them.
func (b *Bag) SetPrefix(prefix string) { b.prefix = prefix }

// Set encodes value per the wire conventions and stores it under
// name, replacing any previous value while keeping the field's
// original position. Nested *Bag and []*Bag values are stored as-is
// and serialized recursively. A value exposing an io.Reader is read
// fully and stored base64-encoded; if the reader has an associated
// name and the bag has no fileName field yet, fileName is set from it.
func (b *Bag) Set(name string, value any) error {
	if strings.HasPrefix(name, internalPrefix) {
		return fmt.Errorf("field: name %q is reserved", name)
	}

	switch v := value.(type) {
	case *Bag:
		b.put(name, v)
		return nil
	case []*Bag:
		b.put(name, v)
		return nil
	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return fmt.Errorf("field: reading %s: %w", name, err)
		}
		b.put(name, base64.StdEncoding.EncodeToString(data))
		if named, ok := v.(interface{ Name() string }); ok {
			if _, exists := b.Get("fileName"); !exists {
				b.put("fileName", filepath.Base(named.Name()))
			}
		}
		return nil
	}

	s, err := Encode(value, b.formats)
	if err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	b.put(name, s)
	return nil
}

// SetInternal stores a bookkeeping value under the reserved prefix,
// bypassing coercion. Internal fields never appear in the serialized
// XML.
func (b *Bag) SetInternal(name string, value any) {
	b.put(internalPrefix+name, value)
}

// Get returns the stored value for name. Encoded fields come back as
// their wire strings.
func (b *Bag) Get(name string) (any, bool) {
	for _, e := range b.fields {
		if e.name == name {
			return e.value, true
		}
	}
	return nil, false
}

// GetInternal returns a bookkeeping value stored with SetInternal.
func (b *Bag) GetInternal(name string) (any, bool) {
	return b.Get(internalPrefix + name)
}

// Delete removes the named field if present.
func (b *Bag) Delete(name string) {
	for i, e := range b.fields {
		if e.name == name {
			b.fields = append(b.fields[:i], b.fields[i+1:]...)
			return
		}
	}
}

// Names returns the field names in insertion order, excluding
// internal fields.
func (b *Bag) Names() []string {
	names := make([]string, 0, len(b.fields))
	for _, e := range b.fields {
		if !strings.HasPrefix(e.name, internalPrefix) {
			names = append(names, e.name)
		}
	}
	return names
}

// Len returns the number of serializable fields.
func (b *Bag) Len() int { return len(b.Names()) }

func (b *Bag) put(name string, value any) {
	for i, e := range b.fields {
		if e.name == name {
			b.fields[i].value = value
			return
		}
	}
	b.fields = append(b.fields, entry{name: name, value: value})
}

// ToXML serializes the bag as an element tree rooted at root. Each
// field becomes a child element in insertion order; nested bags
// serialize recursively and bag lists emit one sibling element per
// item, all sharing the field name as tag. The returned element is a
// snapshot: mutating the bag afterwards does not affect it.
func (b *Bag) ToXML(root string) *etree.Element {
	el := etree.NewElement(root)
	for _, e := range b.fields {
		if strings.HasPrefix(e.name, internalPrefix) {
			continue
		}
		switch v := e.value.(type) {
		case *Bag:
			el.AddChild(v.ToXML(e.name))
		case []*Bag:
			for _, item := range v {
				el.AddChild(item.ToXML(e.name))
			}
		case string:
			child := el.CreateElement(e.name)
			child.SetText(v)
		}
	}
	return el
}
