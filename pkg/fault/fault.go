// Package fault models the error payloads returned by the GSX web
// service. The service emits faults in two XML shapes without any
// discriminating signal: classic SOAP faultcode/faultstring pairs and
// application-level code/message pairs. Both shapes are first-class
// here and a single document may carry several faults of either kind.
package fault

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Record is one (code, message) pair from a fault payload.
type Record struct {
	Code    string
	Message string
}

// Fault is an application fault raised by the service, holding one or
// more records in document order. It implements error.
type Fault struct {
	records []Record
}

// New constructs a Fault from a single code/message pair.
func New(code, message string) *Fault {
	return &Fault{records: []Record{{Code: code, Message: message}}}
}

// Parse extracts all faults from a fault document. It accumulates
// every faultcode/faultstring pair and every code/message pair found
// anywhere in the document, positionally and in document order. A
// document yielding no recognizable code is itself an error: a
// partially populated Fault would hide the real failure.
func Parse(data []byte) (*Fault, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("fault: unparsable payload: %w", err)
	}

	f := &Fault{}
	f.collect(doc, "faultcode", "faultstring")
	f.collect(doc, "code", "message")

	if len(f.records) == 0 {
		return nil, fmt.Errorf("fault: no fault code in payload")
	}
	return f, nil
}

// collect pairs the texts of codeTag and msgTag elements by document
// position. The service guarantees a 1:1 positional pairing; when the
// counts disagree the unmatched codes keep an empty message rather
// than being dropped.
func (f *Fault) collect(doc *etree.Document, codeTag, msgTag string) {
	codes := doc.FindElements("//" + codeTag)
	msgs := doc.FindElements("//" + msgTag)

	for i, c := range codes {
		rec := Record{Code: strings.TrimSpace(c.Text())}
		if i < len(msgs) {
			rec.Message = strings.TrimSpace(msgs[i].Text())
		}
		f.records = append(f.records, rec)
	}
}

// Code returns the primary (first) fault code.
func (f *Fault) Code() string {
	if len(f.records) == 0 {
		return ""
	}
	return f.records[0].Code
}

// Records returns all fault records in document order.
func (f *Fault) Records() []Record { return f.records }

// Errors returns a code-to-message mapping over all records.
func (f *Fault) Errors() map[string]string {
	m := make(map[string]string, len(f.records))
	for _, r := range f.records {
		m[r.Code] = r.Message
	}
	return m
}

// Error returns all fault messages joined in document order.
func (f *Fault) Error() string {
	msgs := make([]string, 0, len(f.records))
	for _, r := range f.records {
		if r.Message != "" {
			msgs = append(msgs, r.Message)
		}
	}
	return strings.Join(msgs, " ")
}
