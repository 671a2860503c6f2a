package diag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/objectify"
)

type fakeSub struct {
	req      client.Request
	response string
}

func (f *fakeSub) Submit(ctx context.Context, req client.Request) ([]*objectify.Node, error) {
	f.req = req
	return objectify.Parse([]byte(f.response), req.ResponseTag)
}

func TestFetchRepairDiagnostic(t *testing.T) {
	sub := &fakeSub{response: `<root><FetchRepairDiagnosticResponse>
<diagnosticTestData><testResult>PASSED</testResult></diagnosticTestData>
</FetchRepairDiagnosticResponse></root>`}

	d, err := New(sub, "DGKFL06JDHJP")
	require.NoError(t, err)

	_, err = d.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "FetchRepairDiagnostic", sub.req.Operation)
}

func TestFetchIOSDiagnostic(t *testing.T) {
	sub := &fakeSub{response: `<root><FetchIOSDiagnosticResponse>
<diagnosticTestData><testResult>FAILED</testResult></diagnosticTestData>
</FetchIOSDiagnosticResponse></root>`}

	// A 15-digit alternate device ID selects the iOS path.
	d, err := New(sub, "013348005376007")
	require.NoError(t, err)

	nodes, err := d.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "FetchIOSDiagnostic", sub.req.Operation)
	assert.Equal(t, "FAILED", nodes[0].GetString("testResult"))
}

func TestEvents(t *testing.T) {
	sub := &fakeSub{response: `<root><FetchDiagnosticEventNumbersResponse>
<diagnosticEventNumbers><eventNumber>12345678901234567890123</eventNumber></diagnosticEventNumbers>
</FetchDiagnosticEventNumbersResponse></root>`}

	d, err := New(sub, "DGKFL06JDHJP")
	require.NoError(t, err)

	_, err = d.Events(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "FetchDiagnosticEventNumbers", sub.req.Operation)
}

func TestNewAcceptsEventNumber(t *testing.T) {
	_, err := New(&fakeSub{}, "12345678901234567890123")
	assert.NoError(t, err)
}

func TestNewRejectsUnknownID(t *testing.T) {
	_, err := New(&fakeSub{}, "???")
	assert.Error(t, err)
}
