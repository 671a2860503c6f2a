package lookup

import (
	"context"
	"encoding/base64"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/field"
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

func TestRepairs(t *testing.T) {
	sub := &fakeSub{response: `<root><RepairLookupResponse>
<lookupResponseData><dispatchId>G135773004</dispatchId></lookupResponseData>
</RepairLookupResponse></root>`}

	l := New(sub)
	require.NoError(t, l.Set("serialNumber", "DGKFL06JDHJP"))

	repairs, err := l.Repairs(context.Background())
	require.NoError(t, err)
	require.Len(t, repairs, 1)
	assert.Equal(t, "G135773004", repairs[0].GetString("dispatchId"))

	assert.Equal(t, "RepairLookup", sub.req.Operation)
	assert.Equal(t, "lookupRequestData", sub.req.PayloadName)
	assert.Equal(t, "asp", sub.req.Payload.Prefix())
}

func TestPartsSwitchesNamespace(t *testing.T) {
	sub := &fakeSub{response: `<root><PartsLookupResponse>
<parts><partNumber>922-7913</partNumber></parts>
<parts><partNumber>661-5852</partNumber></parts>
</PartsLookupResponse></root>`}

	l := New(sub)
	require.NoError(t, l.Set("productName", "iPod Shuffle"))

	parts, err := l.Parts(context.Background())
	require.NoError(t, err)
	assert.Len(t, parts, 2)
	assert.Equal(t, "core", sub.req.Payload.Prefix())
	assert.Equal(t, "PartsLookup", sub.req.Operation)
}

func TestInvoices(t *testing.T) {
	sub := &fakeSub{response: `<root><InvoiceIDLookupResponse>
<lookupResponseData><invoiceID>9938455</invoiceID></lookupResponseData>
</InvoiceIDLookupResponse></root>`}

	l := New(sub)
	require.NoError(t, l.Set("shipTo", "0000123456"))

	invoices, err := l.Invoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "InvoiceIDLookup", sub.req.Operation)
}

func TestInvoiceDetailsMaterializesPDF(t *testing.T) {
	pdf := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake"))
	sub := &fakeSub{response: `<root><InvoiceDetailsLookupResponse>
<lookupResponseData><invoiceData>` + pdf + `</invoiceData></lookupResponseData>
</InvoiceDetailsLookupResponse></root>`}

	l := New(sub)
	require.NoError(t, l.Set("invoiceID", "9938455"))

	_, path, err := l.InvoiceDetails(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
}

func TestComponentCheck(t *testing.T) {
	sub := &fakeSub{response: `<root><ComponentCheckResponse>
<componentCheckDetails><componentSerialCheckRequired>Y</componentSerialCheckRequired></componentCheckDetails>
</ComponentCheckResponse></root>`}

	line := field.New("asp")
	require.NoError(t, line.Set("partNumber", "661-5852"))
	require.NoError(t, line.Set("comptiaCode", "X03"))

	l := New(sub)
	require.NoError(t, l.Set("serialNumber", "DGKFL06JDHJP"))

	details, err := l.ComponentCheck(context.Background(), []*field.Bag{line})
	require.NoError(t, err)
	require.Len(t, details, 1)

	needed, ok := details[0].Get("componentSerialCheckRequired").Bool()
	require.True(t, ok)
	assert.True(t, needed)

	assert.Equal(t, "ComponentCheck", sub.req.Operation)
	assert.Equal(t, "repairData", sub.req.PayloadName)
	lines, ok := sub.req.Payload.Get("orderLines")
	require.True(t, ok)
	assert.Len(t, lines.([]*field.Bag), 1)
}
