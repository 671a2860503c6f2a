package product

import (
	"context"
	"net/http"
	"net/http/httptest"
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

func TestNewIdentifiesSerialNumber(t *testing.T) {
	p, err := New(&fakeSub{}, "DGKFL06JDHJP")
	require.NoError(t, err)
	v, ok := p.bag.Get("serialNumber")
	require.True(t, ok)
	assert.Equal(t, "DGKFL06JDHJP", v)
}

func TestNewIdentifiesAlternateDeviceID(t *testing.T) {
	p, err := New(&fakeSub{}, "013348005376007")
	require.NoError(t, err)
	_, ok := p.bag.Get("alternateDeviceId")
	assert.True(t, ok)
}

func TestNewRejectsUnknownID(t *testing.T) {
	_, err := New(&fakeSub{}, "not a device")
	assert.Error(t, err)
}

func TestWarranty(t *testing.T) {
	sub := &fakeSub{response: `<root><WarrantyStatusResponse><warrantyDetailInfo>
<serialNumber>DGKFL06JDHJP</serialNumber>
<warrantyStatus>Apple Limited Warranty</warrantyStatus>
<limitedWarranty>Y</limitedWarranty>
</warrantyDetailInfo></WarrantyStatusResponse></root>`}

	p, err := New(sub, "DGKFL06JDHJP")
	require.NoError(t, err)

	info, err := p.Warranty(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Apple Limited Warranty", info.GetString("warrantyStatus"))

	covered, ok := info.Get("limitedWarranty").Bool()
	require.True(t, ok)
	assert.True(t, covered)

	assert.Equal(t, "WarrantyStatus", sub.req.Operation)
	assert.Equal(t, "unitDetail", sub.req.PayloadName)
	assert.Equal(t, "glob", sub.req.Payload.Prefix())
}

func TestPartLevelWarranty(t *testing.T) {
	sub := &fakeSub{response: `<root><WarrantyStatusResponse><warrantyDetailInfo>
<partCovered>Y</partCovered>
</warrantyDetailInfo></WarrantyStatusResponse></root>`}

	p, err := New(sub, "DGKFL06JDHJP")
	require.NoError(t, err)

	part := field.New("glob")
	require.NoError(t, part.Set("partNumber", "661-5852"))
	require.NoError(t, p.Set("partInfo", part))

	_, err = p.Warranty(context.Background())
	require.NoError(t, err)

	_, ok := sub.req.Payload.Get("partInfo")
	assert.True(t, ok)
}

func TestModel(t *testing.T) {
	sub := &fakeSub{response: `<root><FetchProductModelResponse><productModelResponse>
<configDescription>MacBook Pro (15-inch, Mid 2010)</configDescription>
<productLine>MacBook Pro</productLine>
</productModelResponse></FetchProductModelResponse></root>`}

	p, err := New(sub, "DGKFL06JDHJP")
	require.NoError(t, err)

	model, err := p.Model(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "MacBook Pro", model.GetString("productLine"))
	assert.Equal(t, "FetchProductModel", sub.req.Operation)
}

func TestActivation(t *testing.T) {
	sub := &fakeSub{response: `<root><FetchIOSActivationDetailsResponse><activationDetailsInfo>
<unlocked>true</unlocked>
<carrierName>Telia Sonera</carrierName>
</activationDetailsInfo></FetchIOSActivationDetailsResponse></root>`}

	p, err := New(sub, "013348005376007")
	require.NoError(t, err)

	act, err := p.Activation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Telia Sonera", act.GetString("carrierName"))
	assert.Equal(t, "FetchIOSActivationDetails", sub.req.Operation)
}

func TestRepairsDelegatesToLookup(t *testing.T) {
	sub := &fakeSub{response: `<root><RepairLookupResponse>
<lookupResponseData><dispatchId>G135773004</dispatchId></lookupResponseData>
<lookupResponseData><dispatchId>G135773005</dispatchId></lookupResponseData>
</RepairLookupResponse></root>`}

	p, err := New(sub, "DGKFL06JDHJP")
	require.NoError(t, err)

	repairs, err := p.Repairs(context.Background())
	require.NoError(t, err)
	assert.Len(t, repairs, 2)
	assert.Equal(t, "RepairLookup", sub.req.Operation)
	assert.Equal(t, "lookupRequestData", sub.req.PayloadName)
}

func TestDiagnostics(t *testing.T) {
	sub := &fakeSub{response: `<root><FetchRepairDiagnosticResponse>
<diagnosticTestData><testResult>PASSED</testResult></diagnosticTestData>
</FetchRepairDiagnosticResponse></root>`}

	p, err := New(sub, "DGKFL06JDHJP")
	require.NoError(t, err)

	nodes, err := p.Diagnostics(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "FetchRepairDiagnostic", sub.req.Operation)
}

func TestDiagnosticsIOSPath(t *testing.T) {
	sub := &fakeSub{response: `<root><FetchIOSDiagnosticResponse>
<diagnosticTestData><testResult>FAILED</testResult></diagnosticTestData>
</FetchIOSDiagnosticResponse></root>`}

	p, err := New(sub, "013348005376007")
	require.NoError(t, err)

	_, err = p.Diagnostics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "FetchIOSDiagnostic", sub.req.Operation)
}

func TestFetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not really a png"))
	}))
	t.Cleanup(srv.Close)

	path, err := FetchImage(context.Background(), srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not really a png", string(data))
}

func TestFetchImageErrors(t *testing.T) {
	_, err := FetchImage(context.Background(), "")
	assert.Error(t, err)

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	_, err = FetchImage(context.Background(), srv.URL)
	assert.Error(t, err)
}
