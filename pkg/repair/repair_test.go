package repair

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicetools/go-gsxws/pkg/client"
	"github.com/servicetools/go-gsxws/pkg/field"
	"github.com/servicetools/go-gsxws/pkg/objectify"
)

// fakeSub records the submitted request and answers with canned XML.
type fakeSub struct {
	req      client.Request
	response string
}

func (f *fakeSub) Submit(ctx context.Context, req client.Request) ([]*objectify.Node, error) {
	f.req = req
	return objectify.Parse([]byte(f.response), req.ResponseTag)
}

const statusResponse = `<root><RepairStatusResponse><repairStatus>
<repairConfirmationNumber>G135773004</repairConfirmationNumber>
<repairStatus>Closed and Completed</repairStatus>
</repairStatus></RepairStatusResponse></root>`

const confirmationResponse = `<root><CreateCarryInResponse><repairConfirmation>
<confirmationNumber>G135773004</confirmationNumber>
</repairConfirmation></CreateCarryInResponse></root>`

func TestStatus(t *testing.T) {
	sub := &fakeSub{response: statusResponse}
	r := New(sub, "G135773004")

	status, err := r.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Closed and Completed", status.GetString("repairStatus"))

	assert.Equal(t, "RepairStatus", sub.req.Operation)
	assert.Equal(t, "RepairStatusRequest", sub.req.PayloadName)
	v, ok := sub.req.Payload.Get("repairConfirmationNumbers")
	require.True(t, ok)
	assert.Equal(t, "G135773004", v)
}

func TestDetailsUsesCorePrefix(t *testing.T) {
	sub := &fakeSub{response: `<root><RepairDetailsResponse><lookupResponseData>
<dispatchId>G135773004</dispatchId>
</lookupResponseData></RepairDetailsResponse></root>`}
	r := New(sub, "G135773004")

	details, err := r.Details(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "G135773004", details.GetString("dispatchId"))
	assert.Equal(t, "core", sub.req.Payload.Prefix())
}

func TestMarkComplete(t *testing.T) {
	sub := &fakeSub{response: `<root><MarkRepairCompleteResponse>
<repairConfirmationNumber>G135773004</repairConfirmationNumber>
</MarkRepairCompleteResponse></root>`}
	r := New(sub, "G135773004")

	_, err := r.MarkComplete(context.Background())
	require.NoError(t, err)

	// PayloadName matches Operation + "Request" so the client splices
	// the fields in without an inner container.
	assert.Equal(t, "MarkRepairComplete", sub.req.Operation)
	assert.Equal(t, "MarkRepairCompleteRequest", sub.req.PayloadName)
	v, _ := sub.req.Payload.Get("repairConfirmationNumbers")
	assert.Equal(t, "G135773004", v)
}

func TestMarkCompleteJoinsNumbers(t *testing.T) {
	sub := &fakeSub{response: `<root><MarkRepairCompleteResponse>
<repairConfirmationNumber>G111111111</repairConfirmationNumber>
</MarkRepairCompleteResponse></root>`}
	r := New(sub, "")

	_, err := r.MarkComplete(context.Background(), "G111111111", "G222222222")
	require.NoError(t, err)
	v, _ := sub.req.Payload.Get("repairConfirmationNumbers")
	assert.Equal(t, "G111111111,G222222222", v)
}

func TestCarryInCreate(t *testing.T) {
	sub := &fakeSub{response: confirmationResponse}
	c := NewCarryIn(sub)
	require.NoError(t, c.Set("serialNumber", "DGKFL06JDHJP"))
	require.NoError(t, c.Set("unitReceivedDate", field.Date{Year: 2011, Month: 10, Day: 6}))

	conf, err := c.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "G135773004", conf.GetString("confirmationNumber"))

	assert.Equal(t, "CreateCarryIn", sub.req.Operation)
	assert.Equal(t, "repairData", sub.req.PayloadName)
	assert.Equal(t, "emea", sub.req.Payload.Prefix())

	d, _ := sub.req.Payload.Get("unitReceivedDate")
	assert.Equal(t, "10/06/11", d)
}

func TestCarryInUpdateMergesChanges(t *testing.T) {
	sub := &fakeSub{response: confirmationResponse}
	c := NewCarryIn(sub)
	require.NoError(t, c.Set("dispatchId", "G135773004"))

	_, err := c.Update(context.Background(), map[string]any{"notes": "Lid does not close"})
	require.NoError(t, err)

	assert.Equal(t, "UpdateCarryIn", sub.req.Operation)
	assert.Equal(t, "asp", sub.req.Payload.Prefix())
	v, _ := sub.req.Payload.Get("notes")
	assert.Equal(t, "Lid does not close", v)
	v, _ = sub.req.Payload.Get("dispatchId")
	assert.Equal(t, "G135773004", v)
}

func TestIndirectOnsiteRenamesFields(t *testing.T) {
	sub := &fakeSub{response: confirmationResponse}
	o := NewIndirectOnsite(sub)
	require.NoError(t, o.Set("shipTo", "0000123456"))
	require.NoError(t, o.Set("poNumber", "PO-4711"))
	require.NoError(t, o.Set("diagnosedByTechId", "TECH01"))

	_, err := o.Create(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "CreateIndirectOnsiteRepair", sub.req.Operation)
	for old, renamed := range map[string]string{
		"shipTo":            "shippingLocation",
		"poNumber":          "purchaseOrderNumber",
		"diagnosedByTechId": "technicianName",
	} {
		_, ok := sub.req.Payload.Get(old)
		assert.False(t, ok, old)
		_, ok = sub.req.Payload.Get(renamed)
		assert.True(t, ok, renamed)
	}
}

func TestTrackingURL(t *testing.T) {
	part, err := objectify.ParseOne([]byte(`<partsInfo>
<carrierURL>http://fedex.example/track?no=&lt;&lt;TRKNO&gt;&gt;</carrierURL>
<deliveryTrackingNumber>996071550112</deliveryTrackingNumber>
</partsInfo>`), "partsInfo")
	require.NoError(t, err)

	assert.Equal(t, "http://fedex.example/track?no=996071550112", TrackingURL(part))
}

func TestTrackingURLWithoutNumber(t *testing.T) {
	part, err := objectify.ParseOne([]byte(`<partsInfo>
<carrierURL>http://fedex.example/track?no=&lt;&lt;TRKNO&gt;&gt;</carrierURL>
</partsInfo>`), "partsInfo")
	require.NoError(t, err)

	assert.Equal(t, "http://fedex.example/track?no=<<TRKNO>>", TrackingURL(part))
}

func TestOrderLine(t *testing.T) {
	line, err := OrderLine("661-5852", "X03", "A")
	require.NoError(t, err)
	v, _ := line.Get("partNumber")
	assert.Equal(t, "661-5852", v)

	_, err = OrderLine("not a part", "X03", "A")
	assert.Error(t, err)
}
