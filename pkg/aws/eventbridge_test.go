package aws

import (
	"context"
	"errors"
	"testing"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutEvents struct {
	input *eventbridge.PutEventsInput
	out   *eventbridge.PutEventsOutput
	err   error
}

func (f *fakePutEvents) PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	if f.out != nil {
		return f.out, nil
	}
	return &eventbridge.PutEventsOutput{Entries: []types.PutEventsResultEntry{{EventId: sdkaws.String("1")}}}, nil
}

func TestPublish_SetsEnvelopeFields(t *testing.T) {
	api := &fakePutEvents{}
	client := NewEventBridgeClientWithAPI(api, "SwnEventBus", "com.swn.basket.checkoutbasket")

	err := client.Publish(context.Background(), "CheckoutBasket", []byte(`{"userName":"swn"}`))
	require.NoError(t, err)

	require.Len(t, api.input.Entries, 1)
	entry := api.input.Entries[0]
	assert.Equal(t, "SwnEventBus", sdkaws.ToString(entry.EventBusName))
	assert.Equal(t, "com.swn.basket.checkoutbasket", sdkaws.ToString(entry.Source))
	assert.Equal(t, "CheckoutBasket", sdkaws.ToString(entry.DetailType))
	assert.JSONEq(t, `{"userName":"swn"}`, sdkaws.ToString(entry.Detail))
}

func TestPublish_FailedEntryIsAnError(t *testing.T) {
	api := &fakePutEvents{out: &eventbridge.PutEventsOutput{
		FailedEntryCount: 1,
		Entries: []types.PutEventsResultEntry{{
			ErrorCode:    sdkaws.String("ThrottlingException"),
			ErrorMessage: sdkaws.String("slow down"),
		}},
	}}
	client := NewEventBridgeClientWithAPI(api, "SwnEventBus", "com.swn.basket.checkoutbasket")

	err := client.Publish(context.Background(), "CheckoutBasket", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ThrottlingException")
}

func TestPublish_CallErrorIsWrapped(t *testing.T) {
	api := &fakePutEvents{err: errors.New("connection refused")}
	client := NewEventBridgeClientWithAPI(api, "SwnEventBus", "com.swn.basket.checkoutbasket")

	err := client.Publish(context.Background(), "CheckoutBasket", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPublish_EmptyBusNameRejected(t *testing.T) {
	client := NewEventBridgeClientWithAPI(&fakePutEvents{}, "", "src")

	assert.Error(t, client.Publish(context.Background(), "CheckoutBasket", []byte(`{}`)))
}
