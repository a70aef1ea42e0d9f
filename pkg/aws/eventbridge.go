package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
)

// EventPublisher is a minimal interface for publishing events to the bus.
type EventPublisher interface {
	Publish(ctx context.Context, detailType string, detail []byte) error
}

// PutEventsAPI is the slice of the EventBridge client the publisher uses.
type PutEventsAPI interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// EventBridgeClient publishes events to a single configured event bus
// under a fixed source identifier.
type EventBridgeClient struct {
	client  PutEventsAPI
	busName string
	source  string
}

func NewEventBridgeClient(cfg sdkaws.Config, busName, source string) *EventBridgeClient {
	return &EventBridgeClient{
		client:  eventbridge.NewFromConfig(cfg),
		busName: busName,
		source:  source,
	}
}

// NewEventBridgeClientWithAPI wires an explicit PutEvents implementation.
func NewEventBridgeClientWithAPI(api PutEventsAPI, busName, source string) *EventBridgeClient {
	return &EventBridgeClient{
		client:  api,
		busName: busName,
		source:  source,
	}
}

// Publish sends a single event entry to the configured bus. EventBridge
// reports per-entry failures in the response rather than as a call error,
// so a non-zero FailedEntryCount is treated as a publish failure too.
func (c *EventBridgeClient) Publish(ctx context.Context, detailType string, detail []byte) error {
	if c.busName == "" {
		return fmt.Errorf("empty event bus name")
	}

	out, err := c.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				Source:       sdkaws.String(c.source),
				DetailType:   sdkaws.String(detailType),
				Detail:       sdkaws.String(string(detail)),
				EventBusName: sdkaws.String(c.busName),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("eventbridge put-events failed for bus %s: %w", c.busName, err)
	}
	if out.FailedEntryCount > 0 {
		entry := out.Entries[0]
		return fmt.Errorf("eventbridge rejected entry: code=%s message=%s",
			sdkaws.ToString(entry.ErrorCode), sdkaws.ToString(entry.ErrorMessage))
	}
	return nil
}
