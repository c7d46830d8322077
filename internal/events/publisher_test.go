package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatermillEventPublisher_Publish(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 10}, watermill.NopLogger{})
	defer pubSub.Close()

	publisher := NewWatermillEventPublisher(pubSub, "career", testLogger())
	topic := publisher.Topic(DoubtCreated)
	assert.Equal(t, "career.doubt.created", topic)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, topic)
	require.NoError(t, err)

	event := NewEvent(DoubtCreated, 7, DoubtEventData{DoubtID: 3, Title: "Recursion"})
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(DoubtCreated), msg.Metadata.Get("event_type"))

		var got Event
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, DoubtCreated, got.Type)
		assert.Equal(t, uint(7), got.UserID)
		assert.Equal(t, EventSource, got.Source)
		assert.Equal(t, EventVersion, got.Version)
	case <-ctx.Done():
		t.Fatal("event was not delivered")
	}
}

func TestWatermillEventPublisher_TopicWithoutPrefix(t *testing.T) {
	publisher := NewWatermillEventPublisher(nil, "", testLogger())
	assert.Equal(t, "profile.submitted", publisher.Topic(ProfileSubmitted))
}

func TestMockEventPublisher(t *testing.T) {
	mock := NewMockEventPublisher(testLogger())
	ctx := context.Background()

	require.NoError(t, mock.Publish(ctx, NewEvent(ProfileSubmitted, 1, nil)))
	require.NoError(t, mock.Publish(ctx, NewEvent(DoubtCreated, 1, nil)))

	assert.Len(t, mock.GetPublishedEvents(), 2)
	assert.Len(t, mock.EventsOfType(DoubtCreated), 1)

	mock.ClearEvents()
	assert.Empty(t, mock.GetPublishedEvents())
}

func TestPublishSafe_SwallowsErrors(t *testing.T) {
	mock := NewMockEventPublisher(testLogger())
	mock.FailWith(errors.New("broker down"))

	assert.NotPanics(t, func() {
		PublishSafe(context.Background(), mock, testLogger(), NewEvent(DoubtResolved, 1, nil))
		PublishSafe(context.Background(), nil, testLogger(), NewEvent(DoubtResolved, 1, nil))
	})
	assert.Empty(t, mock.GetPublishedEvents())
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(SummaryGenerated, 9, SummaryEventData{SummaryID: 1})
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, SummaryGenerated, e.Type)
}
