package stream

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMqttPublisherPublishesJSON(t *testing.T) {
	client := &fakeClient{token: &fakeToken{complete: true}}
	p := NewMqttPublisher(client, "curvemorph/events", 1)

	err := p.Publish(Event{RunID: "abc", Type: EventProgress, Frame: 30, Frames: 300, Time: 0.1})
	require.NoError(t, err)
	assert.Equal(t, "curvemorph/events", client.topic)
	assert.EqualValues(t, 1, client.qos)
	require.Len(t, client.payloads, 1)

	var got Event
	require.NoError(t, json.Unmarshal(client.payloads[0], &got))
	assert.Equal(t, "abc", got.RunID)
	assert.Equal(t, EventProgress, got.Type)
	assert.Equal(t, 30, got.Frame)
	assert.NotContains(t, string(client.payloads[0]), `"error"`)
}

func TestMqttPublisherTokenError(t *testing.T) {
	client := &fakeClient{token: &fakeToken{complete: true, err: errors.New("not connected")}}
	err := NewMqttPublisher(client, "t", 0).Publish(Event{Type: EventStarted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")
}

func TestMqttPublisherTimeout(t *testing.T) {
	client := &fakeClient{token: &fakeToken{complete: false}}
	err := NewMqttPublisher(client, "t", 0).Publish(Event{Type: EventFailed})
	require.ErrorIs(t, err, errPublishTimeout)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(Event{}))
}
