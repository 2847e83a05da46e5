package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

// EventType distinguishes run events.
type EventType string

// Events published over the life of a run. Once the encoder is up a run
// publishes started, then ends with exactly one of completed or failed.
const (
	EventStarted   EventType = "started"
	EventProgress  EventType = "progress"
	EventCompleted EventType = "completed"
	EventFailed    EventType = "failed"
)

// Event describes the state of a rendering run.
type Event struct {
	RunID     string    `json:"runId"`
	Type      EventType `json:"type"`
	Frame     int       `json:"frame"`
	Frames    int       `json:"frames"`
	Time      float64   `json:"time"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// A Publisher delivers run events somewhere.
type Publisher interface {
	Publish(e Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(Event) error { return nil }

// MqttPublisher publishes events as JSON to an MQTT topic.
type MqttPublisher struct {
	client  mqtt.Client
	topic   string
	qos     byte
	timeout time.Duration
}

// NewMqttPublisher creates an instance of a MqttPublisher.
func NewMqttPublisher(client mqtt.Client, topic string, qos byte) *MqttPublisher {
	p := new(MqttPublisher)
	p.client = client
	p.topic = topic
	p.qos = qos
	p.timeout = 5 * time.Second
	return p
}

// Publish implements Publisher.
func (p *MqttPublisher) Publish(e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, p.qos, false, b)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publishing %s event to %s: %w", e.Type, p.topic, errPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing %s event to %s: %w", e.Type, p.topic, err)
	}
	return nil
}

var errPublishTimeout = errors.New("timed out")
