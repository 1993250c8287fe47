package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/minbar/internal/display"
)

const (
	qos             = 1
	disconnectQuiet = 250 // ms
	connectTimeout  = 10 * time.Second
)

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// Connect dials the broker with auto-reconnect enabled.
func Connect(brokerURL, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return client, nil
}

// EventsTopic is where a display publishes its events.
func EventsTopic(displayID string) string {
	return fmt.Sprintf("minbar/%s/events", displayID)
}

// CommandsTopic is where a display listens for remote city changes.
func CommandsTopic(displayID string) string {
	return fmt.Sprintf("minbar/%s/commands", displayID)
}

// Command is the payload accepted on the commands topic.
type Command struct {
	City string `json:"city"`
}

// Publisher forwards display events to MQTT. It implements display.Notifier.
type Publisher struct {
	client    mqtt.Client
	displayID string
}

func NewPublisher(client mqtt.Client, displayID string) *Publisher {
	return &Publisher{client: client, displayID: displayID}
}

// Notify publishes e as JSON and waits for the broker acknowledgement or ctx.
func (p *Publisher) Notify(ctx context.Context, e display.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	topic := EventsTopic(p.displayID)
	token := p.client.Publish(topic, qos, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("publish to %s: %w", topic, ctx.Err())
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Str("event", string(e.Type)).Msg("event published")
	return nil
}

// HandleCommands subscribes to the commands topic and calls onCity for every
// well-formed command.
func (p *Publisher) HandleCommands(onCity func(city string)) error {
	topic := CommandsTopic(p.displayID)
	handler := func(_ mqtt.Client, msg mqtt.Message) {
		var cmd Command
		if err := json.Unmarshal(msg.Payload(), &cmd); err != nil {
			log.Warn().Err(err).Str("topic", msg.Topic()).Msg("ignoring malformed command")
			return
		}
		city := strings.TrimSpace(cmd.City)
		if city == "" {
			log.Warn().Str("topic", msg.Topic()).Msg("ignoring command without city")
			return
		}
		log.Info().Str("city", city).Msg("remote city change")
		onCity(city)
	}

	if token := p.client.Subscribe(topic, qos, handler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, token.Error())
	}
	return nil
}

func (p *Publisher) Close() {
	p.client.Unsubscribe(CommandsTopic(p.displayID))
	p.client.Disconnect(disconnectQuiet)
	log.Info().Msg("MQTT client disconnected")
}
