// Package ingest subscribes to device telemetry published over MQTT and
// feeds it into the telemetry service.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"smart_fan/internal/config"
	"smart_fan/internal/logger"
	"smart_fan/internal/service"
)

const (
	connectTimeout = 10 * time.Second
	disconnectMs   = 250
)

var errMissingTemp = errors.New("temp_c is required")

// payload is the JSON a device publishes; it matches the fan_readings columns.
type payload struct {
	DeviceID  string     `json:"device_id"`
	TempC     *float64   `json:"temp_c"`
	PowerW    *float64   `json:"power_w"`
	FanMode   string     `json:"fan_mode"`
	CreatedAt *time.Time `json:"created_at"`
}

type Subscriber struct {
	telemetry service.Telemetry
	cfg       config.MQTTConfig
	log       *logger.Logger
	client    mqtt.Client
}

func NewSubscriber(telemetry service.Telemetry, cfg config.MQTTConfig, log *logger.Logger) *Subscriber {
	if log == nil {
		log = logger.Nop()
	}
	return &Subscriber{telemetry: telemetry, cfg: cfg, log: log}
}

// Start connects, subscribes and disconnects once ctx is done.
func (s *Subscriber) Start(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(s.cfg.Broker).
		SetClientID(s.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetOnConnectHandler(func(c mqtt.Client) {
			// resubscribe after every reconnect
			if token := c.Subscribe(s.cfg.Topic, s.cfg.QoS, s.onMessage); token.Wait() && token.Error() != nil {
				s.log.Errorw("mqtt_subscribe_failed", "topic", s.cfg.Topic, "err", token.Error())
				return
			}
			s.log.Infow("mqtt_subscribed", "broker", s.cfg.Broker, "topic", s.cfg.Topic)
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			s.log.Warnw("mqtt_connection_lost", "err", err)
		})

	s.client = mqtt.NewClient(opts)
	token := s.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt connect %s: timed out after %s", s.cfg.Broker, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect %s: %w", s.cfg.Broker, err)
	}

	go func() {
		<-ctx.Done()
		s.client.Disconnect(disconnectMs)
		s.log.Infow("mqtt_disconnected", "broker", s.cfg.Broker)
	}()
	return nil
}

func (s *Subscriber) onMessage(_ mqtt.Client, msg mqtt.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.HandlePayload(ctx, msg.Topic(), msg.Payload()); err != nil {
		s.log.Warnw("mqtt_payload_dropped", "topic", msg.Topic(), "err", err)
	}
}

// HandlePayload decodes one message and ingests it. When the payload has no
// device_id it is taken from the topic segment matching "+" in the
// subscription.
func (s *Subscriber) HandlePayload(ctx context.Context, topic string, data []byte) error {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if p.TempC == nil {
		return errMissingTemp
	}

	in := service.ReadingInput{
		DeviceID: p.DeviceID,
		TempC:    *p.TempC,
		PowerW:   p.PowerW,
		FanMode:  p.FanMode,
	}
	if in.DeviceID == "" {
		in.DeviceID = deviceFromTopic(s.cfg.Topic, topic)
	}
	if p.CreatedAt != nil {
		in.CreatedAt = *p.CreatedAt
	}

	_, err := s.telemetry.Ingest(ctx, in)
	return err
}

func deviceFromTopic(pattern, topic string) string {
	pp := strings.Split(pattern, "/")
	tp := strings.Split(topic, "/")
	for i, seg := range pp {
		if seg == "+" && i < len(tp) {
			return tp[i]
		}
	}
	return ""
}
