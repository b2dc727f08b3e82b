package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"smart_fan/internal/config"
	"smart_fan/internal/models"
	"smart_fan/internal/service"
)

type telemetryStub struct {
	got []service.ReadingInput
	err error
}

func (t *telemetryStub) Ingest(_ context.Context, in service.ReadingInput) (models.Reading, error) {
	if t.err != nil {
		return models.Reading{}, t.err
	}
	t.got = append(t.got, in)
	return models.Reading{DeviceID: in.DeviceID, TempC: in.TempC, CreatedAt: in.CreatedAt}, nil
}

func (t *telemetryStub) Latest(context.Context, service.ReadingFilter) ([]models.Reading, error) {
	return nil, nil
}

// fakeMessage implements mqtt.Message.
type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 1 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func newTestSubscriber(stub *telemetryStub) *Subscriber {
	return NewSubscriber(stub, config.MQTTConfig{Topic: "smartfan/+/readings"}, nil)
}

func TestHandlePayload(t *testing.T) {
	tests := []struct {
		name       string
		topic      string
		payload    string
		wantErr    bool
		wantDevice string
		wantMode   string
	}{
		{
			name:       "full payload",
			topic:      "smartfan/ignored/readings",
			payload:    `{"device_id":"esp32_01","temp_c":26.2,"power_w":1.182,"fan_mode":"MEDIUM","created_at":"2026-02-07T14:00:00Z"}`,
			wantDevice: "esp32_01",
			wantMode:   "MEDIUM",
		},
		{
			name:       "device from topic",
			topic:      "smartfan/esp32_02/readings",
			payload:    `{"temp_c":23.0}`,
			wantDevice: "esp32_02",
		},
		{name: "invalid json", topic: "smartfan/x/readings", payload: `{`, wantErr: true},
		{name: "missing temperature", topic: "smartfan/x/readings", payload: `{"device_id":"x"}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &telemetryStub{}
			sub := newTestSubscriber(stub)

			err := sub.HandlePayload(context.Background(), tc.topic, []byte(tc.payload))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if len(stub.got) != 0 {
					t.Fatalf("nothing should be ingested on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(stub.got) != 1 {
				t.Fatalf("expected 1 ingested reading, got %d", len(stub.got))
			}
			r := stub.got[0]
			if r.DeviceID != tc.wantDevice || r.FanMode != tc.wantMode {
				t.Fatalf("unexpected reading %+v", r)
			}
		})
	}
}

func TestHandlePayload_PowerOnlyWhenSent(t *testing.T) {
	stub := &telemetryStub{}
	sub := newTestSubscriber(stub)

	if err := sub.HandlePayload(context.Background(), "smartfan/a/readings", []byte(`{"temp_c":26,"power_w":5}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sub.HandlePayload(context.Background(), "smartfan/a/readings", []byte(`{"temp_c":26}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := stub.got[0].PowerW; p == nil || *p != 5 {
		t.Fatalf("measured power_w not forwarded: %+v", stub.got[0])
	}
	if stub.got[1].PowerW != nil {
		t.Fatalf("absent power_w must stay nil, got %v", *stub.got[1].PowerW)
	}
}

func TestHandlePayload_KeepsDeviceTimestamp(t *testing.T) {
	stub := &telemetryStub{}
	sub := newTestSubscriber(stub)

	err := sub.HandlePayload(context.Background(), "smartfan/a/readings",
		[]byte(`{"device_id":"a","temp_c":25,"created_at":"2026-02-07T14:00:00+01:00"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2026, 2, 7, 13, 0, 0, 0, time.UTC); !stub.got[0].CreatedAt.Equal(want) {
		t.Fatalf("created_at=%v want %v", stub.got[0].CreatedAt, want)
	}
}

func TestOnMessage_DropsFailures(t *testing.T) {
	stub := &telemetryStub{err: errors.New("invalid input")}
	sub := newTestSubscriber(stub)

	// must not panic; the error is only logged
	sub.onMessage(nil, fakeMessage{topic: "smartfan/a/readings", payload: []byte(`{"temp_c":25}`)})

	stub.err = nil
	sub.onMessage(nil, fakeMessage{topic: "smartfan/a/readings", payload: []byte(`{"temp_c":25}`)})
	if len(stub.got) != 1 || stub.got[0].DeviceID != "a" {
		t.Fatalf("expected one reading from device a, got %+v", stub.got)
	}
}

func TestDeviceFromTopic(t *testing.T) {
	cases := []struct{ pattern, topic, want string }{
		{"smartfan/+/readings", "smartfan/esp32_01/readings", "esp32_01"},
		{"smartfan/readings", "smartfan/readings", ""},
		{"+", "dev", "dev"},
		{"a/b/+", "a/b", ""},
	}
	for _, c := range cases {
		if got := deviceFromTopic(c.pattern, c.topic); got != c.want {
			t.Fatalf("deviceFromTopic(%q,%q)=%q want %q", c.pattern, c.topic, got, c.want)
		}
	}
}
