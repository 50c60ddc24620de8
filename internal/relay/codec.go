// Package relay rebroadcasts player updates between websocket peers.
//
// The game itself never connects to the relay; it exists for clients that
// want to mirror each other's state.
package relay

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is the wire format of every message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

var ErrEmptyMessage = errors.New("relay: empty message")

func Encode(event string, payload any) ([]byte, error) {
	if event == "" {
		return nil, fmt.Errorf("relay: encode with empty event")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: pb})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, ErrEmptyMessage
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.Data) == 0 {
		return out, fmt.Errorf("empty payload for event %q", env.Event)
	}
	err := json.Unmarshal(env.Data, &out)
	return out, err
}
