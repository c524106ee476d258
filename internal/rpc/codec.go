// Package rpc defines the Spendly Connect API: procedure names, JSON message
// types, handler constructors, and typed clients.
//
// Messages are plain Go structs serialized with a JSON codec, so the API is
// reachable from a browser with fetch and from Go with the clients below.
package rpc

import (
	"encoding/json"

	"connectrpc.com/connect"
)

const codecName = "json"

// jsonCodec replaces Connect's protojson codec for non-proto messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// WithJSON registers the JSON codec on a handler or client.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
