package service

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Ensure JSONCodec implements connect.Codec
var _ connect.Codec = JSONCodec{}

// JSONCodec serializes plain Go structs as JSON under the "json" codec name,
// so clients use Content-Type application/json.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (JSONCodec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }
