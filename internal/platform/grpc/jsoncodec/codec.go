// Package jsoncodec registers a gRPC codec that carries messages as JSON.
//
// Services declared without generated protobuf types select it with the
// "json" content subtype; clients pass CallOption() on every call.
package jsoncodec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// Name is the content subtype the codec registers under.
const Name = "json"

// Codec marshals gRPC messages with encoding/json.
type Codec struct{}

func init() {
	encoding.RegisterCodec(Codec{})
}

// Marshal encodes v as JSON.
func (Codec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec marshal %T: %w", v, err)
	}
	return b, nil
}

// Unmarshal decodes JSON into v. An empty payload leaves v zero.
func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec unmarshal %T: %w", v, err)
	}
	return nil
}

// Name returns the registered content subtype.
func (Codec) Name() string {
	return Name
}

// CallOption selects the JSON codec for one client call.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(Name)
}
