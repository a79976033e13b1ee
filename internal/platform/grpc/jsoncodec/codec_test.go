package jsoncodec

import (
	"testing"

	"google.golang.org/grpc/encoding"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

func TestCodecRegistered(t *testing.T) {
	codec := encoding.GetCodec(Name)
	if codec == nil {
		t.Fatal("expected json codec to be registered")
	}
	if codec.Name() != Name {
		t.Fatalf("name = %q, want %q", codec.Name(), Name)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	var c Codec
	b, err := c.Marshal(&sample{Name: "alice", Count: 3})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"name":"alice","count":3}` {
		t.Fatalf("payload = %s", b)
	}
	var got sample
	if err := c.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != "alice" || got.Count != 3 {
		t.Fatalf("decoded = %+v", got)
	}
}

func TestCodecEmptyPayload(t *testing.T) {
	var got sample
	if err := (Codec{}).Unmarshal(nil, &got); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if got != (sample{}) {
		t.Fatalf("decoded = %+v, want zero", got)
	}
}

func TestCodecErrors(t *testing.T) {
	if _, err := (Codec{}).Marshal(make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}
	var got sample
	if err := (Codec{}).Unmarshal([]byte("{"), &got); err == nil {
		t.Fatal("expected unmarshal error")
	}
}
