package jsoncodec

import (
	"testing"

	"google.golang.org/grpc/encoding"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

type sample struct {
	Year  int32    `json:"year"`
	Items []uint32 `json:"items,omitempty"`
}

func TestCodecRegistered(t *testing.T) {
	codec := encoding.GetCodec(Name)
	if codec == nil {
		t.Fatalf("codec %q not registered", Name)
	}
	if codec.Name() != Name {
		t.Fatalf("codec name = %q, want %q", codec.Name(), Name)
	}
}

func TestCodecStructs(t *testing.T) {
	data, err := Codec{}.Marshal(sample{Year: 2025, Items: []uint32{1, 2}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"year":2025,"items":[1,2]}` {
		t.Fatalf("data = %s", data)
	}

	var got sample
	if err := (Codec{}).Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Year != 2025 || len(got.Items) != 2 {
		t.Fatalf("decoded = %+v", got)
	}
}

func TestCodecEmptyPayload(t *testing.T) {
	got := sample{Year: 1}
	if err := (Codec{}).Unmarshal(nil, &got); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if got.Year != 1 {
		t.Fatalf("year = %d, want untouched", got.Year)
	}
}

func TestCodecRejectsMalformedJSON(t *testing.T) {
	var got sample
	if err := (Codec{}).Unmarshal([]byte("{"), &got); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestCodecProtoMessages(t *testing.T) {
	data, err := Codec{}.Marshal(&grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING})
	if err != nil {
		t.Fatalf("marshal proto: %v", err)
	}
	var got grpc_health_v1.HealthCheckResponse
	if err := (Codec{}).Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal proto: %v", err)
	}
	if got.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("status = %v, want SERVING", got.GetStatus())
	}
}
