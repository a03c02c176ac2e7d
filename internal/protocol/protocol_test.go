package protocol

import (
	"errors"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	data, err := Encode(CmdTV, &TVRequest{Op: "hdmi", Value: 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := `{"command":"tv","payload":{"op":"hdmi","value":1}}`
	if string(data) != want {
		t.Fatalf("Encode = %s, want %s", data, want)
	}

	env, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if env.Command != CmdTV {
		t.Fatalf("command = %q, want tv", env.Command)
	}

	req, err := DecodePayload[TVRequest](payload)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if req.Op != "hdmi" || req.Value != 1 {
		t.Fatalf("payload = %+v", req)
	}
}

func TestEncodeNilPayload(t *testing.T) {
	data, err := Encode(CmdStatus, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(data) != `{"command":"status"}` {
		t.Fatalf("Encode = %s", data)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, in := range []string{`not json`, `{}`, `{"payload":{}}`} {
		if _, _, err := Decode([]byte(in)); !errors.Is(err, ErrDecode) {
			t.Fatalf("Decode(%s) = %v, want ErrDecode", in, err)
		}
	}
}

func TestDecodePayloadEmpty(t *testing.T) {
	req, err := DecodePayload[InjectRequest](nil)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if req.Kind != "" {
		t.Fatalf("payload = %+v, want zero value", req)
	}
}

func TestDecodePayloadMismatch(t *testing.T) {
	if _, err := DecodePayload[TVRequest]([]byte(`{"op":7}`)); !errors.Is(err, ErrDecode) {
		t.Fatalf("DecodePayload = %v, want ErrDecode", err)
	}
}
