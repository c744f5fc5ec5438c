package ping

import (
	"testing"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

func TestEchoRequestMarshalsWithChecksum(t *testing.T) {
	packet, err := EchoRequest(0x1234, 7).Marshal(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := icmp.ParseMessage(protocolICMP, packet)
	if err != nil {
		t.Fatalf("packet does not parse back: %v", err)
	}

	if parsed.Type != ipv4.ICMPTypeEcho {
		t.Errorf("Expected echo request type, got %v", parsed.Type)
	}

	echo, ok := parsed.Body.(*icmp.Echo)
	if !ok {
		t.Fatalf("Expected *icmp.Echo body, got %T", parsed.Body)
	}

	if echo.ID != 0x1234 || echo.Seq != 7 {
		t.Errorf("Expected id=0x1234 seq=7, got id=%#x seq=%d", echo.ID, echo.Seq)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Count != 5 {
		t.Errorf("Expected 5 probes, got %d", opts.Count)
	}

	if opts.Timeout <= 0 || opts.Interval <= 0 {
		t.Errorf("Expected positive timeout and interval, got %v / %v", opts.Timeout, opts.Interval)
	}
}
