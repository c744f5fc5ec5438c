package ping

import (
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// IANA protocol number for ICMPv4.
const protocolICMP = 1

type Options struct {
	Count    int
	Timeout  time.Duration
	Interval time.Duration
}

// DefaultOptions matches classic ping behavior: five probes, one second
// apart, one second reply timeout.
func DefaultOptions() Options {
	return Options{
		Count:    5,
		Timeout:  time.Second,
		Interval: time.Second,
	}
}

// Ping sends ICMP echo requests to target and writes one result line per
// probe to w. Individual reply timeouts are reported but not fatal;
// resolution, socket and send failures are. Opening a raw ICMP socket
// usually requires root.
func Ping(target string, opts Options, w io.Writer) error {
	addr, err := net.ResolveIPAddr("ip4", target)
	if err != nil {
		return fmt.Errorf("DNS lookup failed on the target host (%s): %w", target, err)
	}

	conn, err := icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return fmt.Errorf("failed to open ICMP socket (raw sockets may require root): %w", err)
	}
	defer conn.Close()

	id := os.Getpid() & 0xffff

	for seq := 0; seq < opts.Count; seq++ {
		packet, err := EchoRequest(id, seq).Marshal(nil)
		if err != nil {
			return fmt.Errorf("failed to build echo request: %w", err)
		}

		start := time.Now()
		if _, err := conn.WriteTo(packet, addr); err != nil {
			return fmt.Errorf("failed to send packet to the target host: %w", err)
		}

		if err := conn.SetReadDeadline(time.Now().Add(opts.Timeout)); err != nil {
			return fmt.Errorf("failed to set socket timeout: %w", err)
		}

		reply := make([]byte, 1500)
		n, _, err := conn.ReadFrom(reply)
		if err != nil {
			fmt.Fprintf(w, "Request timed out (seq=%d)\n", seq)
		} else {
			rtt := time.Since(start)

			parsed, err := icmp.ParseMessage(protocolICMP, reply[:n])
			if err == nil && parsed.Type == ipv4.ICMPTypeEchoReply {
				fmt.Fprintf(w, "Reply from %s: seq=%d time=%d ms\n", target, seq, rtt.Milliseconds())
			} else {
				fmt.Fprintln(w, "Received malformed packet")
			}
		}

		if seq < opts.Count-1 {
			time.Sleep(opts.Interval)
		}
	}

	return nil
}

// EchoRequest builds an ICMPv4 echo request with the given identifier and
// sequence number. The checksum is filled in by Marshal.
func EchoRequest(id, seq int) *icmp.Message {
	return &icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   id,
			Seq:  seq,
			Data: []byte("goknife ping"),
		},
	}
}
