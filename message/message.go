// Package message implements TrafficMessage, the immutable descriptor of
// one emitted message plus its opaque payload stack (spec.md §3).
package message

import "fmt"

// Cycle is the simulated discrete time unit.
type Cycle int64

// Message is the immutable descriptor of one emitted message.
//
// Invariants (spec.md §3):
//   - Origin != Destination unless the producing Traffic explicitly
//     permits self-messages.
//   - Both indices lie in 0..number_tasks() of the producing Traffic.
//   - Payload is a LIFO byte stack: each wrapping traffic may push a
//     header when emitting and must pop exactly its own header when
//     consuming.
type Message struct {
	Origin        int
	Destination   int
	Size          int64
	CreationCycle Cycle
	Payload       []byte
	// IDTraffic optionally disambiguates messages produced by Sum-like
	// traffics when statistics need to attribute a message to its child.
	IDTraffic *int
}

// PushHeader returns a new Message whose Payload is header prepended to
// m.Payload, per the payload-stack invariant. m itself is not mutated:
// Message values are treated as immutable once produced.
func (m Message) PushHeader(header []byte) Message {
	out := make([]byte, 0, len(header)+len(m.Payload))
	out = append(out, header...)
	out = append(out, m.Payload...)
	m.Payload = out
	return m
}

// PopHeader splits off the first n bytes of Payload as a header, returning
// the header and a Message with the residual payload as a view (slice) of
// the original — composition wrappers must not decode by position-from-
// end, and must present only the residual bytes to their child's consume.
// Panics with PayloadUnderflow semantics if fewer than n bytes remain
// (spec.md §7: PayloadUnderflow is fatal, indicates a composition bug).
func (m Message) PopHeader(n int) (header []byte, rest Message) {
	if len(m.Payload) < n {
		panic(fmt.Sprintf("message: payload underflow popping %d-byte header from %d-byte payload", n, len(m.Payload)))
	}
	header = m.Payload[:n]
	m.Payload = m.Payload[n:]
	return header, m
}
