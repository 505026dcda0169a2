package message

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushPopHeaderRoundTrip(t *testing.T) {
	inner := Message{Origin: 1, Destination: 2, Size: 64, Payload: []byte("payload")}
	wrapped := inner.PushHeader(Uint32Header(7))

	idx, rest := PopUint32Header(wrapped)
	require.Equal(t, uint32(7), idx)
	require.Equal(t, inner.Payload, rest.Payload)
}

func TestNestedHeadersPeelInOrder(t *testing.T) {
	inner := Message{Payload: []byte("x")}
	wrapped := inner.PushHeader(Uint32Header(3)).PushHeader(Uint32Header(9))

	outer, rest := PopUint32Header(wrapped)
	require.Equal(t, uint32(9), outer)
	next, rest2 := PopUint32Header(rest)
	require.Equal(t, uint32(3), next)
	require.Equal(t, inner.Payload, rest2.Payload)
}

func TestPopHeaderUnderflowPanics(t *testing.T) {
	m := Message{Payload: []byte{1, 2}}
	require.Panics(t, func() { m.PopHeader(4) })
}

func TestPairHeaderRoundTrip(t *testing.T) {
	m := Message{Payload: []byte("rest")}
	wrapped := m.PushHeader(PairHeader(42, 5))
	id, child, rest := PopPairHeader(wrapped)
	require.Equal(t, uint32(42), id)
	require.Equal(t, uint32(5), child)
	require.Equal(t, m.Payload, rest.Payload)
}
