package message

import "encoding/binary"

// Uint32Header encodes a fixed-width (4-byte), little-endian uint32 header,
// the format spec.md §3 documents for Sum/demultiplex wrappers (child
// index) and uniqueness-tracking traffics (monotonic identifier).
func Uint32Header(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// PopUint32Header pops a 4-byte little-endian uint32 header.
func PopUint32Header(m Message) (uint32, Message) {
	header, rest := m.PopHeader(4)
	return binary.LittleEndian.Uint32(header), rest
}

// Uint64Header encodes a fixed-width (8-byte), little-endian uint64
// header, used by Traffic variants that tag each generated message with a
// monotonic identifier to track it through generation and consumption
// (spec.md §4.2: Homogeneous/Burst/PeriodicBurst/MultimodalBurst/
// BoundedDifference's "set of generated messages" bookkeeping).
func Uint64Header(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// PopUint64Header pops an 8-byte little-endian uint64 header.
func PopUint64Header(m Message) (uint64, Message) {
	header, rest := m.PopHeader(8)
	return binary.LittleEndian.Uint64(header), rest
}

// PairHeader encodes the (identifier, child-index) pair header documented
// for nested sequence wrappers (spec.md §3), as two little-endian uint32s.
func PairHeader(id, childIndex uint32) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b[0:4], id)
	binary.LittleEndian.PutUint32(b[4:8], childIndex)
	return b
}

// PopPairHeader pops an 8-byte (identifier, child-index) header.
func PopPairHeader(m Message) (id uint32, childIndex uint32, rest Message) {
	header, rest := m.PopHeader(8)
	return binary.LittleEndian.Uint32(header[0:4]), binary.LittleEndian.Uint32(header[4:8]), rest
}
