// Package murmur computes the MurmurHash3 x86_32 fingerprint used by store
// to pick a key's bucket. It is not cryptographic; it exists purely for
// bucket distribution.
package murmur

const (
	c1 uint32 = 0xcc9e2d51
	c2 uint32 = 0x1b873593
)

func rotl32(x uint32, r uint8) uint32 {
	return (x << r) | (x >> (32 - r))
}

// Sum32 implements MurmurHash3_x86_32 over data with the given seed.
// Deterministic and endian-independent: the reference block loop reads four
// bytes at a time explicitly rather than reinterpreting the slice, so the
// result does not depend on host byte order.
func Sum32(data []byte, seed uint32) uint32 {
	h := seed
	n := len(data)
	nBlocks := n / 4

	for i := 0; i < nBlocks; i++ {
		k := uint32(data[i*4]) | uint32(data[i*4+1])<<8 | uint32(data[i*4+2])<<16 | uint32(data[i*4+3])<<24
		k *= c1
		k = rotl32(k, 15)
		k *= c2

		h ^= k
		h = rotl32(h, 13)
		h = h*5 + 0xe6546b64
	}

	tail := data[nBlocks*4:]
	var k1 uint32
	switch len(tail) {
	case 3:
		k1 ^= uint32(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint32(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint32(tail[0])
		k1 *= c1
		k1 = rotl32(k1, 15)
		k1 *= c2
		h ^= k1
	}

	h ^= uint32(n)
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16

	return h
}
