package scalarval

import "math/big"

// twoPow128 is used to wrap/unwrap the 128-bit two's-complement
// representation Decimal values store their scaled integer in.
var twoPow128 = new(big.Int).Lsh(big.NewInt(1), 128)

// putInt128LE encodes v as a 16-byte little-endian two's-complement
// integer into dst[:16] — the tuple-storage layout §6 specifies for
// Decimal ("16 bytes of little-endian two's-complement scaled integer,
// host layout").
func putInt128LE(dst []byte, v *big.Int) {
	wrapped := new(big.Int).Mod(v, twoPow128)
	be := wrapped.Bytes()
	var full [16]byte
	copy(full[16-len(be):], be)
	for i := 0; i < 16; i++ {
		dst[i] = full[15-i]
	}
}

// int128FromLE decodes a 16-byte little-endian two's-complement integer
// from src[:16].
func int128FromLE(src []byte) *big.Int {
	var be [16]byte
	for i := 0; i < 16; i++ {
		be[i] = src[15-i]
	}
	u := new(big.Int).SetBytes(be[:])
	if be[0]&0x80 != 0 {
		u.Sub(u, twoPow128)
	}
	return u
}

// putInt128BE encodes v as 16-byte big-endian two's-complement, used by
// the export/wire Decimal limb layout (§4.I/§6).
func putInt128BE(dst []byte, v *big.Int) {
	wrapped := new(big.Int).Mod(v, twoPow128)
	be := wrapped.Bytes()
	var full [16]byte
	copy(full[16-len(be):], be)
	copy(dst, full[:])
}

// int128FromBE decodes a 16-byte big-endian two's-complement integer.
func int128FromBE(src []byte) *big.Int {
	var full [16]byte
	copy(full[:], src[:16])
	u := new(big.Int).SetBytes(full[:])
	if full[0]&0x80 != 0 {
		u.Sub(u, twoPow128)
	}
	return u
}
