package internal

// Prand16 generates a pseudo random number from a seed. Feeding the result back
// as the next seed walks every non-zero 16-bit value.
func Prand16(seed uint16) uint16 {
	// 16bit Xorshift  https://en.wikipedia.org/wiki/Xorshift
	seed ^= seed << 7
	seed ^= seed >> 9
	seed ^= seed << 8
	return seed
}
