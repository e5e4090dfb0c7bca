package a3

// descrambleKey is the rotating 32-bit XOR pattern used to de-scramble
// ATRAC3 frames carried inside a RealMedia container. RIFF/OMA streams
// never set Scrambled and this path is not exercised by them (spec §4.4).
const descrambleKey uint32 = 0x537F6103

// descramble XORs src's bytes against descrambleKey, rotated right by
// addr mod 4 bytes (addr is the buffer's starting byte address, which for
// a freshly read compressed frame is simply its offset into the original
// stream — callers with no meaningful address pass 0). src is never
// mutated; the result is a fresh buffer.
func descramble(src []byte, addr int) []byte {
	key := [4]byte{
		byte(descrambleKey >> 24 & 0xFF), byte(descrambleKey >> 16 & 0xFF),
		byte(descrambleKey >> 8 & 0xFF), byte(descrambleKey & 0xFF),
	}
	rot := addr % 4
	var rotated [4]byte
	for i := 0; i < 4; i++ {
		rotated[i] = key[(i-rot+4)%4]
	}

	dst := make([]byte, len(src))
	for i, b := range src {
		dst[i] = b ^ rotated[i%4]
	}
	return dst
}
