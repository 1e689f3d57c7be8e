package adler32

const (
	// Modulus is the largest prime smaller than 65536. Both running sums
	// are reduced modulo this value.
	Modulus = 65521

	// MaxBlock is the largest n such that
	// 255 * n * (n+1) / 2 + (n+1) * (Modulus-1) <= 2^32-1.
	// That many bytes can be folded into s1 and s2 before a reduction is
	// needed to keep uint32 arithmetic from overflowing. It is a multiple
	// of 16 so the bulk loop never splits a group.
	MaxBlock = 5552

	// Size is the number of bytes returned by Finalize and Sum.
	Size = 4

	// groupSize is the number of bytes handled per unrolled iteration.
	groupSize = 16
)
