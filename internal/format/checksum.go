package format

// crc32Polynomial is the reflected polynomial used by the ZIP format,
// identical to the zlib/IEEE CRC-32.
const crc32Polynomial uint32 = 0xedb88320

// crc32Table is the 256-entry lookup table, built once during package
// initialization and read-only afterwards.
var crc32Table = makeCRC32Table()

func makeCRC32Table() *[256]uint32 {
	var table [256]uint32
	for i := uint32(0); i < 256; i++ {
		crc := i
		for j := 0; j < 8; j++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ crc32Polynomial
			} else {
				crc >>= 1
			}
		}
		table[i] = crc
	}
	return &table
}

// ComputeCRC32 computes the ZIP CRC-32 checksum of data. The accumulator is
// seeded with all ones and complemented at the end, so the empty input
// checksums to zero. The result matches zlib's crc32 bit for bit.
func ComputeCRC32(data []byte) uint32 {
	crc := ^uint32(0)
	for _, b := range data {
		crc = crc32Table[byte(crc)^b] ^ (crc >> 8)
	}
	return ^crc
}

// VerifyCRC32 reports whether the computed checksum of data matches the
// expected value.
func VerifyCRC32(data []byte, expected uint32) bool {
	return ComputeCRC32(data) == expected
}
