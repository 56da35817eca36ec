package format

import (
	"bytes"
	"hash/crc32"
	"testing"
)

func TestComputeCRC32_CheckValue(t *testing.T) {
	// Standard CRC-32 check value.
	if got := ComputeCRC32([]byte("123456789")); got != 0xcbf43926 {
		t.Errorf("ComputeCRC32(\"123456789\") = %08x, want cbf43926", got)
	}
}

func TestComputeCRC32_Empty(t *testing.T) {
	if got := ComputeCRC32(nil); got != 0 {
		t.Errorf("ComputeCRC32(nil) = %08x, want 00000000", got)
	}
	if got := ComputeCRC32([]byte{}); got != 0 {
		t.Errorf("ComputeCRC32(empty) = %08x, want 00000000", got)
	}
}

func TestComputeCRC32_MatchesStdlib(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"single byte", []byte{0x00}},
		{"all ones", bytes.Repeat([]byte{0xff}, 32)},
		{"text", []byte("the quick brown fox jumps over the lazy dog")},
		{"binary header", (&LocalFileHeader{Signature: LocalFileHeaderSignature, CompressedSize: 42}).Marshal()},
		{"large buffer", bytes.Repeat([]byte("zipcheck"), 128*1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := crc32.ChecksumIEEE(tt.data)
			if got := ComputeCRC32(tt.data); got != want {
				t.Errorf("ComputeCRC32() = %08x, want %08x", got, want)
			}
		})
	}
}

func TestComputeCRC32_Deterministic(t *testing.T) {
	data := []byte("determinism check")
	first := ComputeCRC32(data)
	for i := 0; i < 10; i++ {
		if got := ComputeCRC32(data); got != first {
			t.Fatalf("call %d: ComputeCRC32() = %08x, want %08x", i, got, first)
		}
	}
}

func TestVerifyCRC32(t *testing.T) {
	data := []byte("payload")
	sum := ComputeCRC32(data)

	if !VerifyCRC32(data, sum) {
		t.Error("VerifyCRC32() rejected matching checksum")
	}
	if VerifyCRC32(data, sum^1) {
		t.Error("VerifyCRC32() accepted wrong checksum")
	}
}
