// Package format implements the binary layout of ZIP container structures.
//
// This package implements:
//   - Local file header codec: the 30-byte fixed header that precedes each
//     archive entry, decoded field by field with per-field failure reporting
//   - Checksum utilities: table-driven CRC-32 using the ZIP/zlib polynomial
//   - Compression method identifiers and MS-DOS timestamp decoding
package format

import (
	"encoding/binary"
	"fmt"
	"io"
)

// LocalFileHeaderSignature identifies a local file header ("PK\x03\x04"
// read as a little-endian uint32).
const LocalFileHeaderSignature uint32 = 0x04034b50

// LocalFileHeaderSize is the fixed size of the local file header in bytes (30 bytes).
// Layout: Signature(4) + VersionNeeded(2) + Flags(2) + CompressionMethod(2) +
// LastModTime(2) + LastModDate(2) + CRC32(4) + CompressedSize(4) +
// UncompressedSize(4) + FileNameLength(2) + ExtraFieldLength(2) = 30 bytes
const LocalFileHeaderSize = 30

// General purpose bit flags.
const (
	FlagEncrypted      uint16 = 1 << 0 // Entry payload is encrypted
	FlagDataDescriptor uint16 = 1 << 3 // Sizes and CRC follow the payload
)

// Field identifies one fixed field of the local file header.
type Field int

const (
	FieldSignature Field = iota
	FieldVersionNeeded
	FieldFlags
	FieldCompressionMethod
	FieldLastModTime
	FieldLastModDate
	FieldCRC32
	FieldCompressedSize
	FieldUncompressedSize
	FieldFileNameLength
	FieldExtraFieldLength
)

// String returns the field name used in diagnostics.
func (f Field) String() string {
	switch f {
	case FieldSignature:
		return "signature"
	case FieldVersionNeeded:
		return "version needed"
	case FieldFlags:
		return "flags"
	case FieldCompressionMethod:
		return "compression method"
	case FieldLastModTime:
		return "last mod time"
	case FieldLastModDate:
		return "last mod date"
	case FieldCRC32:
		return "crc32"
	case FieldCompressedSize:
		return "compressed size"
	case FieldUncompressedSize:
		return "uncompressed size"
	case FieldFileNameLength:
		return "file name length"
	case FieldExtraFieldLength:
		return "extra field length"
	default:
		return "unknown"
	}
}

// fieldLayout maps each field to its header-relative byte offset and width.
var fieldLayout = map[Field]struct{ offset, size int }{
	FieldSignature:         {0, 4},
	FieldVersionNeeded:     {4, 2},
	FieldFlags:             {6, 2},
	FieldCompressionMethod: {8, 2},
	FieldLastModTime:       {10, 2},
	FieldLastModDate:       {12, 2},
	FieldCRC32:             {14, 4},
	FieldCompressedSize:    {18, 4},
	FieldUncompressedSize:  {22, 4},
	FieldFileNameLength:    {26, 2},
	FieldExtraFieldLength:  {28, 2},
}

// Offset returns the byte offset of the field within the header.
func (f Field) Offset() int { return fieldLayout[f].offset }

// Size returns the width of the field in bytes.
func (f Field) Size() int { return fieldLayout[f].size }

// DecodeError reports that a specific header field could not be read.
type DecodeError struct {
	// Field is the header field whose read failed
	Field Field

	// Offset is the header-relative byte offset of the failed field
	Offset int64

	// Err is the underlying read error
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("format: failed reading %s at offset %d: %v", e.Field, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SignatureError reports a fully decoded header whose signature field does
// not equal LocalFileHeaderSignature. It is distinct from DecodeError: every
// field was readable, the bytes just do not open a local file header.
type SignatureError struct {
	Got uint32
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("format: invalid local file header signature: got=%08x want=%08x", e.Got, LocalFileHeaderSignature)
}

// LocalFileHeader represents the fixed portion of the per-entry metadata
// block that precedes each file's data inside a ZIP archive.
//
// Binary format (little-endian, 30 bytes):
//
//	[Signature:4][VersionNeeded:2][Flags:2][CompressionMethod:2]
//	[LastModTime:2][LastModDate:2][CRC32:4][CompressedSize:4]
//	[UncompressedSize:4][FileNameLength:2][ExtraFieldLength:2]
//
// The file name, extra field and entry data follow the fixed portion and are
// not decoded here.
type LocalFileHeader struct {
	// Signature is the format identifier (0x04034b50 for local file headers)
	Signature uint32

	// VersionNeeded is the minimum reader version required to extract
	VersionNeeded uint16

	// Flags contains the general purpose bit flags
	Flags uint16

	// CompressionMethod identifies how the entry data is compressed
	CompressionMethod CompressionMethod

	// LastModTime is the modification time in MS-DOS packed format
	LastModTime uint16

	// LastModDate is the modification date in MS-DOS packed format
	LastModDate uint16

	// CRC32 is the declared checksum of the uncompressed entry data
	CRC32 uint32

	// CompressedSize is the size of the entry data as stored.
	// Zero for streamed entries that use a data descriptor.
	CompressedSize uint32

	// UncompressedSize is the size of the entry data after extraction
	UncompressedSize uint32

	// FileNameLength is the length of the file name that follows the header
	FileNameLength uint16

	// ExtraFieldLength is the length of the extra field after the file name
	ExtraFieldLength uint16
}

// headerDecoder is a sequential cursor over the fixed header bytes.
// The first failed read is sticky; subsequent reads become no-ops.
type headerDecoder struct {
	r   io.Reader
	off int64
	err error
	buf [4]byte
}

func (d *headerDecoder) uint16(f Field) uint16 {
	if d.err != nil {
		return 0
	}
	if _, err := io.ReadFull(d.r, d.buf[:2]); err != nil {
		d.err = &DecodeError{Field: f, Offset: d.off, Err: err}
		return 0
	}
	d.off += 2
	return binary.LittleEndian.Uint16(d.buf[:2])
}

func (d *headerDecoder) uint32(f Field) uint32 {
	if d.err != nil {
		return 0
	}
	if _, err := io.ReadFull(d.r, d.buf[:4]); err != nil {
		d.err = &DecodeError{Field: f, Offset: d.off, Err: err}
		return 0
	}
	d.off += 4
	return binary.LittleEndian.Uint32(d.buf[:4])
}

// DecodeLocalFileHeader reads the 30-byte fixed header from r, field by
// field in wire order. If any individual read comes up short the returned
// error is a *DecodeError naming that field. The signature is checked only
// after all fields decoded; a mismatch is reported as *SignatureError.
//
// The decoder performs no seeking and does not consume the variable-length
// file name or extra field sections.
func DecodeLocalFileHeader(r io.Reader) (*LocalFileHeader, error) {
	d := &headerDecoder{r: r}
	h := &LocalFileHeader{}

	h.Signature = d.uint32(FieldSignature)
	h.VersionNeeded = d.uint16(FieldVersionNeeded)
	h.Flags = d.uint16(FieldFlags)
	h.CompressionMethod = CompressionMethod(d.uint16(FieldCompressionMethod))
	h.LastModTime = d.uint16(FieldLastModTime)
	h.LastModDate = d.uint16(FieldLastModDate)
	h.CRC32 = d.uint32(FieldCRC32)
	h.CompressedSize = d.uint32(FieldCompressedSize)
	h.UncompressedSize = d.uint32(FieldUncompressedSize)
	h.FileNameLength = d.uint16(FieldFileNameLength)
	h.ExtraFieldLength = d.uint16(FieldExtraFieldLength)

	if d.err != nil {
		return nil, d.err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// Marshal encodes the fixed header into its 30-byte binary format.
func (h *LocalFileHeader) Marshal() []byte {
	buf := make([]byte, LocalFileHeaderSize)
	offset := 0

	binary.LittleEndian.PutUint32(buf[offset:], h.Signature)
	offset += 4
	binary.LittleEndian.PutUint16(buf[offset:], h.VersionNeeded)
	offset += 2
	binary.LittleEndian.PutUint16(buf[offset:], h.Flags)
	offset += 2
	binary.LittleEndian.PutUint16(buf[offset:], uint16(h.CompressionMethod))
	offset += 2
	binary.LittleEndian.PutUint16(buf[offset:], h.LastModTime)
	offset += 2
	binary.LittleEndian.PutUint16(buf[offset:], h.LastModDate)
	offset += 2
	binary.LittleEndian.PutUint32(buf[offset:], h.CRC32)
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], h.CompressedSize)
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], h.UncompressedSize)
	offset += 4
	binary.LittleEndian.PutUint16(buf[offset:], h.FileNameLength)
	offset += 2
	binary.LittleEndian.PutUint16(buf[offset:], h.ExtraFieldLength)

	return buf
}

// Validate checks that the header carries the local file header signature.
// All other fields are structurally well-typed by construction and carry no
// semantic constraints at this layer.
func (h *LocalFileHeader) Validate() error {
	if h.Signature != LocalFileHeaderSignature {
		return &SignatureError{Got: h.Signature}
	}
	return nil
}

// TrailingLength returns the number of bytes that follow the fixed header
// according to its declared lengths: file name, extra field and entry data.
func (h *LocalFileHeader) TrailingLength() int64 {
	return int64(h.FileNameLength) + int64(h.ExtraFieldLength) + int64(h.CompressedSize)
}
