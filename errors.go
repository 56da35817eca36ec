package zipcheck

import (
	"errors"
	"fmt"

	"github.com/charlie-x/zipcheck/internal/format"
)

// Code classifies the terminal outcome of a validation. The zero value means
// success.
//
// Code values are stable and suitable as process exit codes: 0 for a valid
// file, the first-encountered failure kind otherwise.
type Code int

const (
	CodeOK Code = iota
	CodeArguments
	CodeFileOpen
	CodeMagicNumber
	CodeHeaderSignature
	CodeHeaderRead
	CodeSignatureRead
	CodeVersionNeededRead
	CodeFlagsRead
	CodeCompressionMethodRead
	CodeLastModTimeRead
	CodeLastModDateRead
	CodeCRC32Read
	CodeCompressedSizeRead
	CodeUncompressedSizeRead
	CodeFileNameLengthRead
	CodeExtraFieldLengthRead
	CodeReadFail
)

// String returns a short stable identifier for the code.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeArguments:
		return "arguments"
	case CodeFileOpen:
		return "file-open"
	case CodeMagicNumber:
		return "magic-number"
	case CodeHeaderSignature:
		return "header-signature"
	case CodeHeaderRead:
		return "header-read"
	case CodeSignatureRead:
		return "signature-read"
	case CodeVersionNeededRead:
		return "version-needed-read"
	case CodeFlagsRead:
		return "flags-read"
	case CodeCompressionMethodRead:
		return "compression-method-read"
	case CodeLastModTimeRead:
		return "last-mod-time-read"
	case CodeLastModDateRead:
		return "last-mod-date-read"
	case CodeCRC32Read:
		return "crc32-read"
	case CodeCompressedSizeRead:
		return "compressed-size-read"
	case CodeUncompressedSizeRead:
		return "uncompressed-size-read"
	case CodeFileNameLengthRead:
		return "file-name-length-read"
	case CodeExtraFieldLengthRead:
		return "extra-field-length-read"
	case CodeReadFail:
		return "read-fail"
	default:
		return "unknown"
	}
}

// Reason returns the human-readable description of the code, suitable for
// presenting to operators alongside the exit code.
func (c Code) Reason() string {
	switch c {
	case CodeOK:
		return "the file is a valid ZIP file"
	case CodeArguments:
		return "missing required argument"
	case CodeFileOpen:
		return "could not open file"
	case CodeMagicNumber:
		return "incorrect magic number"
	case CodeHeaderSignature:
		return "invalid local file header signature"
	case CodeHeaderRead:
		return "failed reading local file header"
	case CodeReadFail:
		return "failed to read from file"
	default:
		if f, ok := codeFields[c]; ok {
			return "failed reading " + f.String()
		}
		return "unknown failure"
	}
}

// ExitCode returns the code as a process exit status.
func (c Code) ExitCode() int { return int(c) }

// fieldCodes maps header fields to their read-failure codes.
var fieldCodes = map[format.Field]Code{
	format.FieldSignature:         CodeSignatureRead,
	format.FieldVersionNeeded:     CodeVersionNeededRead,
	format.FieldFlags:             CodeFlagsRead,
	format.FieldCompressionMethod: CodeCompressionMethodRead,
	format.FieldLastModTime:       CodeLastModTimeRead,
	format.FieldLastModDate:       CodeLastModDateRead,
	format.FieldCRC32:             CodeCRC32Read,
	format.FieldCompressedSize:    CodeCompressedSizeRead,
	format.FieldUncompressedSize:  CodeUncompressedSizeRead,
	format.FieldFileNameLength:    CodeFileNameLengthRead,
	format.FieldExtraFieldLength:  CodeExtraFieldLengthRead,
}

// codeFields is the inverse of fieldCodes.
var codeFields = func() map[Code]format.Field {
	m := make(map[Code]format.Field, len(fieldCodes))
	for f, c := range fieldCodes {
		m[c] = f
	}
	return m
}()

// Error is a validation failure tagged with its Code. Failures are always
// returned as values, classified to their most specific kind at the point of
// detection, and never panic.
type Error struct {
	// Code is the failure kind
	Code Code

	// Offset is the byte offset at which the failure was detected,
	// -1 when not applicable
	Offset int64

	// Err is the underlying cause, may be nil
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("zipcheck: %s: %v", e.Code.Reason(), e.Err)
	}
	return "zipcheck: " + e.Code.Reason()
}

func (e *Error) Unwrap() error { return e.Err }

// CodeOf extracts the Code carried by err. A nil error maps to CodeOK, an
// untagged error to CodeReadFail.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeReadFail
}

// classify maps decoder failures onto the validation taxonomy, preserving
// the specific field kind and byte offset.
func classify(err error) error {
	var de *format.DecodeError
	if errors.As(err, &de) {
		code, ok := fieldCodes[de.Field]
		if !ok {
			code = CodeHeaderRead
		}
		return &Error{Code: code, Offset: de.Offset, Err: de}
	}

	var se *format.SignatureError
	if errors.As(err, &se) {
		return &Error{Code: CodeHeaderSignature, Offset: 0, Err: se}
	}

	return &Error{Code: CodeHeaderRead, Offset: -1, Err: err}
}
