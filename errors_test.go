package zipcheck

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie-x/zipcheck/internal/format"
)

func TestCode_StableValues(t *testing.T) {
	// Codes double as process exit codes; their numeric values are part of
	// the tool's contract and must not shift.
	want := map[Code]int{
		CodeOK:                    0,
		CodeArguments:             1,
		CodeFileOpen:              2,
		CodeMagicNumber:           3,
		CodeHeaderSignature:       4,
		CodeHeaderRead:            5,
		CodeSignatureRead:         6,
		CodeVersionNeededRead:     7,
		CodeFlagsRead:             8,
		CodeCompressionMethodRead: 9,
		CodeLastModTimeRead:       10,
		CodeLastModDateRead:       11,
		CodeCRC32Read:             12,
		CodeCompressedSizeRead:    13,
		CodeUncompressedSizeRead:  14,
		CodeFileNameLengthRead:    15,
		CodeExtraFieldLengthRead:  16,
		CodeReadFail:              17,
	}

	for code, value := range want {
		assert.Equal(t, value, code.ExitCode(), "code %s", code)
	}
}

func TestCode_Strings(t *testing.T) {
	for c := CodeOK; c <= CodeReadFail; c++ {
		assert.NotEqual(t, "unknown", c.String(), "code %d has no identifier", int(c))
		assert.NotEqual(t, "unknown failure", c.Reason(), "code %d has no reason", int(c))
	}
	assert.Equal(t, "unknown", Code(99).String())
	assert.Equal(t, "unknown failure", Code(99).Reason())
}

func TestCode_FieldReasons(t *testing.T) {
	assert.Equal(t, "failed reading compressed size", CodeCompressedSizeRead.Reason())
	assert.Equal(t, "failed reading signature", CodeSignatureRead.Reason())
	assert.Equal(t, "incorrect magic number", CodeMagicNumber.Reason())
}

func TestClassify_FieldCoverage(t *testing.T) {
	// Every header field must map to its own code.
	for f := format.FieldSignature; f <= format.FieldExtraFieldLength; f++ {
		err := classify(&format.DecodeError{Field: f, Offset: int64(f.Offset()), Err: io.ErrUnexpectedEOF})

		var e *Error
		require.ErrorAs(t, err, &e, "field %s", f)
		assert.Equal(t, fieldCodes[f], e.Code, "field %s", f)
		assert.Equal(t, int64(f.Offset()), e.Offset, "field %s", f)
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF), "field %s keeps its cause", f)
	}
}

func TestClassify_SignatureMismatch(t *testing.T) {
	err := classify(&format.SignatureError{Got: 0x02014b50})

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, CodeHeaderSignature, e.Code)

	// Signature mismatch must be distinct from every read-failure kind.
	for _, code := range fieldCodes {
		assert.NotEqual(t, code, e.Code)
	}
}

func TestClassify_UnknownError(t *testing.T) {
	err := classify(errors.New("boom"))
	assert.Equal(t, CodeHeaderRead, CodeOf(err))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeOK, CodeOf(nil))
	assert.Equal(t, CodeMagicNumber, CodeOf(&Error{Code: CodeMagicNumber}))
	assert.Equal(t, CodeReadFail, CodeOf(errors.New("untagged")))
}

func TestError_Message(t *testing.T) {
	e := &Error{Code: CodeMagicNumber, Offset: 0}
	assert.Equal(t, "zipcheck: incorrect magic number", e.Error())

	e = &Error{Code: CodeFileOpen, Offset: -1, Err: errors.New("permission denied")}
	assert.Equal(t, "zipcheck: could not open file: permission denied", e.Error())
	assert.EqualError(t, errors.Unwrap(e), "permission denied")
}
