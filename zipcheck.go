// Package zipcheck reports whether a file is a well-formed ZIP archive by
// decoding its first local file header.
//
// The check is deliberately shallow: it proves that one header parses, that
// its signature matches, and that the declared file name, extra field and
// entry data physically fit inside the file. Entry payloads are never
// decompressed and stored checksums are never recomputed.
//
// Example usage:
//
//	v, err := zipcheck.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res := v.Validate("archive.zip")
//	if !res.Valid() {
//	    fmt.Println(res.Reason)
//	    os.Exit(res.Code.ExitCode())
//	}
package zipcheck

import (
	"io"
	"os"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/charlie-x/zipcheck/internal/format"
	"github.com/charlie-x/zipcheck/metrics"
)

// Version is the current version of zipcheck.
const Version = "1.0.0"

// localFileMagic is the byte sequence opening a local file header.
var localFileMagic = [4]byte{0x50, 0x4b, 0x03, 0x04}

// Validator checks that files begin with a well-formed ZIP local file
// header. A Validator is safe for concurrent use; every Validate call owns
// its own file handle.
type Validator struct {
	logger  *zap.Logger
	metrics *metrics.Collector
}

// New creates a Validator with the given options.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{logger: zap.NewNop()}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Result is the terminal outcome of validating one file. Exactly one
// (code, reason) pair is produced per validation; there are no retries.
type Result struct {
	// Path is the validated file, empty for reader-based validations
	Path string

	// Code is the outcome kind, CodeOK on success
	Code Code

	// Reason is the human-readable description of the outcome
	Reason string

	// Header is the decoded local file header, nil unless decoding succeeded
	Header *format.LocalFileHeader
}

// Valid reports whether validation succeeded.
func (r *Result) Valid() bool { return r.Code == CodeOK }

// Validate opens the file at path and checks that it begins with a
// well-formed local file header. All failures are reported through the
// Result; Validate never panics.
func (v *Validator) Validate(path string) *Result {
	start := time.Now()

	var res *Result
	f, err := os.Open(path) //nolint:gosec // G304: Path is the user-provided file to check
	if err != nil {
		res = newResult(path, nil, &Error{Code: CodeFileOpen, Offset: -1, Err: err})
	} else {
		hdr, verr := v.check(f)
		_ = f.Close()
		res = newResult(path, hdr, verr)
	}

	v.observe(res, time.Since(start))
	return res
}

// ValidateReader runs the same checks against an already opened stream
// positioned at its start. The caller retains ownership of rs.
func (v *Validator) ValidateReader(rs io.ReadSeeker) *Result {
	start := time.Now()
	hdr, err := v.check(rs)
	res := newResult("", hdr, err)
	v.observe(res, time.Since(start))
	return res
}

// check runs the probe, rewind, decode and skip sequence. The returned
// header is non-nil whenever decoding succeeded, even if the trailing region
// check fails afterwards.
func (v *Validator) check(rs io.ReadSeeker) (*format.LocalFileHeader, error) {
	// Fast-path probe of the first four bytes. Redundant with the decoded
	// signature field, but rejects self-extracting archives and arbitrary
	// files before any header work. Rejects empty archives too: those start
	// with the end-of-central-directory signature instead.
	var probe [4]byte
	if _, err := io.ReadFull(rs, probe[:]); err != nil {
		return nil, &Error{Code: CodeReadFail, Offset: 0, Err: pkgerrors.Wrap(err, "reading magic probe")}
	}
	if probe != localFileMagic {
		return nil, &Error{Code: CodeMagicNumber, Offset: 0}
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, &Error{Code: CodeReadFail, Offset: 0, Err: pkgerrors.Wrap(err, "rewinding")}
	}

	hdr, err := format.DecodeLocalFileHeader(rs)
	if err != nil {
		return nil, classify(err)
	}

	// The declared variable-length region must fit inside the stream. Seek
	// reports no error for positions past end of file, so the end offset is
	// checked explicitly.
	if err := skipTrailing(rs, hdr.TrailingLength()); err != nil {
		return hdr, err
	}
	return hdr, nil
}

// skipTrailing advances rs by n bytes, failing if fewer than n bytes remain.
func skipTrailing(rs io.ReadSeeker, n int64) error {
	cur, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return &Error{Code: CodeReadFail, Offset: -1, Err: pkgerrors.Wrap(err, "querying position")}
	}
	end, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return &Error{Code: CodeReadFail, Offset: cur, Err: pkgerrors.Wrap(err, "seeking to end")}
	}
	if cur+n > end {
		return &Error{
			Code:   CodeReadFail,
			Offset: cur,
			Err:    pkgerrors.Errorf("declared entry region of %d bytes extends past end of stream (%d of %d bytes remain)", n, end-cur, n),
		}
	}
	if _, err := rs.Seek(cur+n, io.SeekStart); err != nil {
		return &Error{Code: CodeReadFail, Offset: cur, Err: pkgerrors.Wrap(err, "skipping entry region")}
	}
	return nil
}

func newResult(path string, hdr *format.LocalFileHeader, err error) *Result {
	if err == nil {
		return &Result{Path: path, Code: CodeOK, Reason: CodeOK.Reason(), Header: hdr}
	}
	return &Result{Path: path, Code: CodeOf(err), Reason: err.Error(), Header: hdr}
}

func (v *Validator) observe(res *Result, took time.Duration) {
	if v.metrics != nil {
		v.metrics.RecordValidation(res.Valid(), took)
		if !res.Valid() {
			v.metrics.RecordFailureCode(res.Code.String())
		}
	}

	if res.Valid() {
		v.logger.Debug("validation succeeded",
			zap.String("path", res.Path),
			zap.Stringer("method", res.Header.CompressionMethod),
			zap.Duration("took", took))
	} else {
		v.logger.Debug("validation failed",
			zap.String("path", res.Path),
			zap.Stringer("code", res.Code),
			zap.String("reason", res.Reason),
			zap.Duration("took", took))
	}
}

// ChecksumCRC32 computes the ZIP CRC-32 of data (polynomial 0xEDB88320,
// matching zlib). The validator itself never recomputes entry checksums; the
// header's stored CRC-32 is taken at face value. The engine is exposed for
// callers that need checksums of their own data.
func ChecksumCRC32(data []byte) uint32 {
	return format.ComputeCRC32(data)
}
