// Package transport reads and writes Content-Length framed JSON-RPC messages
// over a byte-stream pair. A frame is one or more CRLF-terminated header
// lines, an empty line, then exactly Content-Length bytes of UTF-8 JSON.
// Header names are case-insensitive; only Content-Length is honored.
//
// The reader is strictly pull-based: every read consumes from an internal
// push-back buffer before touching the underlying stream, and "stream ended
// with bytes still buffered" is a first-class state. Given N complete frames
// followed by a close, N reads each yield one message and the next read
// yields end-of-stream, regardless of how the bytes were chunked.
package transport

// file: internal/transport/frame.go

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/evasystems/eva-mcp/internal/jsonrpc"
	"github.com/evasystems/eva-mcp/internal/logging"
)

// headerContentLength is the one header the reader honors. Matching is
// case-insensitive; all other headers are ignored.
const headerContentLength = "content-length"

// readChunkSize is how much the reader requests from the underlying stream
// per fill. Arbitrary; the push-back buffer grows as needed.
const readChunkSize = 4096

// Transport is the interface for exchanging decoded JSON-RPC messages.
// Implementations must keep diagnostics off the protocol output stream.
type Transport interface {
	// Read produces at most one message. It returns a request on success,
	// an error satisfying IsSkipError when a frame had no usable
	// Content-Length (read again), and an error satisfying IsClosedError
	// when the input is exhausted. A frame whose body is not valid JSON is
	// returned as a synthetic request with method jsonrpc.MethodParseError
	// and a null id, so the caller can answer with a parse-error envelope.
	Read(ctx context.Context) (*jsonrpc.Request, error)

	// Write serializes the response and emits it as a single frame.
	// The write is complete when Write returns; no partial-send semantics
	// are exposed.
	Write(ctx context.Context, resp *jsonrpc.Response) error

	// Close marks the transport closed. Subsequent reads and writes fail
	// with a closed error.
	Close() error
}

// FrameTransport implements Transport over an io.Reader / io.Writer pair.
// It is not safe for concurrent reads; writes are serialized internally.
type FrameTransport struct {
	in     io.Reader
	out    io.Writer
	logger logging.Logger

	// buf holds bytes consumed from the input but not yet parsed. When a
	// header delimiter or body boundary lands mid-chunk, the remainder
	// stays here for subsequent reads.
	buf []byte
	// eof is set once the underlying stream has reported io.EOF. Buffered
	// bytes are still served after that point.
	eof bool
	// readErr records a non-EOF failure of the underlying stream.
	readErr error

	writeMu sync.Mutex
	closeMu sync.RWMutex
	closed  bool
}

// New creates a framed transport over the given byte streams. Diagnostics go
// to the provided logger, never to out.
func New(in io.Reader, out io.Writer, logger logging.Logger) *FrameTransport {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	return &FrameTransport{
		in:     in,
		out:    out,
		logger: logger.WithField("component", "frame_transport"),
	}
}

// Read implements Transport.Read.
func (t *FrameTransport) Read(ctx context.Context) (*jsonrpc.Request, error) {
	t.closeMu.RLock()
	if t.closed {
		t.closeMu.RUnlock()
		return nil, NewClosedError("read")
	}
	t.closeMu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, NewError(ErrGeneric, "context ended before read", err)
	}

	contentLength, err := t.readHeaders()
	if err != nil {
		return nil, err
	}
	if contentLength <= 0 {
		reason := "Content-Length missing or invalid"
		if contentLength == 0 {
			reason = "Content-Length is zero"
		}
		t.logger.Warn("Discarding frame without usable Content-Length.", "contentLength", contentLength)
		return nil, NewSkipError(reason)
	}

	body, err := t.readBody(contentLength)
	if err != nil {
		return nil, err
	}

	var req jsonrpc.Request
	if decodeErr := json.Unmarshal(body, &req); decodeErr != nil {
		t.logger.Warn("Frame body is not valid JSON.", "error", decodeErr, "bodyPreview", calculatePreview(body))
		return parseErrorRequest(decodeErr), nil
	}

	t.logger.Debug("Read framed message.", "method", req.Method, "bytes", len(body))
	return &req, nil
}

// readHeaders consumes one header block and reports the Content-Length it
// carried, or -1 when the header was absent or unparseable. A zero return
// means an explicit "Content-Length: 0".
func (t *FrameTransport) readHeaders() (int, error) {
	contentLength := -1
	for {
		line, err := t.readLine()
		if err != nil {
			return 0, err
		}
		if len(line) == 0 {
			return contentLength, nil
		}
		name, value, ok := strings.Cut(string(line), ":")
		if !ok {
			// Malformed header line; tolerated and ignored.
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(name), headerContentLength) {
			continue
		}
		n, parseErr := strconv.Atoi(strings.TrimSpace(value))
		if parseErr != nil || n < 0 {
			// Leave contentLength at -1 (or an earlier valid value) so the
			// caller skips the frame.
			t.logger.Warn("Unparseable Content-Length header.", "value", strings.TrimSpace(value))
			continue
		}
		contentLength = n
	}
}

// readLine returns the next header line with the trailing CR stripped.
// End-of-stream before a complete line is a closed condition; a partial
// header cannot be answered, so no response is owed.
func (t *FrameTransport) readLine() ([]byte, error) {
	for {
		if i := bytes.IndexByte(t.buf, '\n'); i >= 0 {
			line := t.buf[:i]
			t.buf = t.buf[i+1:]
			return bytes.TrimSuffix(line, []byte("\r")), nil
		}
		if err := t.fill(); err != nil {
			return nil, err
		}
	}
}

// readBody returns exactly n body bytes, preserving any surplus already
// buffered for the next frame.
func (t *FrameTransport) readBody(n int) ([]byte, error) {
	for len(t.buf) < n {
		if err := t.fill(); err != nil {
			return nil, err
		}
	}
	body := make([]byte, n)
	copy(body, t.buf[:n])
	t.buf = t.buf[n:]
	return body, nil
}

// fill appends whatever the underlying stream has available to the push-back
// buffer. Once the stream has ended, fill fails with a closed error; callers
// only reach that when the buffer no longer holds the complete line or body
// they need, which is what makes buffered frames behind a closed stream
// readable to completion. Any partial frame left buffered at that point is
// dropped.
func (t *FrameTransport) fill() error {
	if t.eof {
		return NewClosedError("read").WithContext("buffered", len(t.buf))
	}
	if t.readErr != nil {
		return NewIOError("read", t.readErr)
	}

	chunk := make([]byte, readChunkSize)
	n, err := t.in.Read(chunk)
	if n > 0 {
		t.buf = append(t.buf, chunk[:n]...)
	}
	switch {
	case err == nil:
		// A zero-byte, error-free read is legal for an io.Reader; loop.
	case err == io.EOF:
		t.eof = true
		if n == 0 && len(t.buf) == 0 {
			return NewClosedError("read")
		}
	default:
		t.readErr = err
		if n == 0 {
			return NewIOError("read", err)
		}
	}
	return nil
}

// Write implements Transport.Write.
func (t *FrameTransport) Write(ctx context.Context, resp *jsonrpc.Response) error {
	t.closeMu.RLock()
	if t.closed {
		t.closeMu.RUnlock()
		return NewClosedError("write")
	}
	t.closeMu.RUnlock()

	if err := ctx.Err(); err != nil {
		return NewError(ErrGeneric, "context ended before write", err)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return NewError(ErrGeneric, "failed to marshal response", err)
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	// Header and body go out in a single Write so a concurrent diagnostic
	// consumer of the stream never observes a torn frame.
	frame := make([]byte, 0, len(body)+32)
	frame = append(frame, fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))...)
	frame = append(frame, body...)

	n, err := t.out.Write(frame)
	if err == nil && n < len(frame) {
		err = io.ErrShortWrite
	}
	if err != nil {
		t.logger.Error("Failed to write framed message.", "error", err)
		return NewIOError("write", err)
	}
	t.logger.Debug("Wrote framed message.", "bytes", len(body))
	return nil
}

// Close implements Transport.Close.
func (t *FrameTransport) Close() error {
	t.closeMu.Lock()
	defer t.closeMu.Unlock()
	t.closed = true
	return nil
}

// parseErrorRequest builds the synthetic request substituted for a frame
// whose body failed to decode. Its id is null and its params carry the
// decoder's message for the dispatcher to echo as error data.
func parseErrorRequest(cause error) *jsonrpc.Request {
	params, _ := json.Marshal(map[string]string{"message": cause.Error()})
	return &jsonrpc.Request{
		Method: jsonrpc.MethodParseError,
		Params: params,
		ID:     nil,
		Notif:  false,
	}
}

// calculatePreview generates a short, safe preview of byte data for logging.
func calculatePreview(data []byte) string {
	const maxPreviewLen = 100
	preview := data
	truncated := false
	if len(preview) > maxPreviewLen {
		preview = preview[:maxPreviewLen]
		truncated = true
	}
	clean := bytes.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return '.'
		}
		return r
	}, preview)
	if truncated {
		return string(clean) + "..."
	}
	return string(clean)
}
