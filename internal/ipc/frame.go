// Package ipc implements the UNIX-domain IPC server of spec §4.7: the
// i3-compatible framed protocol, request dispatch, and event broadcast
// to subscribed clients.
package ipc

import (
	"encoding/binary"
	"io"

	"github.com/wmcore/corewm/internal/wmerrors"
)

// Magic is the 6-byte ASCII preamble every frame starts with.
const Magic = "i3-ipc"

// HeaderLen is the fixed header size: 6 magic bytes, a u32 payload
// length and a u32 type/event code, all little-endian (spec §4.7).
const HeaderLen = len(Magic) + 4 + 4

// EventBit is OR'd into an event kind to distinguish it from a request
// code when written as a frame's type field.
const EventBit uint32 = 0x80000000

// Frame is one decoded i3-ipc message.
type Frame struct {
	Type    uint32
	Payload []byte
}

// ReadFrame reads one frame from r, validating the magic. It returns a
// wmerrors.IpcProtocol error on a short read or bad magic, matching
// §4.7's "disconnected on ... bad magic" rule — callers close the
// connection on any error.
func ReadFrame(r io.Reader) (Frame, error) {
	var header [HeaderLen]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Frame{}, wmerrors.Wrap(wmerrors.IpcProtocol, "read header", err)
	}
	if string(header[:len(Magic)]) != Magic {
		return Frame{}, wmerrors.New(wmerrors.IpcProtocol, "bad magic")
	}
	length := binary.LittleEndian.Uint32(header[len(Magic):])
	typ := binary.LittleEndian.Uint32(header[len(Magic)+4:])

	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return Frame{}, wmerrors.Wrap(wmerrors.IpcProtocol, "read payload", err)
		}
	}
	return Frame{Type: typ, Payload: payload}, nil
}

// WriteFrame writes f to w in a single Write call per spec's "failed
// partial-write" disconnect rule — callers treat any error as fatal to
// the connection.
func WriteFrame(w io.Writer, f Frame) error {
	buf := make([]byte, HeaderLen+len(f.Payload))
	copy(buf, Magic)
	binary.LittleEndian.PutUint32(buf[len(Magic):], uint32(len(f.Payload)))
	binary.LittleEndian.PutUint32(buf[len(Magic)+4:], f.Type)
	copy(buf[HeaderLen:], f.Payload)
	if _, err := w.Write(buf); err != nil {
		return wmerrors.Wrap(wmerrors.IpcProtocol, "write frame", err)
	}
	return nil
}
