package apitypes

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// FrameKind identifies the raw notification carried by a RawFrame.
type FrameKind uint8

const (
	FrameKeyDown FrameKind = iota + 1
	FrameKeyUp
	FrameButtonDown
	FrameButtonUp
	FrameMove
	FrameWheel
)

func (k FrameKind) String() string {
	switch k {
	case FrameKeyDown:
		return "key-down"
	case FrameKeyUp:
		return "key-up"
	case FrameButtonDown:
		return "button-down"
	case FrameButtonUp:
		return "button-up"
	case FrameMove:
		return "move"
	case FrameWheel:
		return "wheel"
	default:
		return fmt.Sprintf("FrameKind(%d)", uint8(k))
	}
}

const rawFrameHeaderSize = 20

// MaxCodeLen is the longest key code a RawFrame can carry.
const MaxCodeLen = math.MaxUint8

var (
	ErrInvalidFrameKind = errors.New("invalid frame kind")
	ErrCodeTooLong      = errors.New("key code too long")
)

// RawFrame is one raw host notification sent by clients on a session stream.
//
// Wire format (little endian):
//
//	Byte 0:     kind
//	Bytes 1-2:  button index (int16)
//	Bytes 3-18: x, y, dx, dy (float32 each)
//	Byte 19:    code length
//	Bytes 20+:  key code (UTF-8)
type RawFrame struct {
	Kind  FrameKind
	Index int16
	X, Y  float32
	DX    float32
	DY    float32
	Code  string
}

// MarshalBinary encodes the frame.
func (f *RawFrame) MarshalBinary() ([]byte, error) {
	if f.Kind < FrameKeyDown || f.Kind > FrameWheel {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrameKind, f.Kind)
	}
	if len(f.Code) > MaxCodeLen {
		return nil, ErrCodeTooLong
	}
	b := make([]byte, rawFrameHeaderSize+len(f.Code))
	b[0] = byte(f.Kind)
	binary.LittleEndian.PutUint16(b[1:3], uint16(f.Index))
	binary.LittleEndian.PutUint32(b[3:7], math.Float32bits(f.X))
	binary.LittleEndian.PutUint32(b[7:11], math.Float32bits(f.Y))
	binary.LittleEndian.PutUint32(b[11:15], math.Float32bits(f.DX))
	binary.LittleEndian.PutUint32(b[15:19], math.Float32bits(f.DY))
	b[19] = uint8(len(f.Code))
	copy(b[20:], f.Code)
	return b, nil
}

// UnmarshalBinary decodes one complete frame.
func (f *RawFrame) UnmarshalBinary(data []byte) error {
	if len(data) < rawFrameHeaderSize {
		return io.ErrUnexpectedEOF
	}
	n := int(data[19])
	if len(data) < rawFrameHeaderSize+n {
		return io.ErrUnexpectedEOF
	}
	kind := FrameKind(data[0])
	if kind < FrameKeyDown || kind > FrameWheel {
		return fmt.Errorf("%w: %d", ErrInvalidFrameKind, kind)
	}
	f.Kind = kind
	f.Index = int16(binary.LittleEndian.Uint16(data[1:3]))
	f.X = math.Float32frombits(binary.LittleEndian.Uint32(data[3:7]))
	f.Y = math.Float32frombits(binary.LittleEndian.Uint32(data[7:11]))
	f.DX = math.Float32frombits(binary.LittleEndian.Uint32(data[11:15]))
	f.DY = math.Float32frombits(binary.LittleEndian.Uint32(data[15:19]))
	f.Code = string(data[20 : 20+n])
	return nil
}

// ReadRawFrame reads exactly one frame from r.
func ReadRawFrame(r io.Reader) (RawFrame, error) {
	var f RawFrame
	buf := make([]byte, rawFrameHeaderSize, rawFrameHeaderSize+16)
	if _, err := io.ReadFull(r, buf); err != nil {
		return f, err
	}
	if n := int(buf[19]); n > 0 {
		buf = append(buf, make([]byte, n)...)
		if _, err := io.ReadFull(r, buf[rawFrameHeaderSize:]); err != nil {
			return f, err
		}
	}
	err := f.UnmarshalBinary(buf)
	return f, err
}
