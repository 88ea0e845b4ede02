package apitypes_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/inputtrack/apitypes"
)

func TestRawFrameLayout(t *testing.T) {
	f := apitypes.RawFrame{Kind: apitypes.FrameKeyDown, Index: -1, X: 1, Code: "KeyA"}
	b, err := f.MarshalBinary()
	require.NoError(t, err)

	require.Len(t, b, 24)
	assert.Equal(t, byte(1), b[0])
	assert.Equal(t, []byte{0xff, 0xff}, b[1:3])
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, b[3:7])
	assert.Equal(t, byte(4), b[19])
	assert.Equal(t, "KeyA", string(b[20:]))
}

func TestReadRawFrameSequence(t *testing.T) {
	frames := []apitypes.RawFrame{
		{Kind: apitypes.FrameKeyDown, Code: "Space"},
		{Kind: apitypes.FrameButtonUp, Index: 2},
		{Kind: apitypes.FrameMove, X: 12.5, Y: -3, DX: 1, DY: -0.5},
		{Kind: apitypes.FrameWheel, DY: -120},
	}
	var buf bytes.Buffer
	for _, f := range frames {
		b, err := f.MarshalBinary()
		require.NoError(t, err)
		buf.Write(b)
	}

	for _, want := range frames {
		got, err := apitypes.ReadRawFrame(&buf)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := apitypes.ReadRawFrame(&buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestRawFrameErrors(t *testing.T) {
	_, err := (&apitypes.RawFrame{Kind: 0}).MarshalBinary()
	assert.ErrorIs(t, err, apitypes.ErrInvalidFrameKind)

	_, err = (&apitypes.RawFrame{Kind: apitypes.FrameKeyUp, Code: strings.Repeat("x", 256)}).MarshalBinary()
	assert.ErrorIs(t, err, apitypes.ErrCodeTooLong)

	var f apitypes.RawFrame
	assert.ErrorIs(t, f.UnmarshalBinary(make([]byte, 10)), io.ErrUnexpectedEOF)

	bad := make([]byte, 20)
	bad[0] = 9
	assert.ErrorIs(t, f.UnmarshalBinary(bad), apitypes.ErrInvalidFrameKind)

	short := make([]byte, 20)
	short[0] = byte(apitypes.FrameKeyDown)
	short[19] = 5
	_, err = apitypes.ReadRawFrame(bytes.NewReader(append(short, 'K')))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestFrameKindString(t *testing.T) {
	assert.Equal(t, "button-down", apitypes.FrameButtonDown.String())
	assert.Equal(t, "FrameKind(42)", apitypes.FrameKind(42).String())
}

func TestParseFrameKind(t *testing.T) {
	for k := apitypes.FrameKeyDown; k <= apitypes.FrameWheel; k++ {
		got, err := apitypes.ParseFrameKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := apitypes.ParseFrameKind(" Button_Up ")
	require.NoError(t, err)
	assert.Equal(t, apitypes.FrameButtonUp, got)

	_, err = apitypes.ParseFrameKind("scroll")
	assert.ErrorIs(t, err, apitypes.ErrInvalidFrameKind)
}
