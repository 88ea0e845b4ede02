package api_test

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/input"
	"github.com/Alia5/inputtrack/input/keyboard"
	"github.com/Alia5/inputtrack/internal/server/api"
)

func TestFrameDispatch(t *testing.T) {
	var got []any
	h := input.Handlers{
		KeyDown:    func(e input.RawKey) { got = append(got, "kd:"+e.Code) },
		KeyUp:      func(e input.RawKey) { got = append(got, "ku:"+e.Code) },
		ButtonDown: func(e input.RawButton) { got = append(got, e.Index) },
		Move:       func(e input.RawMove) { got = append(got, e.Position, e.Delta) },
		Wheel:      func(e input.RawWheel) { got = append(got, e.Delta) },
	}

	apitypes.RawFrame{Kind: apitypes.FrameKeyDown, Code: "KeyA"}.Dispatch(h)
	apitypes.RawFrame{Kind: apitypes.FrameKeyUp, Code: "KeyA"}.Dispatch(h)
	apitypes.RawFrame{Kind: apitypes.FrameButtonDown, Index: 4}.Dispatch(h)
	apitypes.RawFrame{Kind: apitypes.FrameButtonUp, Index: 4}.Dispatch(h)
	apitypes.RawFrame{Kind: apitypes.FrameMove, X: 1, Y: 2, DX: 3, DY: 4}.Dispatch(h)
	apitypes.RawFrame{Kind: apitypes.FrameWheel, DX: -1, DY: 5}.Dispatch(h)

	assert.Equal(t, []any{
		"kd:KeyA", "ku:KeyA", 4,
		mgl64.Vec2{1, 2}, mgl64.Vec2{3, 4},
		mgl64.Vec2{-1, 5},
	}, got)
}

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

func TestFrameSourceFeedsTracker(t *testing.T) {
	var buf bytes.Buffer
	for _, f := range []apitypes.RawFrame{
		{Kind: apitypes.FrameKeyDown, Code: "KeyS"},
		{Kind: apitypes.FrameKeyUp, Code: "KeyS"},
		{Kind: apitypes.FrameKeyDown, Code: "ControlLeft"},
	} {
		b, err := f.MarshalBinary()
		require.NoError(t, err)
		buf.Write(b)
	}

	clk := input.NewManualClock(time.Unix(100, 0))
	tr := input.New(&input.Options{Clock: clk})
	var names []input.Name
	tr.Bus().SubscribeAll(func(ev input.Event) { names = append(names, ev.Name()) })

	var raw int
	var mu sync.Mutex
	src := api.NewFrameSource(nopCloser{&buf}, &mu, func(apitypes.RawFrame) { raw++ })
	require.NoError(t, tr.Attach(src))

	select {
	case <-src.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("source did not finish")
	}
	require.NoError(t, src.Err())
	require.NoError(t, tr.Detach())

	assert.Equal(t, 3, raw)
	assert.Equal(t, []input.Name{input.KeyDown, input.KeyPressed, input.KeyUp, input.KeyDown}, names)
	assert.True(t, tr.IsKeyDown(keyboard.ControlLeft))
}

func TestFrameSourceReportsTruncation(t *testing.T) {
	src := api.NewFrameSource(nopCloser{bytes.NewReader([]byte{1, 0, 0})}, nil, nil)
	_, err := src.Listen(input.Handlers{})
	require.NoError(t, err)
	<-src.Done()
	assert.ErrorIs(t, src.Err(), io.ErrUnexpectedEOF)
}
