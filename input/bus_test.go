package input_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/inputtrack/input"
	"github.com/Alia5/inputtrack/input/keyboard"
)

func TestBusDeliversInRegistrationOrder(t *testing.T) {
	bus := input.NewBus(nil)
	var order []string
	bus.Subscribe(input.KeyDown, func(input.Event) { order = append(order, "first") })
	bus.SubscribeAll(func(input.Event) { order = append(order, "all") })
	bus.Subscribe(input.KeyDown, func(input.Event) { order = append(order, "third") })
	bus.Subscribe(input.KeyUp, func(input.Event) { order = append(order, "other") })

	bus.Publish(input.KeyEvent{Type: input.KeyDown, Key: keyboard.KeyA})

	assert.Equal(t, []string{"first", "all", "third"}, order)
	assert.Equal(t, input.BusStats{Published: 1, Delivered: 3}, bus.Stats())
}

func TestBusUnsubscribe(t *testing.T) {
	bus := input.NewBus(nil)
	calls := 0
	sub := bus.Subscribe(input.MouseWheel, func(input.Event) { calls++ })
	assert.Equal(t, input.MouseWheel, sub.Name())
	assert.Equal(t, 1, bus.Len())

	bus.Publish(input.WheelEvent{})
	assert.True(t, bus.Unsubscribe(sub))
	assert.False(t, bus.Unsubscribe(sub))
	bus.Publish(input.WheelEvent{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Len())
}

func TestBusUnsubscribeDuringPublish(t *testing.T) {
	bus := input.NewBus(nil)
	var second int
	var sub input.Subscription
	sub = bus.Subscribe(input.MouseMove, func(input.Event) { bus.Unsubscribe(sub) })
	bus.Subscribe(input.MouseMove, func(input.Event) { second++ })

	bus.Publish(input.MoveEvent{})
	bus.Publish(input.MoveEvent{})

	assert.Equal(t, 2, second)
	assert.Equal(t, 1, bus.Len())
}

func TestBusIsolatesPanickingHandler(t *testing.T) {
	bus := input.NewBus(nil)
	var got []input.Name
	bus.Subscribe(input.KeyUp, func(input.Event) { panic("boom") })
	bus.Subscribe(input.KeyUp, func(ev input.Event) { got = append(got, ev.Name()) })

	assert.NotPanics(t, func() {
		bus.Publish(input.KeyEvent{Type: input.KeyUp})
	})
	assert.Equal(t, []input.Name{input.KeyUp}, got)
	assert.Equal(t, uint64(1), bus.Stats().Panics)
	assert.Equal(t, uint64(1), bus.Stats().Delivered)
}

func TestEventNames(t *testing.T) {
	tests := []struct {
		ev   input.Event
		want input.Name
	}{
		{ev: input.KeyEvent{Type: input.KeyPressed}, want: "key_pressed"},
		{ev: input.ButtonEvent{Type: input.ButtonClicked}, want: "button_clicked"},
		{ev: input.MoveEvent{}, want: "mouse_move"},
		{ev: input.WheelEvent{}, want: "mouse_wheel"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ev.Name())
	}
	assert.Len(t, input.Names, 8)
	assert.Equal(t, input.StateUp, input.StatePressed)
	assert.Equal(t, input.StateUp, input.StateClicked)
	assert.Equal(t, "DOWN", input.StateDown.String())
}
