package main

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type closeRecorder struct {
	closed *[]string
	name   string
}

func (c closeRecorder) Close() error {
	*c.closed = append(*c.closed, c.name)
	return nil
}

func TestRunThenCloseClosesOnError(t *testing.T) {
	var closed []string
	closers := []io.Closer{closeRecorder{&closed, "log"}, closeRecorder{&closed, "raw"}}

	ran := false
	err := runThenClose(func() error {
		ran = true
		assert.Empty(t, closed)
		return errors.New("serve failed")
	}, closers)

	assert.True(t, ran)
	assert.EqualError(t, err, "serve failed")
	assert.Equal(t, []string{"log", "raw"}, closed)
}
