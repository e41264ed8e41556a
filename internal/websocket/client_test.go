package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Replies are written from the room goroutine, which can race the hub
// closing a disconnecting client's send channel. A reply must never
// panic or block the room loop.

func TestClient_ReplyAfterSendClosed(t *testing.T) {
	c := &Client{send: make(chan []byte, 1)}
	c.Close()

	assert.NotPanics(t, func() {
		c.sendError("WRONG_PHASE", "action is not valid in the current phase")
	})

	msg, err := NewMessage(MessageTypeError, ErrorPayload{Code: "INTERNAL_ERROR"})
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		c.Send(msg)
	})
}

func TestClient_ReplyWithoutWritePumpDoesNotBlock(t *testing.T) {
	c := &Client{send: make(chan []byte)} // nothing draining

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.sendError("NOT_HOST", "only the host can perform this action")
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reply blocked on a client with no write pump")
	}
}
