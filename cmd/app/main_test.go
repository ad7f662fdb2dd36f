package main

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWaitForShutdown_ReturnsOnServerError(t *testing.T) {
	serverErrors := make(chan error, 1)
	serverErrors <- errors.New("listen tcp :8080: bind: address already in use")

	done := make(chan struct{})
	go func() {
		waitForShutdown(zap.NewNop(), serverErrors)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("a failed server start should trigger shutdown")
	}
}
