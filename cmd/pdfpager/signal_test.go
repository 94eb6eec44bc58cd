package main

import (
	"context"
	"testing"
)

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	ctx, stop := notifyContext(context.Background())
	if ctx.Err() != nil {
		t.Fatalf("fresh context already done: %v", ctx.Err())
	}
	stop()
	if ctx.Err() == nil {
		t.Error("stop() did not cancel the context")
	}

	parent, cancel := context.WithCancel(context.Background())
	ctx, stop = notifyContext(parent)
	defer stop()
	cancel()
	<-ctx.Done()
}
