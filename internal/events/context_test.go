package events_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oidcvault/oidcvault/internal/events"
)

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.InfoLevel, "json", &buf)

	ctx := events.WithLogger(context.Background(), logger)
	assert.Same(t, logger, events.FromContext(ctx))

	// Without a logger the fallback must be safe to use.
	assert.NotPanics(t, func() {
		events.FromContext(context.Background()).Info("dropped")
	})
}

func TestContextAccount(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.InfoLevel, "json", &buf)

	ctx := events.WithLogger(context.Background(), logger)
	ctx = events.WithAccount(ctx, "alice")

	assert.Equal(t, "alice", events.GetAccount(ctx))
	assert.Empty(t, events.GetAccount(context.Background()))

	events.FromContext(ctx).Info("config read")
	assert.Contains(t, buf.String(), `"account":"alice"`)
}
