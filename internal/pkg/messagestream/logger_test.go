package messagestream_test

import (
	stderrors "errors"
	"testing"

	"booking-portal/internal/pkg/messagestream"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	adapter := messagestream.NewZapLoggerAdapter(zap.New(core))

	adapter.With(watermill.LogFields{"topic": "booking_created"}).
		Error("handler failed", stderrors.New("boom"), watermill.LogFields{"message_uuid": "m1"})
	adapter.Trace("trace line", nil)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "handler failed", entries[0].Message)
		assert.Equal(t, "booking_created", fields["topic"])
		assert.Equal(t, "m1", fields["message_uuid"])
		assert.Equal(t, "boom", fields["error"])
		assert.Equal(t, zap.DebugLevel, entries[1].Level)
	}
}
