package logctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-console/internal/observability"
)

func TestFromOrFallsBack(t *testing.T) {
	assert.Nil(t, From(context.Background()))
	assert.NotNil(t, FromOr(context.Background(), nil))

	fallback := observability.NopLogger()
	assert.Equal(t, fallback, FromOr(context.Background(), fallback))
}

func TestEnrichStacksFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	base := zaplogger.New(zap.New(core))

	ctx := Enrich(context.Background(), base, observability.F("session_id", "s-1"))
	ctx = Enrich(ctx, nil, observability.F("request_id", "r-1"))
	From(ctx).Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "s-1", fields["session_id"])
	assert.Equal(t, "r-1", fields["request_id"])
}
