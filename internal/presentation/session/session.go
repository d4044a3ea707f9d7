package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/Zhima-Mochi/minishop-console/internal/observability"
	"github.com/Zhima-Mochi/minishop-console/internal/observability/logctx"
)

type idKey struct{}

// Start injects a session-scoped logger carrying a fresh session_id, plus
// caller-provided low-cardinality attributes (e.g. "env", "terminal").
func Start(ctx context.Context, base observability.Logger, attrs map[string]string) context.Context {
	if base == nil {
		base = observability.NopLogger()
	}

	sessionID := attrs["session_id"]
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	fields := make([]observability.Field, 0, len(attrs)+1)
	fields = append(fields, observability.F("session_id", sessionID))
	for k, v := range attrs {
		if k == "session_id" || v == "" {
			continue
		}
		fields = append(fields, observability.F(k, v))
	}

	ctx = context.WithValue(ctx, idKey{}, sessionID)
	return logctx.Enrich(ctx, base, fields...)
}

// ID returns the session id stored by Start, or "" when absent.
func ID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(idKey{}).(string)
	return id
}
