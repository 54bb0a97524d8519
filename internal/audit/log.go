package audit

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"upengage.io/seeder/internal/obs"
)

type ctxKey string

const (
	runIDKey  ctxKey = "audit_run_id"
	seederKey ctxKey = "audit_seeder"
)

// WithRunID attaches the seeding run identifier to the context for audit logging.
func WithRunID(ctx context.Context, runID string) context.Context {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, runID)
}

// WithSeeder records which seeder is executing.
func WithSeeder(ctx context.Context, name string) context.Context {
	name = strings.TrimSpace(name)
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, seederKey, name)
}

// RunIDFromContext extracts the audit run id from context if present.
func RunIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, runIDKey)
}

func stringFromContext(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// Logger is the sink audit entries go to. Swapped in tests.
var Logger = func() *logrus.Logger { return obs.Logger() }

// LogEvent writes an audit log entry enriched with run and seeder context.
func LogEvent(ctx context.Context, event string, fields map[string]any) error {
	event = strings.TrimSpace(event)
	if event == "" {
		return errors.New("event name is required")
	}
	entry := logrus.Fields{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"type":  "audit",
		"event": event,
	}
	if rid := RunIDFromContext(ctx); rid != "" {
		entry["run_id"] = rid
	}
	if seeder := stringFromContext(ctx, seederKey); seeder != "" {
		entry["seeder"] = seeder
	}
	copyFields := make(map[string]any, len(fields))
	for k, v := range fields {
		copyFields[k] = v
	}
	entry["fields"] = copyFields

	Logger().WithFields(entry).Info(event)
	return nil
}
