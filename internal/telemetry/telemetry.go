// Package telemetry adapts the teacher's context-tagged logging convention
// (package/log/logger.go's Loggable/ctxToString pair) onto go.uber.org/zap:
// the same "carry request-scoped tags through a context.Context, format
// them into every line" shape, with structured fields instead of a plain
// string prefix.
package telemetry

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	// ConnIDKey tags a remote reasoning connection (§11).
	ConnIDKey ctxKey = "conn_id"
	// BaseKey tags the material base a log line concerns.
	BaseKey ctxKey = "base"
)

// Loggable is anything carrying a request-scoped context, mirroring the
// teacher's Loggable interface.
type Loggable interface {
	Ctx() context.Context
}

var base = zap.NewNop()

// Init installs the process-wide base logger. Call once at startup; nmms's
// cobra commands do this in PersistentPreRunE.
func Init(l *zap.Logger) {
	base = l
}

// WithConnID returns a derived context tagged with a connection ID.
func WithConnID(ctx context.Context, connID string) context.Context {
	return context.WithValue(ctx, ConnIDKey, connID)
}

// WithBase returns a derived context tagged with a base name.
func WithBase(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, BaseKey, name)
}

func fieldsFromCtx(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if v := ctx.Value(ConnIDKey); v != nil {
		fields = append(fields, zap.Any("conn_id", v))
	}
	if v := ctx.Value(BaseKey); v != nil {
		fields = append(fields, zap.Any("base", v))
	}
	return fields
}

// Tags holds the request-scoped values carried on a context, for callers
// that want the raw tags rather than a ready-made logger.
type Tags struct {
	ConnID string
	Base   string
}

// FromContext extracts the telemetry tags carried on ctx, mirroring the
// teacher's ctxToString convention of reading connection/statement context
// values back out. Missing tags come back as the empty string.
func FromContext(ctx context.Context) Tags {
	var t Tags
	if v, ok := ctx.Value(ConnIDKey).(string); ok {
		t.ConnID = v
	}
	if v, ok := ctx.Value(BaseKey).(string); ok {
		t.Base = v
	}
	return t
}

// L returns a sugared logger with fields drawn from ctx, the way ctxToString
// derived a "[conn=.. stmt=..]" prefix from context values. Sugared so
// callers get the Debugw/Infow/Warnw keyed-argument calls directly, instead
// of every call site reaching for .Sugar() itself.
func L(ctx context.Context) *zap.SugaredLogger {
	return base.With(fieldsFromCtx(ctx)...).Sugar()
}

// For is a convenience for callers holding a Loggable rather than a bare
// context, matching the teacher's log.Println(l Loggable, ...) call shape.
func For(l Loggable) *zap.SugaredLogger {
	return L(l.Ctx())
}
