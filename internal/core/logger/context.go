package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// WithContext 把带 request id 的 logger 塞进 ctx，service 层用 FromContext 取
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext 取不到时回退 fallback（可为 nil）
func FromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	if fallback == nil {
		return zap.NewNop()
	}
	return fallback
}
