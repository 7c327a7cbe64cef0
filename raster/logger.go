package raster

import (
	"context"
	"log/slog"
)

// nopHandler discards all records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithLogger sets the logger for page timings. A nil logger silences it.
func WithLogger(l *slog.Logger) Option {
	return func(r *Rasterizer) {
		if l == nil {
			l = slog.New(nopHandler{})
		}
		r.logger = l
	}
}
