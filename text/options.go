package text

import (
	"log/slog"

	"golang.org/x/image/font"
)

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	parserName string
	index      int
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName: defaultParserName,
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/opentype.
//
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// WithCollectionIndex selects a font inside a TTC/OTC collection.
// It has no effect on plain font files other than rejecting indices > 0.
func WithCollectionIndex(i int) SourceOption {
	return func(c *sourceConfig) {
		c.index = i
	}
}

// Metrics backend names accepted by WithMetrics.
const (
	MetricsXImage = "ximage"
	MetricsGoText = "gotext"
)

// FaceOption configures Face creation.
type FaceOption func(*faceConfig)

// faceConfig holds configuration for Face.
type faceConfig struct {
	hinting font.Hinting
	metrics string
}

// defaultFaceConfig returns the default face configuration.
func defaultFaceConfig() faceConfig {
	return faceConfig{
		hinting: font.HintingFull,
		metrics: MetricsXImage,
	}
}

// WithHinting sets the hinting mode used for metrics and masks.
func WithHinting(h font.Hinting) FaceOption {
	return func(c *faceConfig) {
		c.hinting = h
	}
}

// WithMetrics selects the metrics backend: MetricsXImage (default) or
// MetricsGoText. An empty name selects the default.
func WithMetrics(name string) FaceOption {
	return func(c *faceConfig) {
		if name != "" {
			c.metrics = name
		}
	}
}

// SystemOption configures SystemFonts.
type SystemOption func(*systemConfig)

type systemConfig struct {
	logger   *slog.Logger
	cacheDir string
	families []string
	face     []FaceOption
}

func defaultSystemConfig() systemConfig {
	return systemConfig{
		logger:   nopLogger(),
		families: []string{"sans-serif"},
	}
}

// WithLogger sets the logger for font discovery messages.
// A nil logger keeps the default silent logger.
func WithLogger(l *slog.Logger) SystemOption {
	return func(c *systemConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCacheDir sets the directory where the system font index is cached.
// The user cache directory is used when empty.
func WithCacheDir(dir string) SystemOption {
	return func(c *systemConfig) {
		c.cacheDir = dir
	}
}

// WithFallbackFamilies sets the families queried for per-character
// fallback. The default is the generic "sans-serif" family.
func WithFallbackFamilies(families ...string) SystemOption {
	return func(c *systemConfig) {
		if len(families) > 0 {
			c.families = families
		}
	}
}

// WithFaceOptions sets the options of faces created for system fonts.
func WithFaceOptions(opts ...FaceOption) SystemOption {
	return func(c *systemConfig) {
		c.face = opts
	}
}
