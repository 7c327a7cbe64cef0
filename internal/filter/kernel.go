package filter

import (
	"math"

	"github.com/gogpu/bmfont/internal/cache"
)

// GaussianKernel generates a 1D Gaussian kernel for the standard deviation
// sigma. The kernel is normalized so all values sum to 1.0.
//
// The kernel size is 2 * ceil(sigma * 3) + 1, which covers 99.7% of the
// distribution (3 standard deviations).
//
// For sigma <= 0, returns a single-element kernel [1.0] (identity).
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1.0}
	}

	halfSize := KernelHalfSize(sigma)
	size := halfSize*2 + 1
	kernel := make([]float32, size)

	// The normalization constant is skipped; the sum is normalized below.
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)
	for i := 0; i < size; i++ {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	if sum > 0 {
		invSum := float32(1.0 / sum)
		for i := range kernel {
			kernel[i] *= invSum
		}
	}
	return kernel
}

// KernelHalfSize returns how many pixels a Gaussian blur of sigma reaches on
// each side of a source pixel.
func KernelHalfSize(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	return int(math.Ceil(sigma * 3))
}

// kernelCacheSize bounds the number of distinct sigmas kept. Glyph effects
// use a handful of shadow settings per run.
const kernelCacheSize = 64

// Kernels are keyed by sigma quantized to 0.01.
var kernelCache = cache.New[int, []float32](kernelCacheSize)

// CachedGaussianKernel returns a shared Gaussian kernel for sigma. The
// returned slice must not be modified.
func CachedGaussianKernel(sigma float64) []float32 {
	key := int(math.Round(sigma * 100))
	return kernelCache.GetOrCreate(key, func() []float32 {
		return GaussianKernel(float64(key) / 100)
	})
}
