package filter

import (
	"image"
	"sync"
)

// BlurAlpha applies a separable Gaussian blur with standard deviation sigma
// to src. Coverage outside src is treated as transparent. The result bounds
// are src's bounds grown by the kernel reach on every side.
//
// For sigma <= 0 the result is a copy of src.
func BlurAlpha(src *image.Alpha, sigma float64) *image.Alpha {
	half := KernelHalfSize(sigma)
	sb := src.Bounds()
	db := sb.Inset(-half)
	dst := image.NewAlpha(db)
	if sb.Empty() {
		return dst
	}
	if half == 0 {
		copyAlpha(dst, src)
		return dst
	}

	kernel := CachedGaussianKernel(sigma)
	width, height := db.Dx(), db.Dy()
	temp := getTempBuffer(width * height)
	defer putTempBuffer(temp)

	blurHorizontal(src, temp, db, kernel)
	blurVertical(temp, dst, kernel)
	return dst
}

// blurHorizontal convolves the rows of src into temp, which covers db.
func blurHorizontal(src *image.Alpha, temp []float32, db image.Rectangle, kernel []float32) {
	half := len(kernel) / 2
	sb := src.Bounds()
	width := db.Dx()

	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		row := src.Pix[src.PixOffset(sb.Min.X, y):src.PixOffset(sb.Max.X, y)]
		trow := temp[(y-db.Min.Y)*width : (y-db.Min.Y+1)*width]
		for x := db.Min.X; x < db.Max.X; x++ {
			var sum float32
			for k, weight := range kernel {
				sx := x + k - half - sb.Min.X
				if sx < 0 || sx >= len(row) {
					continue
				}
				sum += float32(row[sx]) * weight
			}
			trow[x-db.Min.X] = sum
		}
	}
}

// blurVertical convolves the columns of temp into dst.
func blurVertical(temp []float32, dst *image.Alpha, kernel []float32) {
	half := len(kernel) / 2
	db := dst.Bounds()
	width, height := db.Dx(), db.Dy()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float32
			for k, weight := range kernel {
				ty := y + k - half
				if ty < 0 || ty >= height {
					continue
				}
				sum += temp[ty*width+x] * weight
			}
			dst.Pix[y*dst.Stride+x] = clampUint8(sum)
		}
	}
}

func copyAlpha(dst, src *image.Alpha) {
	sb := src.Bounds()
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		copy(dst.Pix[dst.PixOffset(sb.Min.X, y):], src.Pix[src.PixOffset(sb.Min.X, y):src.PixOffset(sb.Max.X, y)])
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{data: make([]float32, 256*256)}
	},
}

// getTempBuffer returns a zeroed buffer of exactly size elements.
func getTempBuffer(size int) []float32 {
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}
	buf := wrapper.data[:size]
	clear(buf)
	return buf
}

func putTempBuffer(buf []float32) {
	// Only pool reasonably-sized buffers
	if cap(buf) <= 4*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
