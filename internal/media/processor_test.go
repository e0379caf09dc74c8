package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/webp"
)

// makePNG 生成测试用 PNG
func makePNG(t *testing.T, width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	err := png.Encode(&buf, img)
	assert.NoError(t, err)
	return buf.Bytes()
}

// TestProcess_OutputsWebp 任何合法输入统一转为 WebP
func TestProcess_OutputsWebp(t *testing.T) {
	input := makePNG(t, 400, 300)

	processed, err := Process(input, KindNews)
	assert.NoError(t, err)
	assert.Equal(t, "image/webp", processed.MimeType)

	// RIFF....WEBP 魔数
	assert.True(t, len(processed.Data) > 12)
	assert.Equal(t, "RIFF", string(processed.Data[0:4]))
	assert.Equal(t, "WEBP", string(processed.Data[8:12]))

	decoded, err := webp.Decode(bytes.NewReader(processed.Data))
	assert.NoError(t, err)
	assert.Equal(t, 400, decoded.Bounds().Dx())
	assert.Equal(t, 300, decoded.Bounds().Dy())
}

// TestProcess_Downscale 超出边界框时等比缩小
func TestProcess_Downscale(t *testing.T) {
	input := makePNG(t, 2400, 1200)

	processed, err := Process(input, KindExhibition)
	assert.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(processed.Data))
	assert.NoError(t, err)

	// 长边缩到 1200，比例保持 2:1
	assert.Equal(t, 1200, decoded.Bounds().Dx())
	assert.Equal(t, 600, decoded.Bounds().Dy())
}

// TestProcess_NoUpscale 小图不放大
func TestProcess_NoUpscale(t *testing.T) {
	input := makePNG(t, 320, 200)

	processed, err := Process(input, KindBanner)
	assert.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(processed.Data))
	assert.NoError(t, err)
	assert.Equal(t, 320, decoded.Bounds().Dx())
	assert.Equal(t, 200, decoded.Bounds().Dy())
}

func TestProcess_PortraitPoster(t *testing.T) {
	input := makePNG(t, 1000, 1600)

	processed, err := Process(input, KindPoster)
	assert.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(processed.Data))
	assert.NoError(t, err)

	// 长边 1600 -> 800
	assert.Equal(t, 500, decoded.Bounds().Dx())
	assert.Equal(t, 800, decoded.Bounds().Dy())
}

func TestProcess_InvalidInput(t *testing.T) {
	_, err := Process([]byte("not an image"), KindBanner)
	assert.Error(t, err)

	_, err = Process(makePNG(t, 10, 10), Kind("unknown"))
	assert.Error(t, err)
}
