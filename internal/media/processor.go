package media

import (
	"fmt"

	"github.com/davidbyttow/govips/v2/vips"
)

// Kind 媒体类别，决定转码参数和存储目录
type Kind string

const (
	KindBanner     Kind = "banners"
	KindPoster     Kind = "posters"
	KindExhibition Kind = "exhibitions"
	KindNews       Kind = "news"
)

// transcodeParams 各类别的转码参数
type transcodeParams struct {
	maxDimension int
	quality      int
}

var paramsByKind = map[Kind]transcodeParams{
	KindBanner:     {maxDimension: 1920, quality: 85},
	KindPoster:     {maxDimension: 800, quality: 90},
	KindExhibition: {maxDimension: 1200, quality: 85},
	KindNews:       {maxDimension: 1200, quality: 85},
}

// 输入超过该大小时降低质量
const (
	largeInputThreshold   = 5 << 20
	largeInputQualityDrop = 15
	minQuality            = 50
)

// qualityFor 按类别和输入大小决定导出质量
func qualityFor(params transcodeParams, inputSize int64) int {
	quality := params.quality
	if inputSize > largeInputThreshold {
		quality -= largeInputQualityDrop
		if quality < minQuality {
			quality = minQuality
		}
	}
	return quality
}

// Processed 转码结果，统一为 WebP
type Processed struct {
	Data     []byte
	MimeType string
	Width    int
	Height   int
}

// Process 将上传图片转码为 WebP
// 长边不超过类别上限，小图不放大
func Process(data []byte, kind Kind) (*Processed, error) {
	params, ok := paramsByKind[kind]
	if !ok {
		return nil, fmt.Errorf("unknown media kind: %s", kind)
	}

	quality := qualityFor(params, int64(len(data)))

	img, err := vips.NewThumbnailWithSizeFromBuffer(
		data,
		params.maxDimension,
		params.maxDimension,
		vips.InterestingNone,
		vips.SizeDown,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	defer img.Close()

	webp, _, err := img.ExportWebp(&vips.WebpExportParams{
		Quality:         quality,
		Lossless:        false,
		ReductionEffort: 6,
		StripMetadata:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export webp: %w", err)
	}

	return &Processed{
		Data:     webp,
		MimeType: "image/webp",
		Width:    img.Width(),
		Height:   img.Height(),
	}, nil
}
