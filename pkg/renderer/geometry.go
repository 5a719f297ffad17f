package renderer

import (
	"math"

	"github.com/shouni/reflection-kit/pkg/domain"
	"github.com/shouni/reflection-kit/pkg/imgutil"
)

// geometry は縮小後の画像と反射部分の寸法です。
type geometry struct {
	scale            float64
	imageWidth       float64
	imageHeight      float64
	reflectionHeight float64
}

func newGeometry(w, h int, cfg domain.Config) geometry {
	s := imgutil.ScaleFactor(w, h, cfg.MaxWidth, cfg.MaxHeight)
	imgH := float64(h) * s
	return geometry{
		scale:            s,
		imageWidth:       float64(w) * s,
		imageHeight:      imgH,
		reflectionHeight: imgH * cfg.Height,
	}
}

// pixels はサーフェスの幅・高さと、継ぎ目の行を整数ピクセルで返します。
func (g geometry) pixels() (width, height, seam int) {
	width = int(math.Round(g.imageWidth))
	seam = int(math.Round(g.imageHeight))
	height = int(math.Round(g.imageHeight + g.reflectionHeight))
	return width, height, seam
}
