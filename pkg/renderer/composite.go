package renderer

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"slices"

	"github.com/gogpu/gg"
	"github.com/shouni/reflection-kit/pkg/domain"
	"github.com/shouni/reflection-kit/pkg/imgutil"
	xdraw "golang.org/x/image/draw"
)

// CompositeRenderer は元画像と反射を 1 枚のサーフェスに合成する方式です。
type CompositeRenderer struct {
	interp xdraw.Interpolator
	export bool
}

// NewCompositeRenderer は CompositeRenderer を作成します。
// export が false のホストでは、要素をサーフェスそのもので置き換えます。
func NewCompositeRenderer(export bool, interp xdraw.Interpolator) *CompositeRenderer {
	if interp == nil {
		interp = xdraw.CatmullRom
	}
	return &CompositeRenderer{interp: interp, export: export}
}

// Name は書き出しの有無を含めた方式名を返します。
func (r *CompositeRenderer) Name() string {
	if r.export {
		return "composite"
	}
	return "composite-replace"
}

// Render は合成結果を要素に反映します。
func (r *CompositeRenderer) Render(ctx context.Context, el *domain.Element, cfg domain.Config) (*domain.Result, error) {
	if el == nil {
		return nil, fmt.Errorf("%w: element is nil", domain.ErrInvalidImage)
	}
	if el.HasClass(cfg.CSSClass) {
		slog.DebugContext(ctx, "既に反射処理済みの要素のためスキップします", "src", el.Src, "class", cfg.CSSClass)
		return &domain.Result{Element: el, Skipped: true}, nil
	}

	surface, err := r.Composite(el, cfg)
	if err != nil {
		return nil, err
	}
	b := surface.Bounds()

	if !r.export {
		canvas := &domain.Element{
			Kind:    domain.KindCanvas,
			Src:     el.Src,
			Pixels:  surface,
			Width:   b.Dx(),
			Height:  b.Dy(),
			Classes: slices.Clone(el.Classes),
		}
		canvas.AddClass(cfg.CSSClass)
		// 置き換え前の要素にも印を付け、同じ要素への再適用を防ぐ
		el.AddClass(cfg.CSSClass)
		return &domain.Result{Element: canvas, Surface: surface}, nil
	}

	data, err := imgutil.EncodePNG(surface)
	if err != nil {
		return nil, fmt.Errorf("合成画像のエンコードに失敗しました: %w", err)
	}
	el.Src = imgutil.DataURL(imgutil.MimeTypePNG, data)
	el.Pixels = surface
	el.Width, el.Height = b.Dx(), b.Dy()
	el.AddClass(cfg.CSSClass)

	return &domain.Result{Element: el, Surface: surface}, nil
}

// Composite は縮小した元画像の下に、上下反転してフェードさせた複製を描いたサーフェスを返します。
// 要素自体は変更しません。
func (r *CompositeRenderer) Composite(el *domain.Element, cfg domain.Config) (*image.NRGBA, error) {
	if el == nil || el.Pixels == nil {
		return nil, fmt.Errorf("%w: no pixel data", domain.ErrInvalidImage)
	}
	w, h := el.NaturalSize()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", domain.ErrInvalidImage, w, h)
	}

	width, height, seam := newGeometry(w, h, cfg).pixels()
	if width <= 0 || seam <= 0 {
		return nil, fmt.Errorf("%w: scaled to %dx%d", domain.ErrInvalidImage, width, seam)
	}

	surface := image.NewNRGBA(image.Rect(0, 0, width, height))
	r.drawScaled(surface, image.Rect(0, 0, width, seam), el.Pixels)
	mirrorBelow(surface, seam)
	fadeOut(surface, seam, cfg.Opacity)

	return surface, nil
}

func (r *CompositeRenderer) drawScaled(dst *image.NRGBA, dr image.Rectangle, src image.Image) {
	sr := src.Bounds()
	if dr.Dx() == sr.Dx() && dr.Dy() == sr.Dy() {
		xdraw.Draw(dst, dr, src, sr.Min, xdraw.Src)
		return
	}
	r.interp.Scale(dst, dr, src, sr, xdraw.Src, nil)
}

// mirrorBelow は継ぎ目より上の行を継ぎ目を軸に下へ折り返してコピーします。
// 行 seam+k には行 seam-1-k が入ります。
func mirrorBelow(dst *image.NRGBA, seam int) {
	b := dst.Bounds()
	rowLen := b.Dx() * 4
	for k := 0; seam+k < b.Dy() && seam-1-k >= 0; k++ {
		to := (seam + k) * dst.Stride
		from := (seam - 1 - k) * dst.Stride
		copy(dst.Pix[to:to+rowLen], dst.Pix[from:from+rowLen])
	}
}

// fadeOut は継ぎ目から下端まで destination-out の線形グラデーションで画素を消します。
// 消去量は継ぎ目で 1-opacity、下端で 1 です。
func fadeOut(dst *image.NRGBA, seam int, opacity float64) {
	b := dst.Bounds()
	if seam >= b.Dy() {
		return
	}

	eraser := gg.NewLinearGradientBrush(0, float64(seam), 0, float64(b.Dy())).
		AddColorStop(0, gg.RGBA2(1, 1, 1, 1-opacity)).
		AddColorStop(1, gg.RGBA2(1, 1, 1, 1))

	rowLen := b.Dx() * 4
	for y := seam; y < b.Dy(); y++ {
		keep := max(0, min(1, 1-eraser.ColorAt(0, float64(y)+0.5).A))
		row := dst.Pix[y*dst.Stride : y*dst.Stride+rowLen]
		for i := 3; i < len(row); i += 4 {
			row[i] = uint8(math.Round(float64(row[i]) * keep))
		}
	}
}
