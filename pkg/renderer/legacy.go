package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/shouni/reflection-kit/pkg/domain"
	"github.com/shouni/reflection-kit/pkg/imgutil"
)

// LegacyRenderer はピクセル合成を持たないホスト向けに、
// 2 つの子要素の配置と視覚効果の指示だけを組み立てる方式です。
type LegacyRenderer struct{}

// NewLegacyRenderer は LegacyRenderer を作成します。
func NewLegacyRenderer() *LegacyRenderer {
	return &LegacyRenderer{}
}

// Name は方式名 "legacy" を返します。
func (r *LegacyRenderer) Name() string { return "legacy" }

// Render はコンテナ・元画像・反射用複製のレイアウトを返します。
// 元の要素にはマーカークラスを付け、2 回目以降の呼び出しは何もしません。
func (r *LegacyRenderer) Render(ctx context.Context, el *domain.Element, cfg domain.Config) (*domain.Result, error) {
	if el == nil {
		return nil, fmt.Errorf("%w: element is nil", domain.ErrInvalidImage)
	}
	if el.HasClass(cfg.CSSClass) {
		slog.DebugContext(ctx, "既に反射処理済みの要素のためスキップします", "src", el.Src, "class", cfg.CSSClass)
		return &domain.Result{Element: el, Skipped: true}, nil
	}

	w, h := el.NaturalSize()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", domain.ErrInvalidImage, w, h)
	}
	s := imgutil.ScaleFactor(w, h, cfg.MaxWidth, cfg.MaxHeight)
	imgW, imgH := float64(w)*s, float64(h)*s

	container := domain.Box{
		Classes:  slices.Clone(el.Classes),
		Position: "relative",
		Overflow: "hidden",
		Height:   imgH * (1 + cfg.Height),
	}
	if !slices.Contains(container.Classes, cfg.CSSClass) {
		container.Classes = append(container.Classes, cfg.CSSClass)
	}

	layout := &domain.Layout{
		Container: container,
		Image: domain.Layer{
			Src:    el.Src,
			Scale:  s,
			Width:  imgW,
			Height: imgH,
		},
		Reflection: domain.Layer{
			Src:            el.Src,
			Top:            imgH,
			Scale:          s,
			Width:          imgW,
			Height:         imgH,
			MirrorVertical: true,
			Alpha: &domain.AlphaRamp{
				StartOpacity:  cfg.Opacity,
				FinishOpacity: 0,
				FinishY:       cfg.Height,
			},
		},
	}

	el.AddClass(cfg.CSSClass)
	return &domain.Result{Element: el, Layout: layout}, nil
}
