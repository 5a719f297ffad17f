package renderer

import (
	"context"
	"image"

	"github.com/shouni/reflection-kit/pkg/domain"
	xdraw "golang.org/x/image/draw"
)

// Strategy は反射エフェクトを要素に適用する描画方式です。
type Strategy interface {
	// Name はログ出力用の方式名を返します。
	Name() string
	// Render は要素に反射エフェクトを適用し、結果を返します。
	// 設定値は検証済みであることを前提とします。
	Render(ctx context.Context, el *domain.Element, cfg domain.Config) (*domain.Result, error)
}

// SurfaceRenderer はピクセルサーフェスを直接生成できる方式が実装します。
type SurfaceRenderer interface {
	Composite(el *domain.Element, cfg domain.Config) (*image.NRGBA, error)
}

// Capabilities はホストが提供する描画機能です。
type Capabilities struct {
	Canvas bool // ピクセル合成ができる
	Export bool // 合成結果を静的画像として書き出せる
}

// Select はホストの機能に応じて描画方式を 1 つ選びます。
// interp が nil の場合は CatmullRom を使います。
func Select(caps Capabilities, interp xdraw.Interpolator) Strategy {
	if !caps.Canvas {
		return NewLegacyRenderer()
	}
	return NewCompositeRenderer(caps.Export, interp)
}
