package reflector

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/shouni/reflection-kit/pkg/domain"
	"github.com/shouni/reflection-kit/pkg/renderer"
	xdraw "golang.org/x/image/draw"
)

// ImageLoader は URL から画像要素を読み込みます。loader.Loader がこれを満たします。
type ImageLoader interface {
	Load(ctx context.Context, url string) (*domain.Element, error)
}

// Reflector は反射エフェクトの公開窓口です。
// 描画方式は生成時にホストの機能から一度だけ選ばれます。
type Reflector struct {
	strategy renderer.Strategy
	loader   ImageLoader
	interp   xdraw.Interpolator
}

// Option は Reflector の挙動を変更します。
type Option func(*Reflector)

// WithInterpolator は縮小時の補間方式を指定します。
func WithInterpolator(interp xdraw.Interpolator) Option {
	return func(r *Reflector) { r.interp = interp }
}

// WithStrategy は描画方式を直接指定します。Capabilities による選択より優先されます。
func WithStrategy(s renderer.Strategy) Option {
	return func(r *Reflector) { r.strategy = s }
}

// New は Reflector を初期化します。
// ld は nil を許容しますが、その場合 ApplyFromSource は使えません。
func New(caps renderer.Capabilities, ld ImageLoader, opts ...Option) (*Reflector, error) {
	r := &Reflector{loader: ld}
	for _, opt := range opts {
		opt(r)
	}
	if r.strategy == nil {
		r.strategy = renderer.Select(caps, r.interp)
	}

	slog.Info("反射の描画方式を選択しました", "strategy", r.strategy.Name(), "canvas", caps.Canvas, "export", caps.Export)
	return r, nil
}

// Strategy は選択された描画方式の名前を返します。
func (r *Reflector) Strategy() string {
	return r.strategy.Name()
}

// Apply は読み込み済みの要素に反射エフェクトを適用します。
// 設定値は描画前に検証されます。マーカークラスを持つ要素には何もしません。
func (r *Reflector) Apply(ctx context.Context, el *domain.Element, cfg domain.Config) (*domain.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return r.strategy.Render(ctx, el, cfg)
}

// ApplyAll は複数の要素に順番に反射エフェクトを適用します。
// 失敗した要素の結果は nil になり、エラーはまとめて返されます。
func (r *Reflector) ApplyAll(ctx context.Context, els []*domain.Element, cfg domain.Config) ([]*domain.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]*domain.Result, len(els))
	var errs []error
	for i, el := range els {
		res, err := r.strategy.Render(ctx, el, cfg)
		if err != nil {
			errs = append(errs, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		results[i] = res
	}
	return results, errors.Join(errs...)
}

// Surface は要素を変更せずに合成サーフェスだけを生成します。
// ピクセル合成できない方式が選ばれている場合は domain.ErrUnsupportedSurface を返します。
func (r *Reflector) Surface(el *domain.Element, cfg domain.Config) (*image.NRGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sr, ok := r.strategy.(renderer.SurfaceRenderer)
	if !ok {
		return nil, fmt.Errorf("%w: strategy %s", domain.ErrUnsupportedSurface, r.strategy.Name())
	}
	return sr.Composite(el, cfg)
}

// ApplyFromSource は URL から画像を読み込み、読み込み完了後に Apply と同じ処理を行います。
// 設定値の検証は同期的に行い、読み込みと描画は Pending で待ち合わせます。
// 読み込みの失敗は domain.ErrLoadFailure として Pending に返されます。
func (r *Reflector) ApplyFromSource(ctx context.Context, url string, cfg domain.Config) (*Pending, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if r.loader == nil {
		return nil, fmt.Errorf("loader is required for ApplyFromSource")
	}

	p := newPending(url)
	go func() {
		p.resolve(r.loadAndApply(ctx, url, cfg))
	}()
	return p, nil
}

func (r *Reflector) loadAndApply(ctx context.Context, url string, cfg domain.Config) (*domain.Result, error) {
	el, err := r.loader.Load(ctx, url)
	if err != nil {
		if !errors.Is(err, domain.ErrLoadFailure) {
			err = fmt.Errorf("%w: %s: %w", domain.ErrLoadFailure, url, err)
		}
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("%w: %s: loader returned no element", domain.ErrLoadFailure, url)
	}

	res, err := r.strategy.Render(ctx, el, cfg)
	if err != nil {
		return nil, fmt.Errorf("反射処理に失敗しました (%s): %w", url, err)
	}
	slog.DebugContext(ctx, "URLからの反射処理が完了しました", "url", url, "strategy", r.strategy.Name(), "skipped", res.Skipped)
	return res, nil
}
