package domain

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultHeight    = 0.3
	DefaultOpacity   = 0.5
	DefaultCSSClass  = "reflected"
	DefaultMaxWidth  = -1
	DefaultMaxHeight = -1
)

// Config は反射エフェクトの設定です。
type Config struct {
	Height    float64 `json:"height" mapstructure:"height"`         // 画像の高さに対する反射部分の割合
	Opacity   float64 `json:"opacity" mapstructure:"opacity"`       // 継ぎ目での反射の不透明度 (0〜1)
	CSSClass  string  `json:"css_class" mapstructure:"css_class"`   // 処理済みを示すマーカークラス
	MaxWidth  int     `json:"max_width" mapstructure:"max_width"`   // 負の値なら制限なし
	MaxHeight int     `json:"max_height" mapstructure:"max_height"` // 負の値なら制限なし
}

// DefaultConfig は既定値で埋めた Config を返します。
func DefaultConfig() Config {
	return Config{
		Height:    DefaultHeight,
		Opacity:   DefaultOpacity,
		CSSClass:  DefaultCSSClass,
		MaxWidth:  DefaultMaxWidth,
		MaxHeight: DefaultMaxHeight,
	}
}

// Validate は描画前に設定値を検証します。
// 不正な値はすべて ErrInvalidConfig をラップしたエラーになります。
func (c Config) Validate() error {
	if math.IsNaN(c.Height) || math.IsInf(c.Height, 0) || c.Height <= 0 {
		return fmt.Errorf("%w: height must be a finite value > 0, got %v", ErrInvalidConfig, c.Height)
	}
	if math.IsNaN(c.Opacity) || c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("%w: opacity must be within [0, 1], got %v", ErrInvalidConfig, c.Opacity)
	}
	if c.CSSClass == "" {
		return fmt.Errorf("%w: css class is required", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.CSSClass, " \t\r\n\f") {
		return fmt.Errorf("%w: css class must be a single token: %q", ErrInvalidConfig, c.CSSClass)
	}
	return nil
}
