package domain

import "errors"

var (
	// ErrInvalidConfig は設定値が範囲外の場合に返されます。描画は一切行われません。
	ErrInvalidConfig = errors.New("invalid reflection config")
	// ErrUnsupportedSurface はピクセル合成ができないホストでサーフェスを要求した場合に返されます。
	ErrUnsupportedSurface = errors.New("pixel surface compositing is not supported")
	// ErrLoadFailure は URL からの画像読み込みに失敗した場合に返されます。
	ErrLoadFailure = errors.New("image load failure")
	// ErrInvalidImage はサイズが 0、またはピクセルデータを持たない画像に対して返されます。
	ErrInvalidImage = errors.New("invalid source image")
)
