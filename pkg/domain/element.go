package domain

import "image"

// ElementKind は表示要素の種類です。
type ElementKind string

const (
	KindImage     ElementKind = "img"
	KindCanvas    ElementKind = "canvas"
	KindContainer ElementKind = "div"
)

// Element はホスト文書上の表示要素を表します。
// Width/Height は表示サイズ、Pixels は読み込み済みの画素データです。
type Element struct {
	Kind    ElementKind
	Src     string
	Pixels  image.Image
	Width   int
	Height  int
	Classes []string
}

// NewImageElement は読み込み済みの画像から img 要素を作成します。
func NewImageElement(src string, img image.Image) *Element {
	el := &Element{Kind: KindImage, Src: src, Pixels: img}
	if img != nil {
		b := img.Bounds()
		el.Width, el.Height = b.Dx(), b.Dy()
	}
	return el
}

// HasClass は指定したクラスを持っているかを返します。
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass はクラスを追加します。既にあれば何もしません。
func (e *Element) AddClass(class string) {
	if class == "" || e.HasClass(class) {
		return
	}
	e.Classes = append(e.Classes, class)
}

// NaturalSize は画像本来のピクセルサイズを返します。
// Pixels が無い場合は表示サイズで代用します。
func (e *Element) NaturalSize() (int, int) {
	if e.Pixels != nil {
		b := e.Pixels.Bounds()
		return b.Dx(), b.Dy()
	}
	return e.Width, e.Height
}
