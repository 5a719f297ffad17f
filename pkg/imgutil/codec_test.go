package imgutil

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// テスト用のダミー画像（10x10の半透明の赤い正方形）を作成するヘルパー
func createDummyImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 128})
		}
	}
	return img
}

func TestDecode(t *testing.T) {
	t.Run("PNGをデコードできること", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, png.Encode(buf, createDummyImage()))

		img, format, err := Decode(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())
	})

	t.Run("JPEGをデコードできること", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, jpeg.Encode(buf, createDummyImage(), nil))

		_, format, err := Decode(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("不正なデータを与えた場合にエラーを返すこと", func(t *testing.T) {
		_, _, err := Decode([]byte("this is not an image"))
		assert.Error(t, err)
	})

	t.Run("空データはエラー", func(t *testing.T) {
		_, _, err := Decode(nil)
		assert.Error(t, err)
	})
}

func TestEncodePNG(t *testing.T) {
	src := createDummyImage()

	data, err := EncodePNG(src)
	require.NoError(t, err)

	// アルファ値が保持されていることを確認
	decoded, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	_, _, _, a := decoded.At(3, 3).RGBA()
	assert.InDelta(t, 128*257, a, 257)
}

func TestDataURL(t *testing.T) {
	got := DataURL(MimeTypePNG, []byte("abc"))

	require.True(t, strings.HasPrefix(got, "data:image/png;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(got, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, "abc", string(raw))
}
