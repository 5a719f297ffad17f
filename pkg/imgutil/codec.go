package imgutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
)

const MimeTypePNG = "image/png"

// Decode は画像データ（PNG, GIF, JPEG等）をデコードし、フォーマット名と共に返します。
// image.Decode がサポートするフォーマットに対応しています。
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image data")
	}
	return image.Decode(bytes.NewReader(data))
}

// EncodePNG は画像を PNG 形式にエンコードします。
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL はバイト列を data URL (RFC 2397) 形式の文字列に変換します。
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
