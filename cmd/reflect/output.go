package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/reflection-kit/pkg/domain"
	"github.com/shouni/reflection-kit/pkg/imgutil"
)

// outputName は読み込み元から出力ファイル名を決めます。
func outputName(src, suffix string) string {
	p := src
	if u, err := url.Parse(src); err == nil && u.Scheme != "" && u.Path != "" {
		p = u.Path
	}
	base := path.Base(filepath.ToSlash(p))
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	return strings.TrimSuffix(base, path.Ext(base)) + suffix
}

// writeResult は結果をファイルに書き出し、書き出したパスを返します。
func writeResult(dir, src string, res *domain.Result) (string, error) {
	var (
		name string
		data []byte
		err  error
	)
	switch {
	case res.Surface != nil:
		name = outputName(src, ".reflected.png")
		data, err = imgutil.EncodePNG(res.Surface)
	case res.Layout != nil:
		name = outputName(src, ".layout.json")
		data, err = json.MarshalIndent(res.Layout, "", "  ")
	default:
		return "", fmt.Errorf("nothing to write for %s", src)
	}
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	out := filepath.Join(dir, name)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", err
	}
	return out, nil
}
