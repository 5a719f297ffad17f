package loader

import (
	"fmt"
	"net/url"
	"strings"
)

// schemeOnly はスキームだけを検証します。ローカルネットワークの取得を許可する場合に使います。
func schemeOnly(rawURL string) (bool, error) {
	if _, err := parseHTTPURL(rawURL); err != nil {
		return false, err
	}
	return true, nil
}

func parseHTTPURL(rawURL string) (*url.URL, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, fmt.Errorf("URLパース失敗: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}
	return parsedURL, nil
}

// isHTTPURL は HTTP クライアントで取得すべき URL かを判定します。
func isHTTPURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
