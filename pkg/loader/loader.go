package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/netarmor/securenet"
	"github.com/shouni/reflection-kit/pkg/domain"
	"github.com/shouni/reflection-kit/pkg/imgutil"
)

// Loader は URL や URI から画像を読み込み、表示要素に変換します。
// http(s) は HTTPClient、それ以外 (gs://, ローカルパス等) は InputReader で取得します。
type Loader struct {
	reader     remoteio.InputReader
	httpClient HTTPClient
	cache      ImageCacher
	cacheTTL   time.Duration
	guard      func(string) (bool, error)
}

// Option は Loader の挙動を変更します。
type Option func(*Loader)

// AllowPrivateNetworks はプライベートIPやループバックへの取得を許可します。
// 自宅サーバー上のアルバムアート等、信頼できるネットワークでのみ使ってください。
func AllowPrivateNetworks() Option {
	return func(l *Loader) { l.guard = schemeOnly }
}

// New は依存関係を注入して Loader を初期化します。
func New(reader remoteio.InputReader, httpClient HTTPClient, cache ImageCacher, cacheTTL time.Duration, opts ...Option) (*Loader, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	// cache は nil を許容（キャッシュなし動作）

	l := &Loader{
		reader:     reader,
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
		guard:      securenet.IsSafeURL,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load は画像を取得・デコードし、img 要素として返します。
// 失敗した場合は常に domain.ErrLoadFailure をラップしたエラーを返します。
func (l *Loader) Load(ctx context.Context, rawURL string) (*domain.Element, error) {
	data, err := l.fetch(ctx, rawURL)
	if err != nil {
		slog.WarnContext(ctx, "画像の取得に失敗しました", "url", rawURL, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrLoadFailure, rawURL, err)
	}

	img, format, err := imgutil.Decode(data)
	if err != nil {
		slog.WarnContext(ctx, "画像のデコードに失敗しました", "url", rawURL, "error", err)
		return nil, fmt.Errorf("%w: %s: デコード失敗: %w", domain.ErrLoadFailure, rawURL, err)
	}

	b := img.Bounds()
	slog.DebugContext(ctx, "画像を読み込みました", "url", rawURL, "format", format, "width", b.Dx(), "height", b.Dy())
	return domain.NewImageElement(rawURL, img), nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("URLが空です")
	}

	// キャッシュの確認
	if l.cache != nil {
		if cached, found := l.cache.Get(rawURL); found {
			if data, ok := cached.([]byte); ok {
				return data, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", rawURL, "type", fmt.Sprintf("%T", cached))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if isHTTPURL(rawURL) {
		data, err = l.fetchHTTP(ctx, rawURL)
	} else {
		data, err = l.fetchRemote(ctx, rawURL)
	}
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		l.cache.Set(rawURL, data, l.cacheTTL)
	}
	return data, nil
}

func (l *Loader) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	if safe, err := l.guard(rawURL); err != nil || !safe {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	return l.httpClient.FetchBytes(ctx, rawURL)
}

func (l *Loader) fetchRemote(ctx context.Context, uri string) ([]byte, error) {
	rc, err := l.reader.Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	if rc == nil {
		return nil, fmt.Errorf("reader returned no content: %s", uri)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
