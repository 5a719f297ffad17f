package reflector

import (
	"context"

	"github.com/shouni/reflection-kit/pkg/domain"
)

// Pending は URL から読み込んで反射処理する非同期処理の結果です。
// 一度だけ解決され、その後は同じ結果を返し続けます。
type Pending struct {
	url    string
	done   chan struct{}
	result *domain.Result
	err    error
}

func newPending(url string) *Pending {
	return &Pending{url: url, done: make(chan struct{})}
}

// resolve は処理を実行したゴルーチンから一度だけ呼ばれます。
func (p *Pending) resolve(res *domain.Result, err error) {
	p.result, p.err = res, err
	close(p.done)
}

// URL は読み込み元の URL を返します。
func (p *Pending) URL() string { return p.url }

// Done は処理が完了すると閉じられるチャネルを返します。
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait は処理の完了を待って結果を返します。
// ctx が先に終了した場合は ctx.Err() を返しますが、処理自体は続行されます。
func (p *Pending) Wait(ctx context.Context) (*domain.Result, error) {
	select {
	case <-p.done:
		return p.result, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
