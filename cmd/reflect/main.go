// Command reflect は画像の下に、上下反転してフェードさせた反射を合成します。
//
//	reflect [flags] SOURCE...
//
// SOURCE には http(s) の URL、gs:// / s3:// の URI、ローカルのファイルパスを指定します。
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/reflection-kit/pkg/config"
	"github.com/shouni/reflection-kit/pkg/loader"
	"github.com/shouni/reflection-kit/pkg/reflector"
	"github.com/shouni/reflection-kit/pkg/renderer"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("reflect", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	sources := fs.Args()
	if len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "usage: reflect [flags] SOURCE...")
		fs.PrintDefaults()
		return 2
	}

	configPath, _ := fs.GetString("config")
	cfg, err := config.Load(configPath, fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reader, closeReader, err := newInputReader(ctx, sources)
	if err != nil {
		slog.Error("ストレージクライアントの初期化に失敗しました", "error", err)
		return 1
	}
	defer closeReader()

	// --allow-private はローダーの事前検証と httpkit の接続時検証の両方を外す
	var opts []loader.Option
	if cfg.Fetch.AllowPrivate {
		opts = append(opts, loader.AllowPrivateNetworks())
	}
	httpClient := httpkit.New(cfg.Fetch.Timeout, httpkit.WithSkipNetworkValidation(cfg.Fetch.AllowPrivate))
	cache := gocache.New(cfg.Fetch.CacheTTL, 2*cfg.Fetch.CacheTTL)
	ld, err := loader.New(reader, httpClient, cache, cfg.Fetch.CacheTTL, opts...)
	if err != nil {
		slog.Error("ローダーの初期化に失敗しました", "error", err)
		return 1
	}

	caps := renderer.Capabilities{Canvas: !cfg.Output.Legacy, Export: cfg.Output.Export}
	r, err := reflector.New(caps, ld)
	if err != nil {
		slog.Error("初期化に失敗しました", "error", err)
		return 1
	}

	// 設定の検証は済んでいるので、ここでは読み込みを一斉に開始する
	type job struct {
		src     string
		pending *reflector.Pending
		cancel  context.CancelFunc
	}
	jobs := make([]job, 0, len(sources))
	failed := 0
	for _, src := range sources {
		jobCtx, cancel := context.WithTimeout(ctx, cfg.Fetch.Timeout)
		p, err := r.ApplyFromSource(jobCtx, src, cfg.Reflection)
		if err != nil {
			cancel()
			slog.Error("反射処理を開始できませんでした", "source", src, "error", err)
			failed++
			continue
		}
		jobs = append(jobs, job{src: src, pending: p, cancel: cancel})
	}

	for _, j := range jobs {
		res, err := j.pending.Wait(ctx)
		j.cancel()
		if err != nil {
			slog.Error("反射処理に失敗しました", "source", j.src, "error", err)
			failed++
			continue
		}
		out, err := writeResult(cfg.Output.Dir, j.src, res)
		if err != nil {
			slog.Error("出力に失敗しました", "source", j.src, "error", err)
			failed++
			continue
		}
		slog.Info("反射画像を出力しました", "source", j.src, "output", out, "strategy", r.Strategy())
	}

	if failed > 0 {
		slog.Warn("一部のソースの処理に失敗しました", "failed", failed, "total", len(sources))
		return 1
	}
	return 0
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
