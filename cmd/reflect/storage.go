package main

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/storage"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

const defaultS3Region = "ap-northeast-1"

// newInputReader は SOURCE に含まれるスキームに応じて GCS / S3 クライアントを作成し、
// ローカルパスも扱える InputReader を返します。
// 該当する SOURCE が無いクライアントは nil のまま渡します。
func newInputReader(ctx context.Context, sources []string) (remoteio.InputReader, func(), error) {
	var needGCS, needS3 bool
	for _, src := range sources {
		needGCS = needGCS || remoteio.IsGCSURI(src)
		needS3 = needS3 || remoteio.IsS3URI(src)
	}

	var (
		gcsClient *storage.Client
		s3Client  *s3.Client
	)
	cleanup := func() {
		if gcsClient != nil {
			if err := gcsClient.Close(); err != nil {
				slog.Warn("GCSクライアントのクローズに失敗しました", "error", err)
			}
		}
	}

	if needGCS {
		c, err := storage.NewClient(ctx)
		if err != nil {
			return nil, cleanup, fmt.Errorf("GCSクライアントの初期化に失敗しました: %w", err)
		}
		gcsClient = c
	}
	if needS3 {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("AWS設定のロードに失敗しました: %w", err)
		}
		if awsCfg.Region == "" {
			awsCfg.Region = defaultS3Region
		}
		s3Client = s3.NewFromConfig(awsCfg)
	}

	return remoteio.NewUniversalInputReader(gcsClient, s3Client), cleanup, nil
}
