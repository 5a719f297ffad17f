package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shouni/reflection-kit/pkg/domain"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "REFLECT"

type Config struct {
	Reflection domain.Config `mapstructure:"reflection"`
	Fetch      FetchConfig   `mapstructure:"fetch"`
	Output     OutputConfig  `mapstructure:"output"`
	Log        LogConfig     `mapstructure:"log"`
}

type FetchConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	AllowPrivate bool          `mapstructure:"allow_private"`
}

type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	Legacy bool   `mapstructure:"legacy"` // ピクセル合成を使わずレイアウトJSONを出力する
	Export bool   `mapstructure:"export"` // false なら合成サーフェスをそのまま出力する
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// flagKeys はフラグ名と設定キーの対応です。
var flagKeys = map[string]string{
	"height":        "reflection.height",
	"opacity":       "reflection.opacity",
	"css-class":     "reflection.css_class",
	"max-width":     "reflection.max_width",
	"max-height":    "reflection.max_height",
	"timeout":       "fetch.timeout",
	"cache-ttl":     "fetch.cache_ttl",
	"allow-private": "fetch.allow_private",
	"out":           "output.dir",
	"legacy":        "output.legacy",
	"export":        "output.export",
	"log-level":     "log.level",
}

// RegisterFlags はコマンドラインフラグを登録します。既定値は setDefaults と揃えます。
func RegisterFlags(fs *pflag.FlagSet) {
	d := domain.DefaultConfig()
	fs.String("config", "", "path to a YAML config file")
	fs.Float64("height", d.Height, "reflection height as a fraction of the image height")
	fs.Float64("opacity", d.Opacity, "reflection opacity at the seam (0-1)")
	fs.String("css-class", d.CSSClass, "marker class applied to reflected elements")
	fs.Int("max-width", d.MaxWidth, "maximum image width (-1 = unbounded)")
	fs.Int("max-height", d.MaxHeight, "maximum image height (-1 = unbounded)")
	fs.Duration("timeout", 30*time.Second, "fetch timeout per source")
	fs.Duration("cache-ttl", 10*time.Minute, "cache lifetime for fetched images")
	fs.Bool("allow-private", false, "allow fetching from private or loopback addresses")
	fs.String("out", ".", "output directory")
	fs.Bool("legacy", false, "emit layout descriptors instead of composited pixels")
	fs.Bool("export", true, "export the composite as a static image")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
}

// Load はデフォルト値、設定ファイル、環境変数、フラグの順に設定を重ねて読み込みます。
// configPath が空の場合は設定ファイルを読みません。fs は nil でも構いません。
func Load(configPath string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Reflection.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := domain.DefaultConfig()
	v.SetDefault("reflection.height", d.Height)
	v.SetDefault("reflection.opacity", d.Opacity)
	v.SetDefault("reflection.css_class", d.CSSClass)
	v.SetDefault("reflection.max_width", d.MaxWidth)
	v.SetDefault("reflection.max_height", d.MaxHeight)

	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.cache_ttl", 10*time.Minute)
	v.SetDefault("fetch.allow_private", false)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.legacy", false)
	v.SetDefault("output.export", true)

	v.SetDefault("log.level", "info")
}
