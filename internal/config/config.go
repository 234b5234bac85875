package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration knobs for the portal and its dev server.
type Config struct {
	API struct {
		BaseURL        string        `mapstructure:"base_url"`
		RequestTimeout time.Duration `mapstructure:"request_timeout"`
		PerPageNum     int           `mapstructure:"per_page_num"`
		SuccessMarker  string        `mapstructure:"success_marker"`
	} `mapstructure:"api"`
	Portal struct {
		Title         string `mapstructure:"title"`
		AdminID       string `mapstructure:"admin_id"`
		LatestNotices int    `mapstructure:"latest_notices"`
	} `mapstructure:"portal"`
	Storage struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"storage"`
	Log struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"log"`
	DevServer struct {
		Addr            string        `mapstructure:"addr"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		StoragePath     string        `mapstructure:"storage_path"`
		JWTSecret       string        `mapstructure:"jwt_secret"`
		AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
		RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
		AdminID         string        `mapstructure:"admin_id"`
		AdminPassword   string        `mapstructure:"admin_password"`
		GroupWidth      int           `mapstructure:"group_width"`
	} `mapstructure:"devserver"`
}

// DefaultSuccessMarker is the text the server puts in a successful mutation result.
const DefaultSuccessMarker = "성공"

// Load reads the configuration from disk/environment using Viper.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("helper_portal")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine, env and defaults still apply
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// an empty marker would match every result
	if strings.TrimSpace(cfg.API.SuccessMarker) == "" {
		cfg.API.SuccessMarker = DefaultSuccessMarker
	}
	return &cfg, nil
}

// Default returns the configuration with only defaults applied.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults are all well-typed, decoding cannot fail
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://127.0.0.1:80")
	v.SetDefault("api.request_timeout", "0s")
	v.SetDefault("api.per_page_num", 10)
	v.SetDefault("api.success_marker", DefaultSuccessMarker)

	v.SetDefault("portal.title", "Helper Portal")
	v.SetDefault("portal.admin_id", "admin")
	v.SetDefault("portal.latest_notices", 2)

	v.SetDefault("storage.path", "./data/portal.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "./data/portal.log")

	v.SetDefault("devserver.addr", ":8080")
	v.SetDefault("devserver.read_timeout", "15s")
	v.SetDefault("devserver.write_timeout", "30s")
	v.SetDefault("devserver.storage_path", "./data/devserver.db")
	v.SetDefault("devserver.jwt_secret", "change-me-secret")
	v.SetDefault("devserver.access_token_ttl", "15m")
	v.SetDefault("devserver.refresh_token_ttl", "720h")
	v.SetDefault("devserver.admin_id", "admin")
	v.SetDefault("devserver.admin_password", "admin1234")
	v.SetDefault("devserver.group_width", 10)
}
