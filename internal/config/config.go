package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string
	Port            string
	StoreDriver     string
	MongoURI        string
	DatabaseName    string
	DatabasePath    string
	ConnectTimeout  time.Duration
	SessionSecret   string
	GinMode         string
	LogLevel        string
	LogFormat       string
	SeedFile        string
	SecureSSL       bool
	ShutdownTimeout time.Duration
}

// LoadEnvFile merges key=value pairs from path into the process environment
// without overriding variables that are already set. A missing default .env
// is ignored; a missing explicitly named file is an error.
func LoadEnvFile(path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "3000")
	v.SetDefault("database_name", "blogsdb")
	v.SetDefault("database_path", "blog.db")
	v.SetDefault("connect_timeout", "10s")
	v.SetDefault("session_secret", "journal-dev-secret")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("secure_ssl", false)
	v.SetDefault("shutdown_timeout", "10s")

	port := stringOr(v, "port", "3000")

	listenAddr := strings.TrimSpace(v.GetString("listen_addr"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	return AppConfig{
		ListenAddr:      listenAddr,
		Port:            port,
		StoreDriver:     strings.ToLower(strings.TrimSpace(v.GetString("store_driver"))),
		MongoURI:        strings.TrimSpace(v.GetString("mongo_uri")),
		DatabaseName:    stringOr(v, "database_name", "blogsdb"),
		DatabasePath:    stringOr(v, "database_path", "blog.db"),
		ConnectTimeout:  durationOr(v, "connect_timeout", 10*time.Second),
		SessionSecret:   stringOr(v, "session_secret", "journal-dev-secret"),
		GinMode:         stringOr(v, "gin_mode", "release"),
		LogLevel:        stringOr(v, "log_level", "info"),
		LogFormat:       stringOr(v, "log_format", "text"),
		SeedFile:        strings.TrimSpace(v.GetString("seed_file")),
		SecureSSL:       v.GetBool("secure_ssl"),
		ShutdownTimeout: durationOr(v, "shutdown_timeout", 10*time.Second),
	}
}

// stringOr treats a blank value the same as an unset one.
func stringOr(v *viper.Viper, key, fallback string) string {
	if value := strings.TrimSpace(v.GetString(key)); value != "" {
		return value
	}
	return fallback
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return fallback
}
