package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Model      ModelConfig
	Kubernetes KubernetesConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type ModelConfig struct {
	Path              string
	URL               string
	DownloadTimeout   time.Duration
	Format            string
	MaxSizeBytes      int64
	FallbackOnCorrupt bool
}

// KubernetesConfig locates a Secret holding the model URL.
type KubernetesConfig struct {
	Enabled         bool
	InCluster       bool
	KubeConfigPath  string
	Timeout         time.Duration
	SecretNamespace string
	SecretName      string
	SecretKey       string
}

type LoggerConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("MODEL_PATH", "model.pkl")
	v.SetDefault("MODEL_PKL_URL", "")
	v.SetDefault("MODEL_DOWNLOAD_TIMEOUT", "30s")
	v.SetDefault("MODEL_FORMAT", "gob")
	v.SetDefault("MODEL_MAX_SIZE", "")
	v.SetDefault("MODEL_FALLBACK_ON_CORRUPT", false)
	v.SetDefault("KUBERNETES_ENABLED", false)
	v.SetDefault("KUBERNETES_IN_CLUSTER", false)
	v.SetDefault("KUBECONFIG_PATH", "")
	v.SetDefault("KUBERNETES_TIMEOUT", "10s")
	v.SetDefault("MODEL_URL_SECRET_NAMESPACE", "default")
	v.SetDefault("MODEL_URL_SECRET_NAME", "")
	v.SetDefault("MODEL_URL_SECRET_KEY", "MODEL_PKL_URL")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("LOGGER_FILE", "")
	v.SetDefault("LOGGER_MAX_SIZE_MB", 100)
	v.SetDefault("LOGGER_MAX_BACKUPS", 3)
	v.SetDefault("LOGGER_MAX_AGE_DAYS", 28)

	// Env
	v.AutomaticEnv()

	timeout, err := time.ParseDuration(v.GetString("MODEL_DOWNLOAD_TIMEOUT"))
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}

	kubeTimeout, err := time.ParseDuration(v.GetString("KUBERNETES_TIMEOUT"))
	if err != nil || kubeTimeout <= 0 {
		kubeTimeout = 10 * time.Second
	}

	var maxSize int64
	if s := strings.TrimSpace(v.GetString("MODEL_MAX_SIZE")); s != "" {
		maxSize, err = units.RAMInBytes(s)
		if err != nil {
			return nil, fmt.Errorf("parse MODEL_MAX_SIZE: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Model: ModelConfig{
			Path:              v.GetString("MODEL_PATH"),
			URL:               strings.TrimSpace(v.GetString("MODEL_PKL_URL")),
			DownloadTimeout:   timeout,
			Format:            v.GetString("MODEL_FORMAT"),
			MaxSizeBytes:      maxSize,
			FallbackOnCorrupt: v.GetBool("MODEL_FALLBACK_ON_CORRUPT"),
		},
		Kubernetes: KubernetesConfig{
			Enabled:         v.GetBool("KUBERNETES_ENABLED"),
			InCluster:       v.GetBool("KUBERNETES_IN_CLUSTER"),
			KubeConfigPath:  v.GetString("KUBECONFIG_PATH"),
			Timeout:         kubeTimeout,
			SecretNamespace: v.GetString("MODEL_URL_SECRET_NAMESPACE"),
			SecretName:      v.GetString("MODEL_URL_SECRET_NAME"),
			SecretKey:       v.GetString("MODEL_URL_SECRET_KEY"),
		},
		Logger: LoggerConfig{
			Level:      v.GetString("LOGGER_LEVEL"),
			Format:     v.GetString("LOGGER_FORMAT"),
			File:       v.GetString("LOGGER_FILE"),
			MaxSizeMB:  v.GetInt("LOGGER_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOGGER_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOGGER_MAX_AGE_DAYS"),
		},
	}

	if cfg.Kubernetes.Enabled && cfg.Kubernetes.SecretName == "" {
		return nil, fmt.Errorf("KUBERNETES_ENABLED requires MODEL_URL_SECRET_NAME")
	}

	return cfg, nil
}
