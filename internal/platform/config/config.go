// Package config loads runtime configuration from environment
// variables (prefix USERS_) with an optional config.yaml override.
package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		Host          string `mapstructure:"host"`
		Port          string `mapstructure:"port"`
		User          string `mapstructure:"user"`
		Password      string `mapstructure:"password"`
		Name          string `mapstructure:"name"`
		RunMigrations bool   `mapstructure:"run_migrations"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Storage struct {
		// Provider selects the blob backend: "local" or "s3".
		Provider      string `mapstructure:"provider"`
		LocalRoot     string `mapstructure:"local_root"`
		PublicBaseURL string `mapstructure:"public_base_url"`
		RootDir       string `mapstructure:"root_dir"`
		Endpoint      string `mapstructure:"endpoint"`
		Region        string `mapstructure:"region"`
		Bucket        string `mapstructure:"bucket"`
		AccessKey     string `mapstructure:"access_key"`
		SecretKey     string `mapstructure:"secret_key"`
	} `mapstructure:"storage"`
	Auth struct {
		LoginFailureDelaySeconds int `mapstructure:"login_failure_delay_seconds"`
	} `mapstructure:"auth"`
}

func Load() *Config {
	viper.SetEnvPrefix("USERS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register keys
	viper.BindEnv("server.port")

	viper.BindEnv("database.host")
	viper.BindEnv("database.port")
	viper.BindEnv("database.user")
	viper.BindEnv("database.password")
	viper.BindEnv("database.name")
	viper.BindEnv("database.run_migrations")

	viper.BindEnv("redis.host")
	viper.BindEnv("redis.port")
	viper.BindEnv("redis.password")

	viper.BindEnv("storage.provider")
	viper.BindEnv("storage.local_root")
	viper.BindEnv("storage.public_base_url")
	viper.BindEnv("storage.root_dir")
	viper.BindEnv("storage.endpoint")
	viper.BindEnv("storage.region")
	viper.BindEnv("storage.bucket")
	viper.BindEnv("storage.access_key")
	viper.BindEnv("storage.secret_key")

	viper.BindEnv("auth.login_failure_delay_seconds")

	// Defaults
	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.run_migrations", false)
	viper.SetDefault("storage.provider", "local")
	viper.SetDefault("storage.local_root", "./storage")
	viper.SetDefault("storage.public_base_url", "http://localhost:8080/storage")
	viper.SetDefault("storage.root_dir", "thumbnails")
	viper.SetDefault("auth.login_failure_delay_seconds", 2)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: config error: %s", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("unable to decode config: %v", err)
	}

	if cfg.Storage.Provider == "s3" && cfg.Storage.AccessKey == "" {
		log.Fatal("storage access key is missing (USERS_STORAGE_ACCESS_KEY)")
	}

	return &cfg
}
