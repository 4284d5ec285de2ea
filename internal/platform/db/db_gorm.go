// Package db はMySQLウェアハウス用のgorm接続を提供します。
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const retryInterval = 3 * time.Second

// Config はMySQL接続の設定です。InstanceName が設定されている場合は Cloud SQL のUnixソケットを使います。
type Config struct {
	User          string
	Password      string
	Name          string
	Host          string
	Port          string
	InstanceName  string
	RunMigrations bool
}

// Opener はDSNからgorm接続を開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		Host:          os.Getenv("DB_HOST"),
		Port:          os.Getenv("DB_PORT"),
		InstanceName:  os.Getenv("INSTANCE_CONNECTION_NAME"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
	}
}

// BuildDSN は設定からMySQLのDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// ConnectWithRetry は timeout に達するまで一定間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// OpenDB はMySQLに接続し、RunMigrations が有効なら models をマイグレーションします。
func OpenDB(cfg Config, models ...any) (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gmysql.Open(dsn), &gorm.Config{})
	})
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}
