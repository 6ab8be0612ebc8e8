// Package config はアプリケーション設定の読み込みと管理を担当する。
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// グローバル設定変数。設定ファイルから読み込んだすべての値を保持する。
var Conf Config

// Config はアプリケーション全体の設定構造体で、config.yaml の構造に対応する。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	Dify     DifyConfig     `mapstructure:"dify"`
}

// ServerConfig はサーバー関連の設定を保持する。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig はすべてのデータベース接続の設定を保持する。
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig は MySQL データベースの設定を保持する。
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig は Redis の設定を保持する。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig は JWT 関連の設定を保持する。
type JWTConfig struct {
	Secret                 string `mapstructure:"secret"`
	AccessTokenExpireHours int    `mapstructure:"access_token_expire_hours"`
	RefreshTokenExpireDays int    `mapstructure:"refresh_token_expire_days"`
}

// LogConfig はログ関連の設定を保持する。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// SheetsConfig はトレーニング記録の保存先であるスプレッドシート Web アプリの設定を保持する。
// URL が空でもアプリは起動する。該当機能は設定不足として利用者に案内される。
type SheetsConfig struct {
	PostURL string `mapstructure:"post_url"`
	GetURL  string `mapstructure:"get_url"`
}

// DifyConfig は Dify チャット API の設定を保持する。
// ChatURL が空の場合はクライアント側で公式エンドポイントが使われる。
type DifyConfig struct {
	APIKey  string `mapstructure:"api_key"`
	ChatURL string `mapstructure:"chat_url"`
}

// Init は指定されたパスの YAML ファイルを読み込み、Conf 変数に展開する。
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("設定ファイルの読み込みに失敗: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("設定を構造体に展開できません: %w", err))
	}
}
