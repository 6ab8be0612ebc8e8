// Package main は環境変数から管理者ユーザーを作成するブートストラップ用コマンド。
// デプロイ直後に 1 回実行する想定。既存ユーザーがいれば何もしない。
package main

import (
	"errors"
	"fmt"
	"os"

	"kintore-coach-go/internal/config"
	"kintore-coach-go/internal/model"
	"kintore-coach-go/internal/repository"
	"kintore-coach-go/pkg/database"
	"kintore-coach-go/pkg/hash"
	"kintore-coach-go/pkg/log"

	"gorm.io/gorm"
)

func main() {
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	username := os.Getenv("COACH_ADMIN_USERNAME")
	password := os.Getenv("COACH_ADMIN_PASSWORD")
	if username == "" || password == "" {
		fmt.Println("COACH_ADMIN_USERNAME と COACH_ADMIN_PASSWORD を設定してください")
		os.Exit(1)
	}

	database.InitMySQL(cfg.Database.MySQL.DSN)
	if err := database.DB.AutoMigrate(&model.User{}); err != nil {
		log.Fatal("users テーブルのマイグレーションに失敗", err)
	}

	userRepo := repository.NewUserRepository(database.DB)

	// 冪等: 同名ユーザーがいれば何もしない
	if _, err := userRepo.FindByUsername(username); err == nil {
		fmt.Printf("ユーザー '%s' は既に存在します\n", username)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal("ユーザーの確認に失敗", err)
	}

	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		log.Fatal("パスワードのハッシュ化に失敗", err)
	}

	admin := &model.User{
		Username: username,
		Password: hashedPassword,
		Role:     "ADMIN",
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatal("管理者ユーザーの作成に失敗", err)
	}

	fmt.Printf("管理者ユーザー '%s' を作成しました\n", username)
}
