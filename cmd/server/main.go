// Package main はアプリケーションのエントリーポイント。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kintore-coach-go/internal/config"
	"kintore-coach-go/internal/handler"
	"kintore-coach-go/internal/middleware"
	"kintore-coach-go/internal/model"
	"kintore-coach-go/internal/repository"
	"kintore-coach-go/internal/service"
	"kintore-coach-go/pkg/database"
	"kintore-coach-go/pkg/dify"
	"kintore-coach-go/pkg/log"
	"kintore-coach-go/pkg/sheets"
	"kintore-coach-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 設定の初期化
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. ロガーの初期化
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 終了時にバッファ済みログを書き出す
	log.Info("ロガーの初期化に成功")

	// 3. データベースと Redis の初期化
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	if err := database.DB.AutoMigrate(&model.User{}); err != nil {
		log.Fatal("users テーブルのマイグレーションに失敗", err)
	}

	// 記録の保存先と AI の設定は任意。未設定でも起動し、該当機能は利用者に案内される。
	if cfg.Sheets.PostURL == "" || cfg.Sheets.GetURL == "" {
		log.Warnf("記録の保存先URLが未設定です (post: %q, get: %q)", cfg.Sheets.PostURL, cfg.Sheets.GetURL)
	}
	if cfg.Dify.APIKey == "" {
		log.Warnf("Dify の API キーが未設定です")
	}

	// 4. Repository の初期化
	userRepository := repository.NewUserRepository(database.DB)
	sessionRepository := repository.NewSessionRepository(database.RDB)

	// 5. Service の初期化 (依存性の注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	sheetsClient := sheets.NewClient(cfg.Sheets)
	difyClient := dify.NewClient(cfg.Dify)
	userService := service.NewUserService(userRepository, sessionRepository, jwtManager, database.RDB)
	recordService := service.NewRecordService(sheetsClient)
	coachService := service.NewCoachService(sheetsClient, difyClient, sessionRepository)

	// 6. Gin モードを設定してルーターを作成する
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // デフォルトミドルウェアなしのエンジンを使う
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "./web/static")

	// 7. 画面ルート
	pages := handler.NewPageHandler()
	r.GET("/login", pages.Login)
	r.GET("/", pages.Coach)
	r.GET("/chat", pages.Chat)
	r.GET("/record", pages.Record)
	r.GET("/history", pages.History)

	// 8. API ルート
	apiV1 := r.Group("/api/v1")
	{
		// Auth ルートグループ
		auth := apiV1.Group("/auth")
		{
			auth.POST("/refreshToken", handler.NewAuthHandler(userService).RefreshToken)
		}

		users := apiV1.Group("/users")
		{
			// 認証不要のルート (公開)
			users.POST("/register", handler.NewUserHandler(userService).Register)
			users.POST("/login", handler.NewUserHandler(userService).Login)

			// 認証が必要なルート
			authed := users.Group("/")
			authed.Use(middleware.AuthMiddleware(jwtManager, userService))
			{
				authed.GET("/me", handler.NewUserHandler(userService).GetProfile)
				authed.POST("/logout", handler.NewUserHandler(userService).Logout)
			}
		}

		// Record ルートグループ、要認証
		records := apiV1.Group("/records")
		records.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			records.POST("", handler.NewRecordHandler(recordService).Create)
			records.GET("", handler.NewRecordHandler(recordService).History)
		}

		// Coach ルートグループ、要認証
		coach := apiV1.Group("/coach")
		coach.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			coach.POST("/advice", handler.NewCoachHandler(coachService).Advice)
			coach.POST("/chat", handler.NewCoachHandler(coachService).Chat)
		}
	}

	// HTTP サーバーを起動し、グレースフルシャットダウンを行う
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("サービス起動 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP サービスの待ち受けに失敗: %s\n", err)
		}
	}()

	// 割り込みシグナルを待つ
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("停止シグナルを受信。サービスを終了します...")

	// 5 秒のタイムアウト付きコンテキスト
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP サーバーの終了に失敗: %v", err)
	}

	log.Info("サービスを正常に終了しました")
}
