// Package service はアプリの業務ロジック層を含む。
package service

import (
	"context"
	"errors"
	"time"

	"kintore-coach-go/internal/model"
	"kintore-coach-go/internal/repository"
	"kintore-coach-go/pkg/hash"
	"kintore-coach-go/pkg/log"
	"kintore-coach-go/pkg/token"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// UserService はユーザー関連の業務操作を定義する。
type UserService interface {
	Register(username, password string) (*model.User, error)
	Login(username, password string) (accessToken, refreshToken string, err error)
	GetProfile(username string) (*model.User, error)
	Logout(ctx context.Context, tokenString string) error
	RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
	IsTokenBlacklisted(ctx context.Context, tokenString string) bool
}

// userService は UserService の実装。
type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtManager  *token.JWTManager
	redisClient *redis.Client
}

// NewUserService は新しい UserService を生成する。
func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtManager *token.JWTManager, redisClient *redis.Client) UserService {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtManager:  jwtManager,
		redisClient: redisClient,
	}
}

// Register はユーザー登録の業務ロジックを処理する。
func (s *userService) Register(username, password string) (*model.User, error) {
	// 1. ユーザー名の重複を確認する
	_, err := s.userRepo.FindByUsername(username)
	if err == nil {
		return nil, errors.New("このユーザー名は既に使われています")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. パスワードをハッシュ化する
	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 3. 新規ユーザーを保存する
	newUser := &model.User{
		Username: username,
		Password: hashedPassword,
		Role:     "USER", // デフォルトの役割
	}
	if err := s.userRepo.Create(newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}

// Login はログインの業務ロジックを処理する。
func (s *userService) Login(username, password string) (accessToken, refreshToken string, err error) {
	// 1. ユーザーを検索する
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", errors.New("invalid credentials")
		}
		return "", "", err
	}

	// 2. パスワードを検証する
	if !hash.CheckPasswordHash(password, user.Password) {
		return "", "", errors.New("invalid credentials")
	}

	// 3. access token と refresh token を発行する
	accessToken, err = s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = s.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// GetProfile はユーザー名からユーザー情報を取得する。
func (s *userService) GetProfile(username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Logout は token を Redis のブラックリストへ登録し、保存済みの会話トークンを破棄する。
func (s *userService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.jwtManager.VerifyToken(tokenString)
	if err != nil {
		return err
	}

	// ログアウトで会話の継続は終わる。失敗してもログアウト自体は続行する。
	if err := s.sessionRepo.ClearConversationID(ctx, claims.UserID); err != nil {
		log.Warnf("[UserService] 会話トークンの破棄に失敗, userID: %d, error: %v", claims.UserID, err)
	}

	// token の残り有効期間をそのまま Redis キーの期限に使う
	expiration := time.Until(claims.ExpiresAt.Time)
	return s.redisClient.Set(ctx, "blacklist:"+tokenString, "true", expiration).Err()
}

// IsTokenBlacklisted はログアウト済み token かどうかを報告する。
// Redis が落ちている場合は安全側に倒さず通す。認証自体は JWT の検証で担保される。
func (s *userService) IsTokenBlacklisted(ctx context.Context, tokenString string) bool {
	exists, err := s.redisClient.Exists(ctx, "blacklist:"+tokenString).Result()
	if err != nil {
		log.Warnf("[UserService] ブラックリストの確認に失敗, error: %v", err)
		return false
	}
	return exists > 0
}

// RefreshToken は refresh token を検証し、新しい token ペアを発行する。
func (s *userService) RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error) {
	// 1. refresh token を検証する
	claims, err := s.jwtManager.VerifyToken(refreshTokenString)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	// 2. ユーザーの存在を確認する
	user, err := s.userRepo.FindByUsername(claims.Username)
	if err != nil {
		return "", "", errors.New("user not found")
	}

	// 3. 新しい token を発行する
	newAccessToken, err = s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	newRefreshToken, err = s.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}

	return newAccessToken, newRefreshToken, nil
}
