// Package middleware は HTTP リクエストを処理するミドルウェアを提供する。
package middleware

import (
	"net/http"
	"strings"

	"kintore-coach-go/internal/service"
	"kintore-coach-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware は JWT 認証を行う Gin ミドルウェアを生成する。
// リクエストヘッダーから token を取り出して検証し、完全な User と claims を
// Gin のコンテキストへ格納する。
func AuthMiddleware(jwtManager *token.JWTManager, userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Authorization ヘッダーから token を取得する
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "リクエストに認証ヘッダーが含まれていません"})
			return
		}

		// token は "Bearer <token>" 形式で届くので本体を取り出す
		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "認証ヘッダーの形式が不正です"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "無効または期限切れの token です"})
			return
		}

		// ログアウト済み token を弾く
		if userService.IsTokenBlacklisted(c.Request.Context(), tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "無効または期限切れの token です"})
			return
		}

		// claims のユーザー名でデータベースから完全なユーザー情報を取得する
		user, err := userService.GetProfile(claims.Username)
		if err != nil {
			// 見つからない場合はユーザーが削除された可能性がある
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "ユーザーが存在しません"})
			return
		}

		// 後続のハンドラーで使えるようコンテキストへ格納する
		c.Set("user", user)
		c.Set("claims", claims)

		c.Next()
	}
}
