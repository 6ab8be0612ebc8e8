// Package handler は HTTP リクエストを処理するコントローラーロジックを含む。
package handler

import (
	"net/http"

	"kintore-coach-go/internal/service"
	"kintore-coach-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AuthHandler は token の更新など認証関連の API リクエストを処理する。
type AuthHandler struct {
	userService service.UserService
}

// NewAuthHandler は新しい AuthHandler を生成する。
func NewAuthHandler(userService service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// RefreshTokenRequest は token 更新 API のリクエストボディを定義する。
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken は token 更新のリクエストを処理する。
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("RefreshToken: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "refreshToken を指定してください"})
		return
	}

	newAccessToken, newRefreshToken, err := h.userService.RefreshToken(req.RefreshToken)
	if err != nil {
		log.Warnf("RefreshToken: Failed to refresh token, error: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "無効な refresh token です"})
		return
	}

	log.Info("Token refreshed successfully")
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Token refreshed successfully",
		"data": gin.H{
			"token":        newAccessToken,
			"refreshToken": newRefreshToken,
		},
	})
}
