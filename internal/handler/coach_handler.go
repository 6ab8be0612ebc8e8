// Package handler は HTTP リクエストを処理するコントローラーロジックを含む。
package handler

import (
	"errors"
	"net/http"

	"kintore-coach-go/internal/service"
	"kintore-coach-go/pkg/dify"
	"kintore-coach-go/pkg/log"
	"kintore-coach-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// CoachHandler は AI コーチ関連の API リクエストを処理する。
type CoachHandler struct {
	coachService service.CoachService
}

// NewCoachHandler は新しい CoachHandler を生成する。
func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// Advice は記録の要約に基づくアドバイスのリクエストを処理する。
func (h *CoachHandler) Advice(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)

	advice, err := h.coachService.Advice(c.Request.Context(), claims.Username)
	if errors.Is(err, dify.ErrNotConfigured) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AIコーチのAPIキーが設定されていません。"})
		return
	}
	if err != nil {
		log.Error("Advice: AI coach request failed", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "AIコーチからの応答に失敗しました。"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"advice": advice})
}

// ChatRequest はチャット API のリクエストボディを定義する。
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat は AI との対話リクエストを処理する。
func (h *CoachHandler) Chat(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	reply, err := h.coachService.Chat(c.Request.Context(), claims.UserID, claims.Username, req.Message)
	if errors.Is(err, service.ErrEmptyMessage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "メッセージを入力してください。"})
		return
	}
	if errors.Is(err, dify.ErrNotConfigured) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AIコーチのAPIキーが設定されていません。"})
		return
	}
	if err != nil {
		log.Error("Chat: AI chat request failed", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "AIへの問い合わせに失敗しました。"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":          reply.Answer,
		"conversation_id": reply.ConversationID,
	})
}
