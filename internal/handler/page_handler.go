// Package handler は HTTP リクエストを処理するコントローラーロジックを含む。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler は画面（HTML ページ）のリクエストを処理する。
// ページ自体は公開で、データは各ページの JS が bearer token 付きで API から取得する。
type PageHandler struct{}

// NewPageHandler は新しい PageHandler を生成する。
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Login はログイン画面を表示する。
func (h *PageHandler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"title": "ログイン"})
}

// Coach は AI コーチ画面（トップ）を表示する。
func (h *PageHandler) Coach(c *gin.Context) {
	c.HTML(http.StatusOK, "coach.html", gin.H{"title": "AIコーチ"})
}

// Chat はチャット画面を表示する。
func (h *PageHandler) Chat(c *gin.Context) {
	c.HTML(http.StatusOK, "chat.html", gin.H{"title": "チャット"})
}

// Record は記録入力画面を表示する。
func (h *PageHandler) Record(c *gin.Context) {
	c.HTML(http.StatusOK, "record.html", gin.H{"title": "記録する"})
}

// History は履歴画面を表示する。
func (h *PageHandler) History(c *gin.Context) {
	c.HTML(http.StatusOK, "history.html", gin.H{"title": "履歴"})
}
