// Package handler は HTTP リクエストを処理するコントローラーロジックを含む。
package handler

import (
	"errors"
	"net/http"

	"kintore-coach-go/internal/form"
	"kintore-coach-go/internal/service"
	"kintore-coach-go/pkg/log"
	"kintore-coach-go/pkg/sheets"
	"kintore-coach-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// RecordHandler はトレーニング記録の API リクエストを処理する。
type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler は新しい RecordHandler を生成する。
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// Create は記録の送信を処理する。
// 検証エラー時は項目別メッセージと送信値をそのまま返し、画面側で入力を復元する。
func (h *RecordHandler) Create(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)

	var f form.RecordForm
	if err := c.ShouldBind(&f); err != nil {
		log.Warnf("Create: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	rec, fieldErrs := f.Validate()
	if fieldErrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": fieldErrs,
			"values": f,
		})
		return
	}

	err := h.recordService.Submit(c.Request.Context(), claims.Username, rec)
	if errors.Is(err, sheets.ErrNotConfigured) {
		// 設定不足は失敗としてではなく案内として返す
		c.JSON(http.StatusOK, gin.H{
			"warning": "保存先のURLが設定されていません。設定を確認してください。",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "保存に失敗しました。もう一度お試しください。",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "記録を保存しました！",
	})
}

// History は記録一覧の取得を処理する。
// 取得に失敗しても一覧は空のまま返し、失敗の種類に応じたメッセージを添える。
func (h *RecordHandler) History(c *gin.Context) {
	claims := c.MustGet("claims").(*token.CustomClaims)

	records, err := h.recordService.History(c.Request.Context(), claims.Username)
	resp := gin.H{"records": records}
	if err != nil {
		if errors.Is(err, sheets.ErrBadPayload) {
			resp["error"] = "記録データの解析に失敗しました。"
		} else {
			resp["error"] = "記録の取得に失敗しました。"
		}
	}

	c.JSON(http.StatusOK, resp)
}
