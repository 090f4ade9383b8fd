// Package envelope はすべてのルートが返す標準レスポンス {mensagem, objeto?} を組み立てます。
// ステータスコードとメッセージは常に一致させ、エラー系ビルダーはGinのハンドラーチェーンを中断します。
package envelope

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyflow_backend/internal/platform/logger"
)

// Response is the body of every handled request.
type Response struct {
	Mensagem string `json:"mensagem"`
	Objeto   any    `json:"objeto,omitempty"`
}

// MsgInvalidJSON はリクエストボディがJSONとして解釈できない場合のメッセージです。
const MsgInvalidJSON = "Formato JSON inválido."

var defaultMessages = map[int]string{
	http.StatusOK:                  "Operação realizada com sucesso.",
	http.StatusCreated:             "Cadastro realizado com sucesso.",
	http.StatusBadRequest:          "Requisição inválida.",
	http.StatusUnauthorized:        "Não tem autorização para fazer isso.",
	http.StatusForbidden:           "Solicitação rejeitada!",
	http.StatusNotFound:            "Não encontrado.",
	http.StatusTooManyRequests:     "Muitas requisições. Tente novamente mais tarde.",
	http.StatusInternalServerError: "Erro ao processar a requisição. Provavelmente a culpa não foi sua. Acione o administrador!",
	http.StatusServiceUnavailable:  "Recurso temporariamente indisponível. Interrompido para manutenção...",
}

// DefaultMessage returns the fallback message for status, or its HTTP status text.
func DefaultMessage(status int) string {
	if msg, ok := defaultMessages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}

// MissingFieldMessage は必須フィールドが欠けている場合のメッセージを返します。
func MissingFieldMessage(field string) string {
	return fmt.Sprintf("Campo %q não recebido pela requisição.", field)
}

// InvalidFieldMessage はフィールドの値が不正な場合のメッセージを返します。
func InvalidFieldMessage(field string) string {
	return fmt.Sprintf("Campo %q preenchido de forma incorreta.", field)
}

// Write sends one envelope. An empty msg is replaced by the status default.
// Statuses >= 400 abort the remaining handlers.
func Write(c *gin.Context, status int, msg string, obj any) {
	if msg == "" {
		msg = DefaultMessage(status)
	}
	body := Response{Mensagem: msg, Objeto: obj}
	if status >= http.StatusBadRequest {
		c.AbortWithStatusJSON(status, body)
		return
	}
	c.JSON(status, body)
}

// OK は200を返します。
func OK(c *gin.Context, msg string, obj any) {
	Write(c, http.StatusOK, msg, obj)
}

// Created は201を返します。
func Created(c *gin.Context, msg string, obj any) {
	Write(c, http.StatusCreated, msg, obj)
}

// BadRequest は任意のメッセージで400を返します。
func BadRequest(c *gin.Context, msg string) {
	Write(c, http.StatusBadRequest, msg, nil)
}

// MissingField は欠落したフィールド名を含む400を返します。
func MissingField(c *gin.Context, field string) {
	Write(c, http.StatusBadRequest, MissingFieldMessage(field), nil)
}

// InvalidField は不正なフィールド名を含む400を返します。
func InvalidField(c *gin.Context, field string) {
	Write(c, http.StatusBadRequest, InvalidFieldMessage(field), nil)
}

func Unauthorized(c *gin.Context, msg string) {
	Write(c, http.StatusUnauthorized, msg, nil)
}

func Forbidden(c *gin.Context, msg string) {
	Write(c, http.StatusForbidden, msg, nil)
}

func NotFound(c *gin.Context, msg string) {
	Write(c, http.StatusNotFound, msg, nil)
}

func TooManyRequests(c *gin.Context, msg string) {
	Write(c, http.StatusTooManyRequests, msg, nil)
}

func Unavailable(c *gin.Context, msg string) {
	Write(c, http.StatusServiceUnavailable, msg, nil)
}

// InternalError logs err with the request logger and sends the generic 500 body.
// The error text never reaches the client.
func InternalError(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Error("request failed",
		"error", err,
		"route", c.FullPath(),
	)
	Write(c, http.StatusInternalServerError, "", nil)
}
