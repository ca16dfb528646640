package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// One-shot feedback messages carried across a redirect in a short-lived
// cookie, consumed by the next page render.

const cookieName = "flash"

const (
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

func Set(ctx *gin.Context, level, text string) {
	payload, err := json.Marshal(Message{Level: level, Text: text})

	if err != nil {
		return
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending message, if any, and clears the cookie.
func Pop(ctx *gin.Context) *Message {
	raw, err := ctx.Cookie(cookieName)

	if err != nil || raw == "" {
		return nil
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, err := base64.RawURLEncoding.DecodeString(raw)

	if err != nil {
		return nil
	}

	var msg Message

	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil
	}

	return &msg
}
