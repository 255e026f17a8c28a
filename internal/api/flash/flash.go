// Package flash implements the one-shot status messages that accompany
// redirects. Messages travel in a short-lived cookie: Set writes it on the
// redirecting response, Pop reads and clears it on the next page render.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const cookieName = "market_flash"

const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelDanger  = "danger"
)

// Message is a single status notice shown once on the next rendered page.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// Set appends a message to the flash cookie.
func Set(c echo.Context, level, text string) {
	messages := read(c)
	messages = append(messages, Message{Level: level, Text: text})
	write(c, messages, time.Now().Add(5*time.Minute))
}

// Pop returns all pending messages and clears the cookie.
func Pop(c echo.Context) []Message {
	messages := read(c)
	if len(messages) > 0 {
		write(c, nil, time.Unix(0, 0))
	}
	return messages
}

func read(c echo.Context) []Message {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var messages []Message
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil
	}
	return messages
}

func write(c echo.Context, messages []Message, expires time.Time) {
	value := ""
	if len(messages) > 0 {
		raw, err := json.Marshal(messages)
		if err != nil {
			return
		}
		value = base64.RawURLEncoding.EncodeToString(raw)
	}

	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
