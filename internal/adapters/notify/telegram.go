package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phenrril/munek/internal/domain"
)

const (
	telegramAPI     = "https://api.telegram.org"
	telegramTimeout = 10 * time.Second
)

// Telegram manda el resumen de la orden a uno o más chats.
type Telegram struct {
	Token   string
	ChatIDs []string
	BaseURL string
	HTTP    *http.Client
}

// NewTelegram acepta ids separados por coma; devuelve nil si falta algo.
func NewTelegram(token, rawIDs string) *Telegram {
	ids := []string{}
	for _, part := range strings.Split(rawIDs, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	if strings.TrimSpace(token) == "" || len(ids) == 0 {
		return nil
	}
	return &Telegram{Token: token, ChatIDs: ids, BaseURL: telegramAPI, HTTP: &http.Client{Timeout: telegramTimeout}}
}

// OrderCreated alcanza con que un chat reciba el mensaje; sólo falla si
// ninguno lo recibió.
func (t *Telegram) OrderCreated(ctx context.Context, o *domain.Order) error {
	apiURL := strings.TrimRight(t.BaseURL, "/") + "/bot" + t.Token + "/sendMessage"
	client := t.HTTP
	if client == nil {
		client = &http.Client{Timeout: telegramTimeout}
	}
	delivered := false
	var lastErr error
	for _, id := range t.ChatIDs {
		form := url.Values{}
		form.Set("chat_id", id)
		form.Set("text", OrderMessage(o))
		form.Set("disable_web_page_preview", "1")
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
			lastErr = fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
		} else {
			delivered = true
		}
		resp.Body.Close()
	}
	if delivered {
		return nil
	}
	return lastErr
}

// Fallback prueba cada canal en orden y se queda con el primero que funciona.
type Fallback []domain.OrderNotifier

func (f Fallback) OrderCreated(ctx context.Context, o *domain.Order) error {
	var errs []error
	for _, n := range f {
		err := n.OrderCreated(ctx, o)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
