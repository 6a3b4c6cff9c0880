package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const notifyPath = "/notify"

// HTTPDispatcher отправляет уведомление POST-запросом в notification-сервис.
type HTTPDispatcher struct {
	endpoint string
	client   *http.Client
}

// NewHTTPDispatcher создает диспетчер для базового URL сервиса уведомлений.
// client == nil заменяется на http.Client без собственного таймаута: срок задает контекст.
func NewHTTPDispatcher(baseURL string, client *http.Client) *HTTPDispatcher {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPDispatcher{
		endpoint: strings.TrimRight(baseURL, "/") + notifyPath,
		client:   client,
	}
}

// Dispatch делает ровно одну попытку. Любой ответ кроме 2xx считается недоставкой.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, event domain.NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", domain.ErrNotificationUndeliverable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrNotificationUndeliverable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotificationUndeliverable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", domain.ErrNotificationUndeliverable, resp.StatusCode)
	}
	return nil
}

// Endpoint возвращает полный адрес /notify.
func (d *HTTPDispatcher) Endpoint() string {
	return d.endpoint
}

var _ domain.NotificationDispatcher = (*HTTPDispatcher)(nil)
