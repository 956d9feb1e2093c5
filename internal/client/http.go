// Package client содержит HTTP клиенты внешних сервисов: сервиса данных лиг
// и сервиса генерации составов.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aidar/lineup-service/internal/domain"
)

// maxResponseSize ограничивает размер ответа внешнего сервиса
const maxResponseSize = 8 << 20

// NewHTTPClient создает HTTP клиент с ограничением времени на каждый этап запроса
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: timeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// postJSON отправляет body в JSON и возвращает тело ответа.
// Сетевые ошибки и 5xx - domain.ErrServiceUnavailable, 4xx и не-JSON ответ - domain.ErrServiceRejected
func postJSON(ctx context.Context, httpClient *http.Client, url string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: POST %s: %v", domain.ErrServiceUnavailable, endpointPath(url), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrServiceUnavailable, err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: POST %s: status %d", domain.ErrServiceUnavailable, endpointPath(url), resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("%w: POST %s: status %d", domain.ErrServiceRejected, endpointPath(url), resp.StatusCode)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: POST %s: response is not JSON", domain.ErrServiceRejected, endpointPath(url))
	}

	return data, nil
}

// endpointPath отрезает схему и хост, чтобы не писать адреса сервисов в ошибки клиенту
func endpointPath(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		rest := url[i+3:]
		if j := strings.Index(rest, "/"); j >= 0 {
			return rest[j:]
		}
		return "/"
	}
	return url
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
