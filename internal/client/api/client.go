package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"rateadmin/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI определяет интерфейс HTTP шлюза к серверу тарифов.
// Токен передается явно в каждый аутентифицированный вызов,
// глобального состояния сессии у шлюза нет.
type ClientAPI interface {
	// Login выполняет аутентификацию, токен не прикладывается
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)

	// ListRates возвращает полный список тарифов
	ListRates(ctx context.Context, accessToken string) ([]api.Rate, error)

	// CreateRate создает новую запись тарифа
	CreateRate(ctx context.Context, accessToken string, req api.CreateRateRequest) (*api.MessageResponse, error)

	// UpdateRate изменяет тариф существующей записи
	UpdateRate(ctx context.Context, accessToken string, idOp int, req api.UpdateRateRequest) (*api.UpdateRateResponse, error)

	// DeleteRate удаляет запись по ID операции
	DeleteRate(ctx context.Context, accessToken string, idOp int) (*api.MessageResponse, error)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Compile-time check that Client implements ClientAPI
var _ ClientAPI = (*Client)(nil)

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/login", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// ListRates возвращает полный список тарифов
func (c *Client) ListRates(ctx context.Context, accessToken string) ([]api.Rate, error) {
	var rates []api.Rate
	err := c.doRequest(ctx, http.MethodGet, "/api/tasas", accessToken, nil, &rates)
	if err != nil {
		return nil, fmt.Errorf("list rates request failed: %w", err)
	}
	return rates, nil
}

// CreateRate создает новую запись тарифа
func (c *Client) CreateRate(ctx context.Context, accessToken string, req api.CreateRateRequest) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/tasas/create", accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("create rate request failed: %w", err)
	}
	return &resp, nil
}

// UpdateRate изменяет тариф записи с указанным ID операции
func (c *Client) UpdateRate(ctx context.Context, accessToken string, idOp int, req api.UpdateRateRequest) (*api.UpdateRateResponse, error) {
	var resp api.UpdateRateResponse
	path := fmt.Sprintf("/api/tasas/%d", idOp)
	err := c.doRequest(ctx, http.MethodPost, path, accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("update rate request failed: %w", err)
	}
	return &resp, nil
}

// DeleteRate удаляет запись по ID операции
func (c *Client) DeleteRate(ctx context.Context, accessToken string, idOp int) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	path := fmt.Sprintf("/api/tasas/%d", idOp)
	err := c.doRequest(ctx, http.MethodDelete, path, accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("delete rate request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
// Непустой accessToken уходит в заголовок Authorization: Bearer
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Не-2xx превращаем в типизированную ошибку, чтобы вызывающий код
	// мог различить 401 и показать detail без изменений
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Detail != "" {
			apiErr.Detail = errResp.Detail
		} else {
			apiErr.Detail = string(respBody)
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
