package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	apiclient "rateadmin/internal/client/api"
	"rateadmin/internal/client/storage"
	"rateadmin/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service управляет жизненным циклом сессии: единственный владелец
// сохраненного токена. Устанавливается при логине, очищается при
// логауте или по 401 от сервера.
type Service interface {
	// Login обменивает учетные данные на токен и сохраняет сессию
	Login(ctx context.Context, username, password string) error

	// Logout удаляет сохраненную сессию
	Logout(ctx context.Context) error

	// IsAuthenticated проверяет наличие сессии, срок действия токена
	// клиентом не проверяется
	IsAuthenticated(ctx context.Context) (bool, error)

	// Session возвращает сохраненную сессию
	Session(ctx context.Context) (*storage.SessionData, error)

	// Token возвращает сохраненный access token
	Token(ctx context.Context) (string, error)

	// ClearSession удаляет сессию после 401, идемпотентен
	ClearSession(ctx context.Context) error
}

// Compile-time check that service implements Service
var _ Service = (*service)(nil)

type service struct {
	apiClient apiclient.ClientAPI
	sessions  storage.SessionStorage
}

// NewService создает новый сервис авторизации
func NewService(apiClient apiclient.ClientAPI, sessions storage.SessionStorage) Service {
	return &service{
		apiClient: apiClient,
		sessions:  sessions,
	}
}

// Login обменивает учетные данные на токен и сохраняет сессию
func (s *service) Login(ctx context.Context, username, password string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	resp, err := s.apiClient.Login(ctx, api.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return err
	}

	session := &storage.SessionData{
		Username:    username,
		AccessToken: resp.AccessToken,
		CreatedAt:   time.Now(),
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Logout удаляет сохраненную сессию
func (s *service) Logout(ctx context.Context) error {
	if err := s.sessions.DeleteSession(ctx); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return fmt.Errorf("not logged in")
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// IsAuthenticated проверяет наличие сессии
func (s *service) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.sessions.IsAuthenticated(ctx)
}

// Session возвращает сохраненную сессию
func (s *service) Session(ctx context.Context) (*storage.SessionData, error) {
	return s.sessions.GetSession(ctx)
}

// Token возвращает сохраненный access token
func (s *service) Token(ctx context.Context) (string, error) {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		return "", err
	}
	return session.AccessToken, nil
}

// ClearSession удаляет сессию после 401.
// Отсутствие сессии не ошибка: сброс может прийти из нескольких мест.
func (s *service) ClearSession(ctx context.Context) error {
	err := s.sessions.DeleteSession(ctx)
	if err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
