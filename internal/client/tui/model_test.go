package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rateadmin/internal/client/rates"
	"rateadmin/internal/client/storage"
	"rateadmin/pkg/api"
)

type stubClient struct {
	rates   []api.Rate
	deleted []int
}

func (s *stubClient) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	return &api.TokenResponse{AccessToken: "token"}, nil
}

func (s *stubClient) ListRates(ctx context.Context, accessToken string) ([]api.Rate, error) {
	return s.rates, nil
}

func (s *stubClient) CreateRate(ctx context.Context, accessToken string, req api.CreateRateRequest) (*api.MessageResponse, error) {
	s.rates = append(s.rates, api.Rate{IDOp: req.IDOp, Tasa: req.Tasa, Email: req.Email})
	return &api.MessageResponse{Message: "rate created"}, nil
}

func (s *stubClient) UpdateRate(ctx context.Context, accessToken string, idOp int, req api.UpdateRateRequest) (*api.UpdateRateResponse, error) {
	return &api.UpdateRateResponse{Message: "rate updated"}, nil
}

func (s *stubClient) DeleteRate(ctx context.Context, accessToken string, idOp int) (*api.MessageResponse, error) {
	s.deleted = append(s.deleted, idOp)
	kept := s.rates[:0]
	for _, r := range s.rates {
		if r.IDOp != idOp {
			kept = append(kept, r)
		}
	}
	s.rates = kept
	return &api.MessageResponse{Message: "rate deleted"}, nil
}

type stubAuth struct{}

func (stubAuth) Login(ctx context.Context, username, password string) error { return nil }
func (stubAuth) Logout(ctx context.Context) error                          { return nil }
func (stubAuth) IsAuthenticated(ctx context.Context) (bool, error)         { return true, nil }
func (stubAuth) Session(ctx context.Context) (*storage.SessionData, error) {
	return &storage.SessionData{Username: "admin", AccessToken: "token"}, nil
}
func (stubAuth) Token(ctx context.Context) (string, error) { return "token", nil }
func (stubAuth) ClearSession(ctx context.Context) error    { return nil }

func newTestModel(t *testing.T, initial []api.Rate) (Model, *stubClient) {
	t.Helper()
	client := &stubClient{rates: initial}
	notices := make(chan rates.Notice, 16)
	engine := rates.NewEngine(client, stubAuth{}, func(n rates.Notice) {
		select {
		case notices <- n:
		default:
		}
	}, nil)
	m := newModel(context.Background(), engine, notices)
	require.NoError(t, engine.Load(context.Background()))
	m.refreshRows()
	return m, client
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func updateModel(t *testing.T, m tea.Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestSearchFiltersNonDigits(t *testing.T) {
	m, _ := newTestModel(t, []api.Rate{
		{IDOp: 101, Tasa: 9.5, Email: "a@example.com"},
		{IDOp: 205, Tasa: 10, Email: "b@example.com"},
	})

	m, _ = updateModel(t, m, keyMsg("/"))
	assert.True(t, m.searchFocused)

	m, _ = updateModel(t, m, keyMsg("2"))
	m, _ = updateModel(t, m, keyMsg("x"))
	m, _ = updateModel(t, m, keyMsg("0"))

	// Буква отброшена, поиск по "20"
	assert.Equal(t, "20", m.search.Value())
	assert.Equal(t, "20", m.engine.SearchTerm())
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "205", m.table.Rows()[0][0])
}

func TestSortHotkeyToggles(t *testing.T) {
	m, _ := newTestModel(t, []api.Rate{
		{IDOp: 101, Tasa: 10, Email: "a@example.com"},
		{IDOp: 205, Tasa: 9.5, Email: "b@example.com"},
	})

	m, _ = updateModel(t, m, keyMsg("t"))
	assert.Equal(t, "205", m.table.Rows()[0][0], "ascending by rate first press")

	m, _ = updateModel(t, m, keyMsg("t"))
	assert.Equal(t, "101", m.table.Rows()[0][0], "descending on second press")
}

func TestNoticeBecomesToastAndExpires(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, cmd := updateModel(t, m, noticeMsg{notice: rates.Notice{
		Message:  "rate created",
		Severity: rates.SeveritySuccess,
	}})
	require.NotNil(t, m.toast)
	assert.Equal(t, "rate created", m.toast.Message)
	require.NotNil(t, cmd)

	staleSeq := m.toastSeq
	m, _ = updateModel(t, m, noticeMsg{notice: rates.Notice{Message: "rate updated"}})

	// Таймер первого тоста не гасит второй
	m, _ = updateModel(t, m, toastTimeoutMsg{seq: staleSeq})
	require.NotNil(t, m.toast)
	assert.Equal(t, "rate updated", m.toast.Message)

	m, _ = updateModel(t, m, toastTimeoutMsg{seq: m.toastSeq})
	assert.Nil(t, m.toast)
}

func TestDeleteConfirmFlow(t *testing.T) {
	m, client := newTestModel(t, []api.Rate{{IDOp: 1052, Tasa: 9.5, Email: "a@example.com"}})

	m, _ = updateModel(t, m, keyMsg("d"))
	assert.Equal(t, modeDelete, m.mode)
	assert.Equal(t, 1052, m.deleteID)

	m, cmd := updateModel(t, m, keyMsg("y"))
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	m, _ = updateModel(t, m, cmd())
	assert.False(t, m.busy)
	assert.Equal(t, []int{1052}, client.deleted)
	assert.Empty(t, m.table.Rows())
}

func TestDeleteCancelled(t *testing.T) {
	m, client := newTestModel(t, []api.Rate{{IDOp: 1052, Tasa: 9.5, Email: "a@example.com"}})

	m, _ = updateModel(t, m, keyMsg("d"))
	m, _ = updateModel(t, m, keyMsg("n"))

	assert.Equal(t, modeTable, m.mode)
	assert.Empty(t, client.deleted)
	assert.Len(t, m.table.Rows(), 1)
}

func TestCreateFormFiltersInput(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = updateModel(t, m, keyMsg("a"))
	require.Equal(t, modeCreate, m.mode)

	m, _ = updateModel(t, m, keyMsg("1"))
	m, _ = updateModel(t, m, keyMsg("a"))
	m, _ = updateModel(t, m, keyMsg("5"))
	assert.Equal(t, "15", m.inputs[fieldOperationID].Value())

	m, _ = updateModel(t, m, keyMsg("enter"))
	m, _ = updateModel(t, m, keyMsg("9"))
	m, _ = updateModel(t, m, keyMsg("."))
	m, _ = updateModel(t, m, keyMsg("."))
	m, _ = updateModel(t, m, keyMsg("5"))
	// Вторая точка отброшена
	assert.Equal(t, "9.5", m.inputs[fieldRate].Value())
}

func TestCreateSubmitReloadsTable(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = updateModel(t, m, keyMsg("a"))
	m.createForm.SetOperationID("1052")
	m.createForm.SetRate("9.75")
	m.createForm.SetEmail("ops@example.com")

	// Переходим на последнее поле и отправляем
	m.focus = fieldEmail
	m, cmd := updateModel(t, m, keyMsg("enter"))
	require.NotNil(t, cmd)
	require.True(t, m.busy)

	m, _ = updateModel(t, m, cmd())
	assert.Equal(t, modeTable, m.mode)
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "1052", m.table.Rows()[0][0])
	assert.Equal(t, "9.75", m.table.Rows()[0][1])
}

func TestBusyBlocksInput(t *testing.T) {
	m, _ := newTestModel(t, []api.Rate{{IDOp: 1052, Tasa: 9.5, Email: "a@example.com"}})
	m.busy = true

	m, cmd := updateModel(t, m, keyMsg("d"))
	assert.Nil(t, cmd)
	assert.Equal(t, modeTable, m.mode)
}

func TestSessionExpiredQuits(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, cmd := updateModel(t, m, loadedMsg{err: rates.ErrSessionExpired})
	assert.True(t, m.expired)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
