package forms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rateadmin/internal/client/rates"
	"rateadmin/internal/client/storage"
	"rateadmin/pkg/api"
)

// fakeClient реализует минимум ClientAPI для проверки форм
type fakeClient struct {
	rates       []api.Rate
	createCalls int
	updateCalls int
	lastCreate  api.CreateRateRequest
	lastUpdate  api.UpdateRateRequest
}

func (f *fakeClient) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	return &api.TokenResponse{AccessToken: "token"}, nil
}

func (f *fakeClient) ListRates(ctx context.Context, token string) ([]api.Rate, error) {
	return f.rates, nil
}

func (f *fakeClient) CreateRate(ctx context.Context, token string, req api.CreateRateRequest) (*api.MessageResponse, error) {
	f.createCalls++
	f.lastCreate = req
	f.rates = append(f.rates, api.Rate{IDOp: req.IDOp, Tasa: req.Tasa, Email: req.Email})
	return &api.MessageResponse{Message: "rate created"}, nil
}

func (f *fakeClient) UpdateRate(ctx context.Context, token string, idOp int, req api.UpdateRateRequest) (*api.UpdateRateResponse, error) {
	f.updateCalls++
	f.lastUpdate = req
	return &api.UpdateRateResponse{Message: "rate updated"}, nil
}

func (f *fakeClient) DeleteRate(ctx context.Context, token string, idOp int) (*api.MessageResponse, error) {
	return &api.MessageResponse{Message: "rate deleted"}, nil
}

type fakeAuth struct{}

func (fakeAuth) Login(ctx context.Context, username, password string) error { return nil }
func (fakeAuth) Logout(ctx context.Context) error                           { return nil }
func (fakeAuth) IsAuthenticated(ctx context.Context) (bool, error)          { return true, nil }
func (fakeAuth) ClearSession(ctx context.Context) error                     { return nil }
func (fakeAuth) Token(ctx context.Context) (string, error)                  { return "token", nil }

func (fakeAuth) Session(ctx context.Context) (*storage.SessionData, error) {
	return &storage.SessionData{Username: "admin", AccessToken: "token"}, nil
}

func newTestForms(t *testing.T) (*fakeClient, *rates.Engine) {
	t.Helper()
	client := &fakeClient{rates: []api.Rate{{IDOp: 205, Tasa: 3.25, Email: "b@x.com"}}}
	engine := rates.NewEngine(client, fakeAuth{}, nil, nil)
	require.NoError(t, engine.Load(context.Background()))
	return client, engine
}

func TestFilterOperationIDInput(t *testing.T) {
	tests := []struct {
		name string
		prev string
		next string
		want string
	}{
		{name: "digits accepted", prev: "10", next: "101", want: "101"},
		{name: "letter rejected", prev: "10", next: "10a", want: "10"},
		{name: "dot rejected", prev: "10", next: "10.", want: "10"},
		{name: "minus rejected", prev: "", next: "-", want: ""},
		{name: "clearing accepted", prev: "10", next: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterOperationIDInput(tt.prev, tt.next))
		})
	}
}

func TestFilterRateInput(t *testing.T) {
	tests := []struct {
		name string
		prev string
		next string
		want string
	}{
		{name: "digits accepted", prev: "1", next: "12", want: "12"},
		{name: "single dot accepted", prev: "12", next: "12.", want: "12."},
		{name: "decimals accepted", prev: "12.", next: "12.345", want: "12.345"},
		{name: "second dot rejected", prev: "12.3", next: "12.3.", want: "12.3"},
		{name: "letter rejected", prev: "12", next: "12x", want: "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterRateInput(tt.prev, tt.next))
		})
	}
}

func TestFilterEditRateInput(t *testing.T) {
	tests := []struct {
		name string
		prev string
		next string
		want string
	}{
		{name: "two decimals accepted", prev: "3.2", next: "3.25", want: "3.25"},
		{name: "third decimal rejected", prev: "3.25", next: "3.255", want: "3.25"},
		{name: "lone dot kept", prev: "", next: ".", want: "."},
		{name: "clearing accepted", prev: "3.25", next: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterEditRateInput(tt.prev, tt.next))
		})
	}
}

func TestFormatRateOnBlur(t *testing.T) {
	assert.Equal(t, "3.00", FormatRateOnBlur("3"))
	assert.Equal(t, "3.50", FormatRateOnBlur("3.5"))
	assert.Equal(t, "0.50", FormatRateOnBlur(".5"))
	assert.Equal(t, "", FormatRateOnBlur(""))
	// Непарсящийся ввод остается как есть
	assert.Equal(t, ".", FormatRateOnBlur("."))
}

func TestCreateForm_Submit(t *testing.T) {
	ctx := context.Background()
	client, engine := newTestForms(t)

	form := NewCreateForm(engine)
	form.SetOperationID("307")
	form.SetRate("7.5")
	form.SetEmail("c@x.com")

	err := form.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, client.createCalls)
	assert.Equal(t, 307, client.lastCreate.IDOp)
	assert.InDelta(t, 7.5, client.lastCreate.Tasa, 1e-9)
	assert.Equal(t, "c@x.com", client.lastCreate.Email)

	// Поля очищаются после успеха
	assert.Empty(t, form.OperationID())
	assert.Empty(t, form.Rate())
	assert.Empty(t, form.Email())
	assert.False(t, form.Submitting())
}

func TestCreateForm_Submit_ValidatesBeforeEngine(t *testing.T) {
	ctx := context.Background()
	client, engine := newTestForms(t)

	tests := []struct {
		name  string
		idOp  string
		rate  string
		email string
	}{
		{name: "bad email", idOp: "10", rate: "1.5", email: "nope"},
		{name: "empty rate", idOp: "10", rate: "", email: "a@x.com"},
		{name: "empty id", idOp: "", rate: "1.5", email: "a@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := NewCreateForm(engine)
			form.SetOperationID(tt.idOp)
			form.SetRate(tt.rate)
			form.SetEmail(tt.email)

			err := form.Submit(ctx)
			require.Error(t, err)
			assert.Zero(t, client.createCalls)
			assert.False(t, form.Submitting())
		})
	}
}

func TestCreateForm_InputFiltering(t *testing.T) {
	_, engine := newTestForms(t)
	form := NewCreateForm(engine)

	form.SetOperationID("30")
	form.SetOperationID("30x") // отбрасывается
	assert.Equal(t, "30", form.OperationID())

	form.SetRate("7.")
	form.SetRate("7.5")
	form.SetRate("7.5.") // вторая точка отбрасывается
	assert.Equal(t, "7.5", form.Rate())
}

func TestEditForm_PrefillsTwoDecimals(t *testing.T) {
	_, engine := newTestForms(t)

	form := NewEditForm(engine, api.Rate{IDOp: 205, Tasa: 3.25, Email: "b@x.com"})
	assert.Equal(t, 205, form.OperationID())
	assert.Equal(t, "3.25", form.Rate())
	assert.Equal(t, "b@x.com", form.Email())

	form2 := NewEditForm(engine, api.Rate{IDOp: 101, Tasa: 5, Email: "a@x.com"})
	assert.Equal(t, "5.00", form2.Rate())
}

func TestEditForm_Submit_CarriesEmailThrough(t *testing.T) {
	ctx := context.Background()
	client, engine := newTestForms(t)

	form := NewEditForm(engine, api.Rate{IDOp: 205, Tasa: 3.25, Email: "b@x.com"})
	form.SetRate("4.75")

	err := form.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, client.updateCalls)
	assert.InDelta(t, 4.75, client.lastUpdate.Tasa, 1e-9)
	assert.Equal(t, "b@x.com", client.lastUpdate.Email)
	assert.False(t, form.Submitting())
}

func TestEditForm_Blur(t *testing.T) {
	_, engine := newTestForms(t)

	form := NewEditForm(engine, api.Rate{IDOp: 205, Tasa: 3.25, Email: "b@x.com"})
	form.SetRate("4.7")
	form.Blur()
	assert.Equal(t, "4.70", form.Rate())
}

func TestEditForm_Submit_RejectsEmptyRate(t *testing.T) {
	ctx := context.Background()
	client, engine := newTestForms(t)

	form := NewEditForm(engine, api.Rate{IDOp: 205, Tasa: 3.25, Email: "b@x.com"})
	form.SetRate("")

	err := form.Submit(ctx)
	require.Error(t, err)
	assert.Zero(t, client.updateCalls)
}
