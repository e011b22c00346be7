package rates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	apiclient "rateadmin/internal/client/api"
	"rateadmin/internal/client/auth"
	"rateadmin/internal/validation"
	"rateadmin/pkg/api"
)

// SortKey определяет колонку сортировки
type SortKey string

const (
	// SortKeyOperationID сортировка по ID операции
	SortKeyOperationID SortKey = "idOp"
	// SortKeyRate сортировка по значению тарифа
	SortKeyRate SortKey = "tasa"
)

// SortDirection определяет направление сортировки
type SortDirection int

const (
	// Ascending по возрастанию
	Ascending SortDirection = iota
	// Descending по убыванию
	Descending
)

// DisplayState определяет состояние табличного представления
type DisplayState int

const (
	// StateLoading данные еще не загружены
	StateLoading DisplayState = iota
	// StateReady список загружен
	StateReady
	// StateEmpty сервер сообщил, что записей нет; это не ошибка
	StateEmpty
	// StateFailed загрузка завершилась ошибкой
	StateFailed
)

// ErrSessionExpired возвращается после 401: токен уже удален,
// вызывающий код должен отправить пользователя на логин
var ErrSessionExpired = errors.New("session expired, please log in again")

// Engine владеет авторитетным списком тарифов и параметрами отображения.
// Список меняется только после подтвержденного ответа сервера: create и
// update перечитывают весь список, delete удаляет запись локально.
// Отображаемая проекция выводится из авторитетного списка на каждом
// чтении, отдельной отфильтрованной коллекции нет.
type Engine struct {
	apiClient apiclient.ClientAPI
	auth      auth.Service
	notify    NotifyFunc
	logger    *slog.Logger

	mu         sync.Mutex
	records    []api.Rate
	searchTerm string
	sortKey    SortKey // пустой ключ означает отсутствие сортировки
	sortDir    SortDirection
	state      DisplayState
	errMsg     string
}

// NewEngine создает движок табличного состояния
func NewEngine(apiClient apiclient.ClientAPI, authService auth.Service, notify NotifyFunc, logger *slog.Logger) *Engine {
	if notify == nil {
		notify = func(Notice) {}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		apiClient: apiClient,
		auth:      authService,
		notify:    notify,
		logger:    logger,
		state:     StateLoading,
	}
}

// Load перечитывает весь список с сервера. Кэша нет, каждый вызов
// делает полный запрос; вызывается при старте и после create/update.
// Сортировка при перечитывании сбрасывается, поисковый фильтр остается.
func (e *Engine) Load(ctx context.Context) error {
	token, err := e.auth.Token(ctx)
	if err != nil {
		// Без токена запрос не уйдет; представление должно показать
		// сбой, а не вечную загрузку
		e.mu.Lock()
		e.state = StateFailed
		e.errMsg = "session token unavailable, please log in"
		e.mu.Unlock()
		return fmt.Errorf("failed to get session token: %w", err)
	}

	fetched, err := e.apiClient.ListRates(ctx, token)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.sortKey = ""

	switch {
	case err == nil:
		e.records = fetched
		e.state = StateReady
		e.errMsg = ""
		return nil

	case apiclient.IsNoRatesFound(err):
		// Пустое хранилище показываем как пустое состояние, не как сбой
		e.records = nil
		e.state = StateEmpty
		e.errMsg = ""
		return nil

	case apiclient.IsUnauthorized(err):
		return e.sessionExpiredLocked(ctx)

	default:
		e.state = StateFailed
		e.errMsg = errorMessage(err, fallbackLoadFailed)
		e.logger.Error("failed to load rates", slog.Any("error", err))
		return err
	}
}

// SetSearchTerm устанавливает поисковый фильтр по ID операции.
// Допустима только числовая строка либо пустая, означающая отсутствие
// фильтра. Активная сортировка сбрасывается.
func (e *Engine) SetSearchTerm(term string) error {
	if !validation.IsNumericTerm(term) {
		return fmt.Errorf("search term must contain only digits")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.searchTerm = term
	e.sortKey = ""
	return nil
}

// SearchTerm возвращает активный поисковый фильтр
func (e *Engine) SearchTerm() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.searchTerm
}

// SortBy включает сортировку по колонке. Повторный вызов с тем же
// ключом переключает направление: возрастание, убывание, снова
// возрастание. Смена ключа всегда начинает с возрастания.
func (e *Engine) SortBy(key SortKey) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sortKey == key && e.sortDir == Ascending {
		e.sortDir = Descending
		return
	}
	e.sortKey = key
	e.sortDir = Ascending
}

// SortState возвращает активную сортировку; пустой ключ означает
// ее отсутствие
func (e *Engine) SortState() (SortKey, SortDirection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sortKey, e.sortDir
}

// Records возвращает копию авторитетного списка
func (e *Engine) Records() []api.Rate {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]api.Rate, len(e.records))
	copy(out, e.records)
	return out
}

// View возвращает отображаемую проекцию: фильтр по подстроке в
// десятичной записи ID операции, затем активная сортировка.
// Проекция вычисляется заново на каждом чтении.
func (e *Engine) View() []api.Rate {
	e.mu.Lock()
	defer e.mu.Unlock()

	view := make([]api.Rate, 0, len(e.records))
	for _, r := range e.records {
		if e.searchTerm == "" || strings.Contains(strconv.Itoa(r.IDOp), e.searchTerm) {
			view = append(view, r)
		}
	}

	switch e.sortKey {
	case SortKeyOperationID:
		sort.Slice(view, func(i, j int) bool {
			if e.sortDir == Ascending {
				return view[i].IDOp < view[j].IDOp
			}
			return view[i].IDOp > view[j].IDOp
		})
	case SortKeyRate:
		sort.Slice(view, func(i, j int) bool {
			if e.sortDir == Ascending {
				return view[i].Tasa < view[j].Tasa
			}
			return view[i].Tasa > view[j].Tasa
		})
	}

	return view
}

// State возвращает состояние представления и сообщение об ошибке
func (e *Engine) State() (DisplayState, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.errMsg
}

// Create проверяет запись и создает ее на сервере. Локальный список
// не меняется до подтверждения: успех перечитывает список целиком.
func (e *Engine) Create(ctx context.Context, idOp int, rate float64, email string) error {
	if err := validation.ValidateOperationID(idOp); err != nil {
		e.notify(Notice{Message: err.Error(), Severity: SeverityInfo})
		return err
	}
	if err := validation.ValidateRate(rate); err != nil {
		e.notify(Notice{Message: err.Error(), Severity: SeverityInfo})
		return err
	}
	if err := validation.ValidateEmail(email); err != nil {
		e.notify(Notice{Message: err.Error(), Severity: SeverityInfo})
		return err
	}

	token, err := e.auth.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to get session token: %w", err)
	}

	_, err = e.apiClient.CreateRate(ctx, token, api.CreateRateRequest{
		IDOp:  idOp,
		Tasa:  rate,
		Email: strings.TrimSpace(email),
	})
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			e.mu.Lock()
			defer e.mu.Unlock()
			return e.sessionExpiredLocked(ctx)
		}
		e.notify(Notice{Message: errorMessage(err, fallbackCreateFailed), Severity: SeverityError})
		return err
	}

	e.notify(Notice{Message: "rate created", Severity: SeveritySuccess})
	return e.Load(ctx)
}

// Update меняет тариф записи. Email пересылается без изменений.
// Совпадение нового значения со старым распознается по маркеру в
// ответе и дает информационный исход, не успех. Любой неошибочный
// исход перечитывает список.
func (e *Engine) Update(ctx context.Context, idOp int, rate float64, email string) error {
	if err := validation.ValidateRate(rate); err != nil {
		e.notify(Notice{Message: err.Error(), Severity: SeverityInfo})
		return err
	}

	token, err := e.auth.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to get session token: %w", err)
	}

	resp, err := e.apiClient.UpdateRate(ctx, token, idOp, api.UpdateRateRequest{
		Tasa:  rate,
		Email: email,
	})
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			e.mu.Lock()
			defer e.mu.Unlock()
			return e.sessionExpiredLocked(ctx)
		}
		e.notify(Notice{Message: errorMessage(err, fallbackUpdateFailed), Severity: SeverityError})
		return err
	}

	if api.IsRateUnchanged(resp.Message) {
		e.notify(Notice{Message: "entered rate equals the existing value", Severity: SeverityInfo})
	} else {
		e.notify(Notice{Message: "rate updated", Severity: SeveritySuccess})
	}

	return e.Load(ctx)
}

// Delete удаляет запись на сервере и, доверяя подтверждению, убирает
// ее из локального списка без перечитывания
func (e *Engine) Delete(ctx context.Context, idOp int) error {
	token, err := e.auth.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to get session token: %w", err)
	}

	if _, err := e.apiClient.DeleteRate(ctx, token, idOp); err != nil {
		if apiclient.IsUnauthorized(err) {
			e.mu.Lock()
			defer e.mu.Unlock()
			return e.sessionExpiredLocked(ctx)
		}
		e.notify(Notice{Message: errorMessage(err, fallbackDeleteFailed), Severity: SeverityError})
		return err
	}

	e.mu.Lock()
	kept := e.records[:0]
	for _, r := range e.records {
		if r.IDOp != idOp {
			kept = append(kept, r)
		}
	}
	e.records = kept
	if len(e.records) == 0 && e.state == StateReady {
		e.state = StateEmpty
	}
	e.mu.Unlock()

	e.notify(Notice{Message: "rate deleted", Severity: SeveritySuccess})
	return nil
}

// sessionExpiredLocked сбрасывает сессию после 401.
// Вызывается с удерживаемым e.mu.
func (e *Engine) sessionExpiredLocked(ctx context.Context) error {
	e.state = StateFailed
	e.errMsg = ErrSessionExpired.Error()
	if err := e.auth.ClearSession(ctx); err != nil {
		e.logger.Error("failed to clear session", slog.Any("error", err))
	}
	return ErrSessionExpired
}

// errorMessage извлекает detail сервера либо подставляет fallback
func errorMessage(err error, fallback string) string {
	if detail := apiclient.ErrorDetail(err); detail != "" {
		return detail
	}
	return fallback
}
