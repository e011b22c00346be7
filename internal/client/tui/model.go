package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rateadmin/internal/client/forms"
	"rateadmin/internal/client/rates"
	"rateadmin/internal/validation"
)

// toastDuration время показа уведомления
const toastDuration = 3 * time.Second

type mode int

const (
	modeTable mode = iota
	modeCreate
	modeEdit
	modeDelete
)

// Индексы полей формы создания
const (
	fieldOperationID = iota
	fieldRate
	fieldEmail
)

type loadedMsg struct{ err error }

type mutationMsg struct{ err error }

type noticeMsg struct{ notice rates.Notice }

type toastTimeoutMsg struct{ seq int }

// Model отображает авторитетное состояние движка тарифов.
// Собственных данных не хранит: строки таблицы пересобираются из
// engine.View() после каждого изменения.
type Model struct {
	ctx     context.Context
	engine  *rates.Engine
	notices <-chan rates.Notice

	table         table.Model
	search        textinput.Model
	searchFocused bool

	mode       mode
	createForm *forms.CreateForm
	editForm   *forms.EditForm
	inputs     []textinput.Model
	focus      int
	deleteID   int

	// busy блокирует ввод, пока мутация в полете
	busy     bool
	toast    *rates.Notice
	toastSeq int

	expired bool
	styles  Styles
	width   int
}

func newModel(ctx context.Context, engine *rates.Engine, notices <-chan rates.Notice) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Operation ID", Width: 14},
			{Title: "Rate", Width: 10},
			{Title: "Email", Width: 32},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
		table.WithStyles(tableStyles()),
	)

	search := textinput.New()
	search.Placeholder = "Search by operation ID..."
	search.CharLimit = 20
	search.Width = 30

	return Model{
		ctx:     ctx,
		engine:  engine,
		notices: notices,
		table:   t,
		search:  search,
		styles:  DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.waitNotice())
}

func (m Model) loadCmd() tea.Cmd {
	engine, ctx := m.engine, m.ctx
	return func() tea.Msg {
		return loadedMsg{err: engine.Load(ctx)}
	}
}

func (m Model) waitNotice() tea.Cmd {
	notices := m.notices
	return func() tea.Msg {
		n, ok := <-notices
		if !ok {
			return nil
		}
		return noticeMsg{notice: n}
	}
}

func (m *Model) showToast(n rates.Notice) tea.Cmd {
	m.toast = &n
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastTimeoutMsg{seq: seq}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case noticeMsg:
		cmd := m.showToast(msg.notice)
		return m, tea.Batch(cmd, m.waitNotice())

	case toastTimeoutMsg:
		// Новое уведомление перезапускает таймер, гасим только свое
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case loadedMsg:
		m.busy = false
		if errors.Is(msg.err, rates.ErrSessionExpired) {
			m.expired = true
			return m, tea.Quit
		}
		m.refreshRows()
		return m, nil

	case mutationMsg:
		m.busy = false
		if errors.Is(msg.err, rates.ErrSessionExpired) {
			m.expired = true
			return m, tea.Quit
		}
		if msg.err != nil {
			// Остаемся в форме, чтобы пользователь исправил ввод
			return m, m.showToast(rates.Notice{
				Message:  msg.err.Error(),
				Severity: rates.SeverityError,
			})
		}
		m.mode = modeTable
		m.createForm = nil
		m.editForm = nil
		m.inputs = nil
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch m.mode {
		case modeCreate:
			return m.updateCreate(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeDelete:
			return m.updateDelete(msg)
		default:
			return m.updateTable(msg)
		}
	}

	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchFocused {
		switch msg.String() {
		case "esc", "enter":
			m.searchFocused = false
			m.search.Blur()
			return m, nil
		default:
			prev := m.search.Value()
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			// Нецифровые символы отбрасываются на каждом нажатии
			filtered := forms.FilterOperationIDInput(prev, m.search.Value())
			m.search.SetValue(filtered)
			if err := m.engine.SetSearchTerm(filtered); err == nil {
				m.refreshRows()
			}
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searchFocused = true
		m.search.Focus()
		return m, nil
	case "i":
		m.engine.SortBy(rates.SortKeyOperationID)
		m.refreshRows()
		return m, nil
	case "t":
		m.engine.SortBy(rates.SortKeyRate)
		m.refreshRows()
		return m, nil
	case "r":
		m.busy = true
		return m, m.loadCmd()
	case "a":
		return m.openCreate()
	case "e", "enter":
		return m.openEdit()
	case "d":
		if idOp, ok := m.selectedID(); ok {
			m.deleteID = idOp
			m.mode = modeDelete
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) openCreate() (tea.Model, tea.Cmd) {
	m.createForm = forms.NewCreateForm(m.engine)

	idOp := textinput.New()
	idOp.Placeholder = "1052"
	idOp.CharLimit = 20
	idOp.Focus()

	rate := textinput.New()
	rate.Placeholder = "9.75"
	rate.CharLimit = 20

	email := textinput.New()
	email.Placeholder = "ops@example.com"
	email.CharLimit = 64

	m.inputs = []textinput.Model{idOp, rate, email}
	m.focus = fieldOperationID
	m.mode = modeCreate
	return m, textinput.Blink
}

func (m Model) openEdit() (tea.Model, tea.Cmd) {
	idOp, ok := m.selectedID()
	if !ok {
		return m, nil
	}
	var found bool
	for _, r := range m.engine.Records() {
		if r.IDOp == idOp {
			m.editForm = forms.NewEditForm(m.engine, r)
			found = true
			break
		}
	}
	if !found {
		return m, nil
	}

	rate := textinput.New()
	rate.CharLimit = 20
	rate.SetValue(m.editForm.Rate())
	rate.Focus()

	m.inputs = []textinput.Model{rate}
	m.focus = 0
	m.mode = modeEdit
	return m, textinput.Blink
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeTable
		m.createForm = nil
		m.inputs = nil
		return m, nil
	case "tab", "down":
		return m.focusField((m.focus + 1) % len(m.inputs))
	case "shift+tab", "up":
		return m.focusField((m.focus + len(m.inputs) - 1) % len(m.inputs))
	case "enter":
		if m.focus < fieldEmail {
			return m.focusField(m.focus + 1)
		}
		form := m.createForm
		ctx := m.ctx
		m.busy = true
		return m, func() tea.Msg {
			return mutationMsg{err: form.Submit(ctx)}
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	// Фильтры формы применяются на каждом нажатии
	value := m.inputs[m.focus].Value()
	switch m.focus {
	case fieldOperationID:
		m.createForm.SetOperationID(value)
		m.inputs[m.focus].SetValue(m.createForm.OperationID())
	case fieldRate:
		m.createForm.SetRate(value)
		m.inputs[m.focus].SetValue(m.createForm.Rate())
	case fieldEmail:
		m.createForm.SetEmail(value)
	}
	return m, cmd
}

func (m Model) focusField(next int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = next
	return m, m.inputs[m.focus].Focus()
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeTable
		m.editForm = nil
		m.inputs = nil
		return m, nil
	case "enter":
		m.editForm.Blur()
		m.inputs[0].SetValue(m.editForm.Rate())
		form := m.editForm
		ctx := m.ctx
		m.busy = true
		return m, func() tea.Msg {
			return mutationMsg{err: form.Submit(ctx)}
		}
	}

	var cmd tea.Cmd
	m.inputs[0], cmd = m.inputs[0].Update(msg)
	m.editForm.SetRate(m.inputs[0].Value())
	m.inputs[0].SetValue(m.editForm.Rate())
	return m, cmd
}

func (m Model) updateDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		engine, ctx, idOp := m.engine, m.ctx, m.deleteID
		m.busy = true
		m.mode = modeTable
		return m, func() tea.Msg {
			return mutationMsg{err: engine.Delete(ctx, idOp)}
		}
	case "n", "esc":
		m.mode = modeTable
		return m, nil
	}
	return m, nil
}

// selectedID возвращает ID операции выбранной строки
func (m Model) selectedID() (int, bool) {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return 0, false
	}
	idOp, err := strconv.Atoi(row[0])
	if err != nil {
		return 0, false
	}
	return idOp, true
}

// refreshRows пересобирает строки таблицы из проекции движка
func (m *Model) refreshRows() {
	view := m.engine.View()
	rows := make([]table.Row, 0, len(view))
	for _, r := range view {
		rows = append(rows, table.Row{
			strconv.Itoa(r.IDOp),
			validation.FormatRate(r.Tasa),
			r.Email,
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m Model) View() string {
	var b []byte
	b = append(b, m.styles.Title.Render("Rate Admin")...)
	b = append(b, '\n')

	switch m.mode {
	case modeCreate:
		b = append(b, m.viewCreate()...)
	case modeEdit:
		b = append(b, m.viewEdit()...)
	case modeDelete:
		b = append(b, m.viewDelete()...)
	default:
		b = append(b, m.viewTable()...)
	}

	if m.toast != nil {
		b = append(b, '\n')
		b = append(b, m.renderToast()...)
	}
	if m.busy {
		b = append(b, '\n')
		b = append(b, m.styles.Busy.Render("Working...")...)
	}
	b = append(b, '\n')
	b = append(b, m.styles.Help.Render(m.helpLine())...)
	return string(b)
}

func (m Model) viewTable() string {
	out := m.styles.Search.Render("Search: "+m.search.View()) + "\n"

	state, errMsg := m.engine.State()
	switch state {
	case rates.StateLoading:
		return out + "Loading rates..."
	case rates.StateFailed:
		return out + m.styles.Error.Render(errMsg)
	case rates.StateEmpty:
		return out + m.styles.Label.Render("No rates found.")
	}
	if len(m.table.Rows()) == 0 {
		return out + m.styles.Label.Render(
			fmt.Sprintf("No rates match search term %q.", m.engine.SearchTerm()))
	}
	return out + m.styles.Table.Render(m.table.View())
}

func (m Model) viewCreate() string {
	content := "Add Rate\n\n" +
		m.styles.Label.Render("Operation ID") + "\n" + m.inputs[fieldOperationID].View() + "\n" +
		m.styles.Label.Render("Rate") + "\n" + m.inputs[fieldRate].View() + "\n" +
		m.styles.Label.Render("Email") + "\n" + m.inputs[fieldEmail].View()
	return m.styles.Dialog.Render(content)
}

func (m Model) viewEdit() string {
	content := fmt.Sprintf("Update Rate for operation %d\n\n", m.editForm.OperationID()) +
		m.styles.Label.Render("Email: "+m.editForm.Email()) + "\n\n" +
		m.styles.Label.Render("New rate") + "\n" + m.inputs[0].View()
	return m.styles.Dialog.Render(content)
}

func (m Model) viewDelete() string {
	content := fmt.Sprintf("Delete rate for operation %d?\n\n", m.deleteID) +
		m.styles.Label.Render("y — delete, n — cancel")
	return m.styles.Dialog.Render(content)
}

func (m Model) renderToast() string {
	switch m.toast.Severity {
	case rates.SeveritySuccess:
		return m.styles.Success.Render("✓ " + m.toast.Message)
	case rates.SeverityError:
		return m.styles.Error.Render("✗ " + m.toast.Message)
	default:
		return m.styles.Info.Render(m.toast.Message)
	}
}

func (m Model) helpLine() string {
	switch m.mode {
	case modeCreate:
		return "tab: next field • enter: submit • esc: cancel"
	case modeEdit:
		return "enter: submit • esc: cancel"
	case modeDelete:
		return "y: delete • n: cancel"
	}
	if m.searchFocused {
		return "type digits to filter • enter/esc: done"
	}
	return "/: search • i/t: sort • a: add • e: edit • d: delete • r: reload • q: quit"
}
