// Package tui реализует интерактивную таблицу тарифов поверх bubbletea.
// Вся логика данных живет в движке тарифов, здесь только отображение:
// таблица, поиск, модальные формы и транзитные уведомления.
package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Semantic colors
var (
	colorAccent  = lipgloss.Color("#8BC34A")
	colorError   = lipgloss.Color("#e53935")
	colorInfo    = lipgloss.Color("#2196F3")
	colorMuted   = lipgloss.Color("245")
	colorBorder  = lipgloss.Color("240")
	colorContent = lipgloss.Color("252")
)

// Styles holds the lipgloss styles of the rates console
type Styles struct {
	Title   lipgloss.Style
	Search  lipgloss.Style
	Table   lipgloss.Style
	Help    lipgloss.Style
	Busy    lipgloss.Style
	Dialog  lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Info    lipgloss.Style
	Error   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginBottom(1),
		Search: lipgloss.NewStyle().
			Foreground(colorContent).
			MarginBottom(1),
		Table: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder),
		Help: lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1),
		Busy: lipgloss.NewStyle().
			Foreground(colorInfo),
		Dialog: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2),
		Label:   lipgloss.NewStyle().Foreground(colorMuted),
		Success: lipgloss.NewStyle().Foreground(colorAccent),
		Info:    lipgloss.NewStyle().Foreground(colorInfo),
		Error:   lipgloss.NewStyle().Foreground(colorError),
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}
