package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	apiclient "rateadmin/internal/client/api"
	"rateadmin/internal/client/auth"
	"rateadmin/internal/client/rates"
)

// Run открывает интерактивную таблицу и блокируется до выхода.
// Движок создается со своим каналом уведомлений: уведомления
// показываются тостами, а не печатью в stdout.
func Run(ctx context.Context, apiClient apiclient.ClientAPI, authService auth.Service) error {
	notices := make(chan rates.Notice, 16)
	engine := rates.NewEngine(apiClient, authService, channelNotifier(notices), nil)

	// Канал намеренно не закрывается: bubbletea не дожидается
	// запущенных команд, и уведомление завершившейся после выхода
	// мутации не должно попасть в закрытый канал
	p := tea.NewProgram(newModel(ctx, engine, notices), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("interactive mode failed: %w", err)
	}

	if m, ok := final.(Model); ok && m.expired {
		return rates.ErrSessionExpired
	}
	return nil
}

// channelNotifier переправляет уведомления движка в канал представления.
// Отправка неблокирующая: если представление не успевает, уведомление
// теряется молча.
func channelNotifier(notices chan<- rates.Notice) rates.NotifyFunc {
	return func(n rates.Notice) {
		select {
		case notices <- n:
		default:
		}
	}
}
