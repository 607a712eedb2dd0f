package tui

import (
	"github.com/tntzzxwife/my-order-app/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Screen int

const (
	ListScreen Screen = iota
	FormScreen
)

type Model struct {
	currentScreen Screen
	listModel     *ListModel
	formModel     *FormModel
	quitting      bool
	width         int
	height        int
}

func NewModel(s *store.Store) Model {
	return Model{
		currentScreen: ListScreen,
		listModel:     NewListModel(s),
		formModel:     NewFormModel(s),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.listModel.SetSize(msg.Width, msg.Height)
		m.formModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "q":
			if m.currentScreen == ListScreen && !m.listModel.Typing() {
				m.quitting = true
				return m, tea.Quit
			}
		case "esc":
			if m.currentScreen != ListScreen {
				m.currentScreen = ListScreen
				return m, nil
			}
		}

	case ScreenChangeMsg:
		m.currentScreen = msg.Screen
		if msg.Screen == FormScreen {
			return m, m.formModel.Init()
		}
		return m, nil

	case OrdersChangedMsg:
		// the list reloads even while the form is showing
		_, cmd := m.listModel.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.currentScreen {
	case ListScreen:
		_, cmd = m.listModel.Update(msg)
	case FormScreen:
		_, cmd = m.formModel.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return "Bye! 👋\n"
	}

	var content string
	switch m.currentScreen {
	case ListScreen:
		content = m.listModel.View()
	case FormScreen:
		content = m.formModel.View()
	}

	if m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
	}
	return content
}

type ScreenChangeMsg struct {
	Screen Screen
}

// OrdersChangedMsg tells the list to reload from the store.
type OrdersChangedMsg struct{}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}

func OrdersChanged() tea.Cmd {
	return func() tea.Msg {
		return OrdersChangedMsg{}
	}
}
