package tui

import (
	"errors"
	"fmt"

	"github.com/tntzzxwife/my-order-app/internal/models"
	"github.com/tntzzxwife/my-order-app/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ListModel shows the searchable order table and runs the bulk actions.
type ListModel struct {
	store         *store.Store
	searchInput   textinput.Model
	searching     bool
	orders        models.OrderCollection
	view          models.OrderCollection
	accounts      []string
	account       int
	status        models.Status
	cursor        int
	confirmDelete bool
	message       string
	messageStyle  lipgloss.Style
	width         int
	height        int
}

func NewListModel(s *store.Store) *ListModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "搜尋帳號、商品或備註"
	searchInput.Prompt = "🔍 "

	m := &ListModel{
		store:       s,
		searchInput: searchInput,
		status:      models.Shipped,
	}
	m.reload()
	return m
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func (m *ListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Typing reports whether key presses go to the search box.
func (m *ListModel) Typing() bool {
	return m.searching
}

func (m *ListModel) reload() {
	orders, err := m.store.Load()
	if err != nil {
		m.orders = nil
		m.setError(err)
	} else {
		m.orders = orders
	}
	m.applySearch()
}

func (m *ListModel) applySearch() {
	m.view = store.Search(m.orders, m.searchInput.Value())
	m.accounts = store.Accounts(m.view)
	if m.account >= len(m.accounts) {
		m.account = 0
	}
	if m.cursor >= len(m.view) {
		m.cursor = max(len(m.view)-1, 0)
	}
}

func (m *ListModel) selectedAccount() string {
	if len(m.accounts) == 0 {
		return ""
	}
	return m.accounts[m.account]
}

func (m *ListModel) setError(err error) {
	m.message = fmt.Sprintf("❌ %v", err)
	m.messageStyle = errorStyle
}

func (m *ListModel) setSuccess(msg string) {
	m.message = "✅ " + msg
	m.messageStyle = successStyle
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OrdersChangedMsg:
		m.reload()
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.confirmDelete {
			return m.updateConfirmDelete(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m *ListModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m *ListModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirmDelete = false
	if msg.String() != "y" && msg.String() != "Y" {
		m.message = ""
		return m, nil
	}

	removed, err := m.store.DeleteMatching(m.orders, m.searchInput.Value())
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.setSuccess(fmt.Sprintf("已刪除 %d 筆訂單", removed))
	m.reload()
	return m, nil
}

func (m *ListModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view)-1 {
			m.cursor++
		}
	case "/":
		m.searching = true
		return m, m.searchInput.Focus()
	case "tab":
		if len(m.accounts) > 0 {
			m.account = (m.account + 1) % len(m.accounts)
		}
	case "shift+tab":
		if len(m.accounts) > 0 {
			m.account = (m.account - 1 + len(m.accounts)) % len(m.accounts)
		}
	case "t":
		if m.status == models.Shipped {
			m.status = models.Unshipped
		} else {
			m.status = models.Shipped
		}
	case "enter":
		m.updateStatus()
	case "D":
		if len(m.view) > 0 {
			m.confirmDelete = true
			m.message = fmt.Sprintf("刪除搜尋到的 %d 筆訂單？(y/N)", len(m.view))
			m.messageStyle = warningStyle
		}
	case "r":
		m.message = ""
		m.reload()
	case "a":
		return m, ChangeScreen(FormScreen)
	}
	return m, nil
}

func (m *ListModel) updateStatus() {
	account := m.selectedAccount()
	if account == "" {
		return
	}
	updated, err := m.store.UpdateStatus(account, m.status)
	if err != nil {
		m.setError(err)
		return
	}
	m.setSuccess(fmt.Sprintf("%s: %d 筆訂單更新為 %s", account, updated, m.status))
	m.reload()
}

func (m *ListModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width)

	title := adaptiveTitleStyle.Render("📦 代購訂單管理系統")

	var table string
	if len(m.view) == 0 {
		table = warningStyle.Render(emptyMessage)
	} else {
		table = renderTable(m.view, m.cursor)
	}

	account := m.selectedAccount()
	if account == "" {
		account = "-"
	}
	statusText := shippedStyle.Render(m.status.String())
	if m.status == models.Unshipped {
		statusText = unshippedStyle.Render(m.status.String())
	}
	actions := labelStyle.Render("帳號: ") + account + "    " + labelStyle.Render("變更狀態為: ") + statusText

	parts := []string{title, m.searchInput.View(), table, actions}
	if m.message != "" {
		parts = append(parts, m.messageStyle.Render(m.message))
	}

	help := "/: Search • ↑/↓: Move • Tab: Account • t: Toggle status • Enter: Update status • D: Delete searched • a: Add order • r: Reload • q: Quit"
	if m.searching {
		help = "Enter/Esc: Done searching"
	}
	parts = append(parts, adaptiveHelpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// isValidation reports whether err is an input problem rather than a
// storage failure.
func isValidation(err error) bool {
	return errors.Is(err, store.ErrValidation)
}
