package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tntzzxwife/my-order-app/internal/models"
	"github.com/tntzzxwife/my-order-app/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	accountField = iota
	productField
	sourceField
	rateField
	costField
	priceField
	noteField
	shippedField
	fieldCount
)

var fieldLabels = [...]string{
	accountField: "IG 帳號",
	productField: "商品名稱",
	sourceField:  "貨源",
	rateField:    "匯率",
	costField:    "成本 (RMB)",
	priceField:   "售價 (TWD)",
	noteField:    "備註",
}

// FormModel is the add-order form. It is cleared after every successful
// submit.
type FormModel struct {
	store        *store.Store
	inputs       []textinput.Model
	shipped      bool
	focusedInput int
	message      string
	messageStyle lipgloss.Style
	width        int
	height       int
}

func NewFormModel(s *store.Store) *FormModel {
	m := &FormModel{store: s}
	m.reset()
	return m
}

func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *FormModel) reset() {
	m.inputs = make([]textinput.Model, shippedField)
	for i := range m.inputs {
		m.inputs[i] = textinput.New()
	}
	m.inputs[rateField].SetValue(models.DefaultExchangeRate.String())
	m.inputs[costField].SetValue("0.0")
	m.inputs[priceField].SetValue("0")
	m.inputs[accountField].Placeholder = "ig_account"
	m.inputs[productField].Placeholder = "product"
	m.shipped = false
	m.focusedInput = 0
	m.updateInputFocus()
}

func (m *FormModel) updateInputFocus() {
	for i := range m.inputs {
		if i == m.focusedInput {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		m.focusedInput = (m.focusedInput + 1) % fieldCount
		m.updateInputFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusedInput = (m.focusedInput - 1 + fieldCount) % fieldCount
		m.updateInputFocus()
		return m, nil
	case "enter":
		return m.submit()
	case " ":
		if m.focusedInput == shippedField {
			m.shipped = !m.shipped
			return m, nil
		}
	}

	if m.focusedInput == shippedField {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focusedInput], cmd = m.inputs[m.focusedInput].Update(keyMsg)
	return m, cmd
}

func (m *FormModel) value(field int) string {
	return strings.TrimSpace(m.inputs[field].Value())
}

// orderInput builds the store input from the form. Empty numeric fields
// are left nil so the store defaults apply.
func (m *FormModel) orderInput() (models.OrderInput, error) {
	input := models.OrderInput{
		Account: m.value(accountField),
		Product: m.value(productField),
		Source:  m.value(sourceField),
		Note:    m.value(noteField),
		Shipped: m.shipped,
	}

	if v := m.value(rateField); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return input, fmt.Errorf("匯率格式錯誤: %q", v)
		}
		input.ExchangeRate = &rate
	}
	if v := m.value(costField); v != "" {
		cost, err := decimal.NewFromString(v)
		if err != nil {
			return input, fmt.Errorf("成本格式錯誤: %q", v)
		}
		input.CostForeign = &cost
	}
	if v := m.value(priceField); v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return input, fmt.Errorf("售價格式錯誤: %q", v)
		}
		input.PriceLocal = &price
	}
	return input, nil
}

func (m *FormModel) submit() (tea.Model, tea.Cmd) {
	input, err := m.orderInput()
	if err != nil {
		m.message = "❌ " + err.Error()
		m.messageStyle = errorStyle
		return m, nil
	}

	order, err := m.store.Append(input)
	if isValidation(err) {
		m.message = "❌ 帳號與商品不能空白"
		m.messageStyle = errorStyle
		return m, nil
	}
	if err != nil {
		m.message = fmt.Sprintf("❌ %v", err)
		m.messageStyle = errorStyle
		return m, nil
	}

	m.reset()
	m.message = fmt.Sprintf("✅ 儲存成功！ %s / %s 利潤 %d", order.Account, order.Product, order.ProfitLocal)
	m.messageStyle = successStyle
	return m, OrdersChanged()
}

func (m *FormModel) View() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width)

	title := adaptiveTitleStyle.Render("📝 新增訂單")

	var b strings.Builder
	for i := range m.inputs {
		label := labelStyle
		if i == m.focusedInput {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(fieldLabels[i]+":") + "\n" + m.inputs[i].View() + "\n\n")
	}
	checkbox := "[ ]"
	if m.shipped {
		checkbox = "[x]"
	}
	label := labelStyle
	if m.focusedInput == shippedField {
		label = focusedLabelStyle
	}
	b.WriteString(label.Render(checkbox + " 已出貨"))

	parts := []string{title, adaptiveFormStyle.Render(b.String())}
	if m.message != "" {
		parts = append(parts, m.messageStyle.Render(m.message))
	}
	parts = append(parts, adaptiveHelpStyle.Render("Tab/Shift+Tab: Navigate • Space: Toggle shipped • Enter: 💾 Save • Esc: Back to list"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
