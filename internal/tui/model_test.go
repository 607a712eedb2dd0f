package tui

import (
	"path/filepath"
	"testing"

	"github.com/tntzzxwife/my-order-app/internal/models"
	"github.com/tntzzxwife/my-order-app/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.NewStore(filepath.Join(t.TempDir(), "orders.csv"))
	require.NoError(t, s.Initialize())
	return s
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m tea.Model, text string) {
	for _, r := range text {
		m.Update(key(string(r)))
	}
}

func TestFormRejectsMissingAccount(t *testing.T) {
	s := newTestStore(t)
	form := NewFormModel(s)

	_, cmd := form.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Contains(t, form.message, "帳號與商品不能空白")

	orders, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFormSubmitAppendsAndResets(t *testing.T) {
	s := newTestStore(t)
	form := NewFormModel(s)

	typeText(form, "shop_a")
	form.Update(key("tab"))
	typeText(form, "bag")
	for form.focusedInput != shippedField {
		form.Update(key("tab"))
	}
	form.Update(key(" "))
	assert.True(t, form.shipped)

	_, cmd := form.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, OrdersChangedMsg{}, cmd())
	assert.Contains(t, form.message, "儲存成功")

	orders, err := s.Load()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "shop_a", orders[0].Account)
	assert.Equal(t, "bag", orders[0].Product)
	assert.Equal(t, models.Shipped, orders[0].Status)
	assert.Equal(t, "4.5", orders[0].ExchangeRate.String())

	assert.Equal(t, "", form.value(accountField))
	assert.Equal(t, "4.5", form.value(rateField))
	assert.False(t, form.shipped)
}

func TestFormRejectsBadNumber(t *testing.T) {
	s := newTestStore(t)
	form := NewFormModel(s)
	form.inputs[accountField].SetValue("a")
	form.inputs[productField].SetValue("p")
	form.inputs[priceField].SetValue("abc")

	form.Update(key("enter"))
	assert.Contains(t, form.message, "售價")

	orders, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func seed(t *testing.T, s *store.Store, accountProducts ...string) {
	t.Helper()
	for i := 0; i < len(accountProducts); i += 2 {
		_, err := s.Append(models.OrderInput{Account: accountProducts[i], Product: accountProducts[i+1]})
		require.NoError(t, err)
	}
}

func TestListSearchAndUpdateStatus(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, "shop_a", "bag", "shop_b", "hat", "shop_a", "shoes")
	list := NewListModel(s)
	require.Len(t, list.view, 3)
	assert.Equal(t, []string{"shop_a", "shop_b"}, list.accounts)

	list.Update(key("/"))
	assert.True(t, list.Typing())
	typeText(list, "hat")
	list.Update(key("enter"))
	assert.False(t, list.Typing())
	require.Len(t, list.view, 1)
	assert.Equal(t, "shop_b", list.selectedAccount())

	list.Update(key("enter"))
	orders, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, models.Unshipped, orders[0].Status)
	assert.Equal(t, models.Shipped, orders[1].Status)
	assert.Equal(t, models.Unshipped, orders[2].Status)

	list.Update(key("t"))
	assert.Equal(t, models.Unshipped, list.status)
}

func TestListDeleteSearched(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, "shop_a", "bag", "shop_b", "hat", "shop_c", "handbag")
	list := NewListModel(s)

	list.Update(key("/"))
	typeText(list, "bag")
	list.Update(key("enter"))
	require.Len(t, list.view, 2)

	list.Update(key("D"))
	assert.True(t, list.confirmDelete)
	list.Update(key("n"))
	assert.False(t, list.confirmDelete)

	orders, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	list.Update(key("D"))
	list.Update(key("y"))
	orders, err = s.Load()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "shop_b", orders[0].Account)
	assert.Empty(t, list.view)
	assert.Contains(t, list.View(), emptyMessage)
}

func TestModelScreens(t *testing.T) {
	s := newTestStore(t)
	var m tea.Model = NewModel(s)

	m, cmd := m.Update(key("a"))
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.Equal(t, FormScreen, m.(Model).currentScreen)

	// q is text while the form is showing
	m, _ = m.Update(key("q"))
	assert.False(t, m.(Model).quitting)
	assert.Equal(t, "q", m.(Model).formModel.value(accountField))

	m, _ = m.Update(key("esc"))
	assert.Equal(t, ListScreen, m.(Model).currentScreen)

	_, cmd = m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
