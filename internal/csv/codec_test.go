package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tntzzxwife/my-order-app/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "登記時間,IG帳號,商品,貨源,匯率,成本(RMB),成本(TWD),售價(TWD),利潤(TWD),狀態,備註\n"

func sampleOrders() models.OrderCollection {
	return models.OrderCollection{
		{
			RegisteredAt: "2024-03-01 10:00:00",
			Account:      "shop_a",
			Product:      "bag",
			Source:       "taobao",
			ExchangeRate: decimal.RequireFromString("4.5"),
			CostForeign:  decimal.NewFromInt(200),
			CostLocal:    900,
			PriceLocal:   1200,
			ProfitLocal:  300,
			Status:       models.Unshipped,
			Note:         "Urgent restock, \"gift\" wrap",
		},
		{
			RegisteredAt: "2024-03-02 11:30:00",
			Account:      "shop_b",
			Product:      "shoes",
			ExchangeRate: decimal.RequireFromString("4.45"),
			CostForeign:  decimal.RequireFromString("99.9"),
			CostLocal:    445,
			PriceLocal:   400,
			ProfitLocal:  -45,
			Status:       models.Shipped,
		},
	}
}

func fieldsOf(orders models.OrderCollection) [][]string {
	out := make([][]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Fields())
	}
	return out
}

func TestEncodeEmptyWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))
	assert.Equal(t, string(bom)+header, buf.String())

	orders, err := Decode(&buf)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestDecodeHeaderOnly(t *testing.T) {
	for _, in := range []string{header, string(bom) + header, strings.TrimSuffix(header, "\n")} {
		orders, err := Decode(strings.NewReader(in))
		require.NoError(t, err)
		assert.Empty(t, orders)
	}
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := sampleOrders()
	require.NoError(t, Encode(&buf, want))
	require.True(t, bytes.HasPrefix(buf.Bytes(), bom))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, fieldsOf(want), fieldsOf(got))
}

func TestDecodeEmptyInput(t *testing.T) {
	orders, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestDecodeColumnsInAnyOrder(t *testing.T) {
	in := "備註,狀態,利潤(TWD),售價(TWD),成本(TWD),成本(RMB),匯率,貨源,商品,IG帳號,登記時間,extra\n" +
		"hello,已出貨,50,500,450,100.0,4.5,,cup,shop_c,2024-01-01 00:00:00,ignored\n"

	orders, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, "shop_c", o.Account)
	assert.Equal(t, "cup", o.Product)
	assert.Equal(t, "", o.Source)
	assert.Equal(t, "hello", o.Note)
	assert.Equal(t, models.Shipped, o.Status)
	assert.Equal(t, int64(450), o.CostLocal)
	assert.True(t, o.CostForeign.Equal(decimal.NewFromInt(100)))
}

func TestDecodeFloatIntegers(t *testing.T) {
	in := header + "2024-01-01 00:00:00,a,b,,4.5,200.0,900.0,1200.0,300.0,未出貨,\n"

	orders, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(900), orders[0].CostLocal)
	assert.Equal(t, int64(1200), orders[0].PriceLocal)
	assert.Equal(t, int64(300), orders[0].ProfitLocal)
}

func TestDecodeEmptyCells(t *testing.T) {
	in := header + "2024-01-01 00:00:00,a,b,,,,,,,,\n"

	orders, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.Unshipped, orders[0].Status)
	assert.True(t, orders[0].ExchangeRate.IsZero())
	assert.Equal(t, int64(0), orders[0].PriceLocal)
	assert.Equal(t, "", orders[0].Note)
}

func TestDecodeRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing column", "登記時間,IG帳號,商品\n2024-01-01 00:00:00,a,b\n"},
		{"bad status", header + "2024-01-01 00:00:00,a,b,,4.5,1,5,5,0,lost,\n"},
		{"bad rate", header + "2024-01-01 00:00:00,a,b,,abc,1,5,5,0,未出貨,\n"},
		{"fractional int", header + "2024-01-01 00:00:00,a,b,,4.5,1,4.5,5,0,未出貨,\n"},
		{"ragged row", header + "2024-01-01 00:00:00,a,b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in))
			require.Error(t, err)
		})
	}
}
