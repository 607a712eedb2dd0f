package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TimeLayout is the format of OrderRecord.RegisteredAt.
const TimeLayout = "2006-01-02 15:04:05"

// Column headers of the backing file, in write order.
const (
	ColRegisteredAt = "登記時間"
	ColAccount      = "IG帳號"
	ColProduct      = "商品"
	ColSource       = "貨源"
	ColExchangeRate = "匯率"
	ColCostForeign  = "成本(RMB)"
	ColCostLocal    = "成本(TWD)"
	ColPriceLocal   = "售價(TWD)"
	ColProfitLocal  = "利潤(TWD)"
	ColStatus       = "狀態"
	ColNote         = "備註"
)

// Columns lists every column of the order file schema.
var Columns = []string{
	ColRegisteredAt, ColAccount, ColProduct, ColSource, ColExchangeRate,
	ColCostForeign, ColCostLocal, ColPriceLocal, ColProfitLocal, ColStatus, ColNote,
}

// DefaultExchangeRate is used when an OrderInput carries no rate.
var DefaultExchangeRate = decimal.RequireFromString("4.5")

type Status string

const (
	Shipped   Status = "已出貨"
	Unshipped Status = "未出貨"
)

// ParseStatus accepts the stored display values as well as the English names.
func ParseStatus(s string) (Status, error) {
	switch s {
	case string(Shipped), "shipped", "Shipped":
		return Shipped, nil
	case string(Unshipped), "unshipped", "Unshipped":
		return Unshipped, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// StatusFromShipped maps the form checkbox to a status.
func StatusFromShipped(shipped bool) Status {
	if shipped {
		return Shipped
	}
	return Unshipped
}

func (s Status) String() string { return string(s) }

// OrderRecord is one tracked purchase/resale transaction.
type OrderRecord struct {
	RegisteredAt string
	Account      string
	Product      string
	Source       string
	ExchangeRate decimal.Decimal
	CostForeign  decimal.Decimal
	CostLocal    int64
	PriceLocal   int64
	ProfitLocal  int64
	Status       Status
	Note         string
}

// Fields returns the display text of every field in column order.
func (o OrderRecord) Fields() []string {
	return []string{
		o.RegisteredAt,
		o.Account,
		o.Product,
		o.Source,
		FormatDecimal(o.ExchangeRate),
		FormatDecimal(o.CostForeign),
		fmt.Sprint(o.CostLocal),
		fmt.Sprint(o.PriceLocal),
		fmt.Sprint(o.ProfitLocal),
		o.Status.String(),
		o.Note,
	}
}

// FormatDecimal writes whole numbers with one decimal place ("200.0"), the
// way the order file has always shown rates and foreign costs.
func FormatDecimal(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(1)
	}
	return d.String()
}

// OrderCollection is the full ordered set of orders, in insertion order.
type OrderCollection []OrderRecord

// OrderInput carries what the order form submits. Nil numeric fields take
// their defaults.
type OrderInput struct {
	Account      string
	Product      string
	Source       string
	ExchangeRate *decimal.Decimal
	CostForeign  *decimal.Decimal
	PriceLocal   *int64
	Note         string
	Shipped      bool
}

// CostLocal converts a foreign cost at rate, rounding half to even.
func CostLocal(costForeign, rate decimal.Decimal) int64 {
	return costForeign.Mul(rate).RoundBank(0).IntPart()
}
