package csv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tntzzxwife/my-order-app/internal/models"

	"github.com/jszwec/csvutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// bom is the UTF-8 byte-order mark the order file starts with.
var bom = []byte{0xEF, 0xBB, 0xBF}

// orderRow is the on-disk text form of an order. Every column is read as
// text first so conversion failures can be reported per column.
type orderRow struct {
	RegisteredAt string `csv:"登記時間"`
	Account      string `csv:"IG帳號"`
	Product      string `csv:"商品"`
	Source       string `csv:"貨源"`
	ExchangeRate string `csv:"匯率"`
	CostForeign  string `csv:"成本(RMB)"`
	CostLocal    string `csv:"成本(TWD)"`
	PriceLocal   string `csv:"售價(TWD)"`
	ProfitLocal  string `csv:"利潤(TWD)"`
	Status       string `csv:"狀態"`
	Note         string `csv:"備註"`
}

// Decode reads an order file. A leading BOM is optional, columns may come in
// any order, and a zero-byte input yields an empty collection.
func Decode(r io.Reader) (models.OrderCollection, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, bom) {
		if _, err := br.Discard(len(bom)); err != nil {
			return nil, fmt.Errorf("failed to skip BOM: %w", err)
		}
	}

	decoder, err := csvutil.NewDecoder(csv.NewReader(br))
	if errors.Is(err, io.EOF) {
		return models.OrderCollection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}
	decoder.DisallowMissingColumns = true

	var rows []orderRow
	// a header with no rows decodes to io.EOF
	if err := decoder.Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode CSV: %w", err)
	}

	orders := make(models.OrderCollection, 0, len(rows))
	for i, row := range rows {
		order, err := row.toRecord()
		if err != nil {
			// header is line 1
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// Encode writes the BOM, the header and one line per order. An empty
// collection still gets the full header.
func Encode(w io.Writer, orders models.OrderCollection) error {
	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	encoder := csvutil.NewEncoder(writer)

	var err error
	if len(orders) == 0 {
		err = encoder.EncodeHeader(orderRow{})
	} else {
		err = encoder.Encode(lo.Map(orders, func(o models.OrderRecord, _ int) orderRow {
			return fromRecord(o)
		}))
	}
	if err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func fromRecord(o models.OrderRecord) orderRow {
	f := o.Fields()
	return orderRow{
		RegisteredAt: f[0],
		Account:      f[1],
		Product:      f[2],
		Source:       f[3],
		ExchangeRate: f[4],
		CostForeign:  f[5],
		CostLocal:    f[6],
		PriceLocal:   f[7],
		ProfitLocal:  f[8],
		Status:       f[9],
		Note:         f[10],
	}
}

func (r orderRow) toRecord() (models.OrderRecord, error) {
	order := models.OrderRecord{
		RegisteredAt: r.RegisteredAt,
		Account:      r.Account,
		Product:      r.Product,
		Source:       r.Source,
		Note:         r.Note,
	}

	var err error
	if order.ExchangeRate, err = parseDecimal(models.ColExchangeRate, r.ExchangeRate); err != nil {
		return order, err
	}
	if order.CostForeign, err = parseDecimal(models.ColCostForeign, r.CostForeign); err != nil {
		return order, err
	}
	if order.CostLocal, err = parseInt(models.ColCostLocal, r.CostLocal); err != nil {
		return order, err
	}
	if order.PriceLocal, err = parseInt(models.ColPriceLocal, r.PriceLocal); err != nil {
		return order, err
	}
	if order.ProfitLocal, err = parseInt(models.ColProfitLocal, r.ProfitLocal); err != nil {
		return order, err
	}

	if strings.TrimSpace(r.Status) == "" {
		order.Status = models.Unshipped
	} else if order.Status, err = models.ParseStatus(strings.TrimSpace(r.Status)); err != nil {
		return order, fmt.Errorf("column %s: %w", models.ColStatus, err)
	}
	return order, nil
}

func parseDecimal(column, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("column %s: invalid number %q", column, s)
	}
	return d, nil
}

// parseInt accepts integral values written as floats ("900.0").
func parseInt(column, s string) (int64, error) {
	d, err := parseDecimal(column, s)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("column %s: %q is not an integer", column, s)
	}
	return d.IntPart(), nil
}
