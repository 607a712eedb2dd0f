package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tntzzxwife/my-order-app/internal/csv"
	"github.com/tntzzxwife/my-order-app/internal/models"
	"github.com/tntzzxwife/my-order-app/internal/store"

	"github.com/shopspring/decimal"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

type Service struct {
	store *store.Store
	now   func() time.Time
}

func NewService(s *store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

// jsonOrder is the JSON backup form of an order; decimals are kept as
// strings so no precision is lost.
type jsonOrder struct {
	RegisteredAt string `json:"registered_at"`
	Account      string `json:"account"`
	Product      string `json:"product"`
	Source       string `json:"source"`
	ExchangeRate string `json:"exchange_rate"`
	CostForeign  string `json:"cost_foreign"`
	CostLocal    int64  `json:"cost_local"`
	PriceLocal   int64  `json:"price_local"`
	ProfitLocal  int64  `json:"profit_local"`
	Status       string `json:"status"`
	Note         string `json:"note"`
}

// BackupOrders writes the current collection to a timestamped file in
// outputDir and returns its path.
func (s *Service) BackupOrders(outputDir, format string) (string, int, error) {
	if format != FormatCSV && format != FormatJSON {
		return "", 0, fmt.Errorf("invalid format: %s. Use 'csv' or 'json'", format)
	}

	orders, err := s.store.Load()
	if err != nil {
		return "", 0, fmt.Errorf("failed to load orders: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := s.now().Format("20060102_150405")
	filename := fmt.Sprintf("backup_orders_%s.%s", timestamp, format)
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create backup file: %w", err)
	}

	if err := writeOrders(file, orders, format); err != nil {
		file.Close()
		os.Remove(path)
		return "", 0, fmt.Errorf("backup failed: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("backup failed: %w", err)
	}

	return path, len(orders), nil
}

// RestoreOrders replaces the store's collection with the backup's.
func (s *Service) RestoreOrders(inputFile, format string) (int, error) {
	file, err := os.Open(inputFile)
	if err != nil {
		return 0, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	orders, err := readOrders(file, format)
	if err != nil {
		return 0, fmt.Errorf("restore failed: %w", err)
	}
	if err := store.ValidateCollection(orders); err != nil {
		return 0, fmt.Errorf("restore failed: %w", err)
	}

	if err := s.store.Save(orders); err != nil {
		return 0, fmt.Errorf("restore failed: %w", err)
	}
	return len(orders), nil
}

func (s *Service) ValidateBackupFile(filename, expectedFormat string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("cannot open backup file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return fmt.Errorf("cannot get file info: %w", err)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("backup file is empty")
	}

	extension := filepath.Ext(filename)
	if extension != "."+expectedFormat {
		return fmt.Errorf("expected %s file but got %s", expectedFormat, extension)
	}

	return nil
}

// DetectFormat infers the backup format from the file extension.
func DetectFormat(filename string) (string, error) {
	switch filepath.Ext(filename) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("cannot auto-detect format from extension '%s'. Please specify --format", filepath.Ext(filename))
}

func writeOrders(w io.Writer, orders models.OrderCollection, format string) error {
	if format == FormatCSV {
		return csv.Encode(w, orders)
	}

	out := make([]jsonOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, jsonOrder{
			RegisteredAt: o.RegisteredAt,
			Account:      o.Account,
			Product:      o.Product,
			Source:       o.Source,
			ExchangeRate: o.ExchangeRate.String(),
			CostForeign:  o.CostForeign.String(),
			CostLocal:    o.CostLocal,
			PriceLocal:   o.PriceLocal,
			ProfitLocal:  o.ProfitLocal,
			Status:       o.Status.String(),
			Note:         o.Note,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return nil
}

func readOrders(r io.Reader, format string) (models.OrderCollection, error) {
	if format == FormatCSV {
		return csv.Decode(r)
	}
	if format != FormatJSON {
		return nil, fmt.Errorf("invalid format: %s. Use 'csv' or 'json'", format)
	}

	var in []jsonOrder
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	orders := make(models.OrderCollection, 0, len(in))
	for i, j := range in {
		rate, err := decimal.NewFromString(j.ExchangeRate)
		if err != nil {
			return nil, fmt.Errorf("order %d: invalid exchange rate %q", i+1, j.ExchangeRate)
		}
		cost, err := decimal.NewFromString(j.CostForeign)
		if err != nil {
			return nil, fmt.Errorf("order %d: invalid cost %q", i+1, j.CostForeign)
		}
		status := models.Unshipped
		if strings.TrimSpace(j.Status) != "" {
			if status, err = models.ParseStatus(strings.TrimSpace(j.Status)); err != nil {
				return nil, fmt.Errorf("order %d: %w", i+1, err)
			}
		}
		orders = append(orders, models.OrderRecord{
			RegisteredAt: j.RegisteredAt,
			Account:      j.Account,
			Product:      j.Product,
			Source:       j.Source,
			ExchangeRate: rate,
			CostForeign:  cost,
			CostLocal:    j.CostLocal,
			PriceLocal:   j.PriceLocal,
			ProfitLocal:  j.ProfitLocal,
			Status:       status,
			Note:         j.Note,
		})
	}
	return orders, nil
}
