package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tntzzxwife/my-order-app/internal/csv"
	"github.com/tntzzxwife/my-order-app/internal/models"

	"github.com/samber/lo"
)

// DefaultPath is the order file used when no location is configured.
const DefaultPath = "customer_orders_web.csv"

var (
	ErrValidation         = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("order storage unavailable")
	ErrStorageCorrupt     = errors.New("order storage corrupt")
)

// Store owns the order file. Every mutation reads the whole collection,
// changes it and writes the whole collection back; the last writer wins.
type Store struct {
	path string
	now  func() time.Time
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path, now: time.Now}
}

func (s *Store) Path() string {
	return s.path
}

// Initialize creates a header-only order file if none exists.
func (s *Store) Initialize() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return s.Save(models.OrderCollection{})
}

// Load reads every order from the file.
func (s *Store) Load() (models.OrderCollection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	orders, err := csv.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStorageCorrupt, s.path, err)
	}
	return orders, nil
}

// Save replaces the file with orders. The data is written to a temporary
// file next to the target and renamed over it, so a failed write leaves the
// previous contents in place.
func (s *Store) Save(orders models.OrderCollection) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := csv.Encode(tmp, orders); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Append validates input, derives the local cost and profit, and adds the
// order at the end of the collection.
func (s *Store) Append(input models.OrderInput) (models.OrderRecord, error) {
	if input.Account == "" || input.Product == "" {
		return models.OrderRecord{}, fmt.Errorf("%w: account and product required", ErrValidation)
	}

	orders, err := s.Load()
	if err != nil {
		return models.OrderRecord{}, err
	}

	order := models.OrderRecord{
		RegisteredAt: s.now().Format(models.TimeLayout),
		Account:      input.Account,
		Product:      input.Product,
		Source:       input.Source,
		ExchangeRate: models.DefaultExchangeRate,
		Status:       models.StatusFromShipped(input.Shipped),
		Note:         input.Note,
	}
	if input.ExchangeRate != nil {
		order.ExchangeRate = *input.ExchangeRate
	}
	if input.CostForeign != nil {
		order.CostForeign = *input.CostForeign
	}
	if input.PriceLocal != nil {
		order.PriceLocal = *input.PriceLocal
	}
	order.CostLocal = models.CostLocal(order.CostForeign, order.ExchangeRate)
	order.ProfitLocal = order.PriceLocal - order.CostLocal

	if err := s.Save(append(orders, order)); err != nil {
		return models.OrderRecord{}, err
	}
	return order, nil
}

// ValidateCollection checks a collection arriving from outside Append: every
// order needs an account and a product, and its local cost and profit must
// be the ones Append would have derived.
func ValidateCollection(orders models.OrderCollection) error {
	for i, o := range orders {
		if o.Account == "" || o.Product == "" {
			return fmt.Errorf("%w: order %d: account and product required", ErrValidation, i+1)
		}
		if want := models.CostLocal(o.CostForeign, o.ExchangeRate); o.CostLocal != want {
			return fmt.Errorf("%w: order %d: local cost %d, want %d", ErrValidation, i+1, o.CostLocal, want)
		}
		if want := o.PriceLocal - o.CostLocal; o.ProfitLocal != want {
			return fmt.Errorf("%w: order %d: profit %d, want %d", ErrValidation, i+1, o.ProfitLocal, want)
		}
	}
	return nil
}

// UpdateStatus sets status on every order whose account equals account
// exactly and returns how many orders carry it. The file is rewritten even
// when nothing matched.
func (s *Store) UpdateStatus(account string, status models.Status) (int, error) {
	if account == "" {
		return 0, fmt.Errorf("%w: account required", ErrValidation)
	}
	if _, err := models.ParseStatus(string(status)); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	orders, err := s.Load()
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range orders {
		if orders[i].Account == account {
			orders[i].Status = status
			updated++
		}
	}

	if err := s.Save(orders); err != nil {
		return 0, err
	}
	return updated, nil
}

// DeleteMatching removes from the stored collection the positions that
// Search(orders, query) selected, and returns how many were removed.
// Targets are the positions in orders, not a fresh query against the file,
// so a file changed since orders was loaded loses whatever now sits at those
// positions.
func (s *Store) DeleteMatching(orders models.OrderCollection, query string) (int, error) {
	targets := lo.SliceToMap(matchIndexes(orders, query), func(i int) (int, struct{}) {
		return i, struct{}{}
	})

	stored, err := s.Load()
	if err != nil {
		return 0, err
	}

	kept := make(models.OrderCollection, 0, len(stored))
	for i, order := range stored {
		if _, ok := targets[i]; !ok {
			kept = append(kept, order)
		}
	}

	if err := s.Save(kept); err != nil {
		return 0, err
	}
	return len(stored) - len(kept), nil
}

// Search returns the orders with any field containing query, ignoring case.
// An empty query returns orders unchanged.
func Search(orders models.OrderCollection, query string) models.OrderCollection {
	if query == "" {
		return orders
	}
	return lo.Map(matchIndexes(orders, query), func(i int, _ int) models.OrderRecord {
		return orders[i]
	})
}

// Accounts lists the distinct accounts of orders in first-seen order.
func Accounts(orders models.OrderCollection) []string {
	return lo.Uniq(lo.Map(orders, func(o models.OrderRecord, _ int) string {
		return o.Account
	}))
}

func matchIndexes(orders models.OrderCollection, query string) []int {
	q := strings.ToLower(query)
	var indexes []int
	for i, order := range orders {
		if q == "" || lo.SomeBy(order.Fields(), func(f string) bool {
			return strings.Contains(strings.ToLower(f), q)
		}) {
			indexes = append(indexes, i)
		}
	}
	return indexes
}
