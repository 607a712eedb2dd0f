package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tntzzxwife/my-order-app/internal/models"
	"github.com/tntzzxwife/my-order-app/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.NewStore(filepath.Join(t.TempDir(), "orders.csv"))
	require.NoError(t, s.Initialize())

	rate := decimal.RequireFromString("4.45")
	cost := decimal.RequireFromString("12.5")
	_, err := s.Append(models.OrderInput{Account: "shop_a", Product: "bag", ExchangeRate: &rate, CostForeign: &cost, Note: "fragile"})
	require.NoError(t, err)
	_, err = s.Append(models.OrderInput{Account: "shop_b", Product: "hat", Shipped: true})
	require.NoError(t, err)
	return s
}

func TestBackupAndRestore(t *testing.T) {
	for _, format := range []string{FormatCSV, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			src := seededStore(t)
			svc := NewService(src)
			svc.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

			dir := filepath.Join(t.TempDir(), "backups")
			path, count, err := svc.BackupOrders(dir, format)
			require.NoError(t, err)
			assert.Equal(t, 2, count)
			assert.Equal(t, filepath.Join(dir, "backup_orders_20240506_070809."+format), path)
			require.NoError(t, svc.ValidateBackupFile(path, format))

			detected, err := DetectFormat(path)
			require.NoError(t, err)
			assert.Equal(t, format, detected)

			dst := store.NewStore(filepath.Join(t.TempDir(), "restored.csv"))
			restored, err := NewService(dst).RestoreOrders(path, format)
			require.NoError(t, err)
			assert.Equal(t, 2, restored)

			want, err := src.Load()
			require.NoError(t, err)
			got, err := dst.Load()
			require.NoError(t, err)
			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i].Fields(), got[i].Fields())
			}
		})
	}
}

func TestRestoreRejectsInconsistentOrders(t *testing.T) {
	tests := []struct {
		name  string
		order string
	}{
		{"empty account", `{"account": "", "product": "bag", "exchange_rate": "4.5", "cost_foreign": "0", "status": "未出貨"}`},
		{"empty product", `{"account": "shop_a", "product": "", "exchange_rate": "4.5", "cost_foreign": "0", "status": "未出貨"}`},
		{"cost not derived", `{"account": "shop_a", "product": "bag", "exchange_rate": "4.5", "cost_foreign": "100", "cost_local": 1, "price_local": 0, "profit_local": -1, "status": "未出貨"}`},
		{"profit not derived", `{"account": "shop_a", "product": "bag", "exchange_rate": "4.5", "cost_foreign": "100", "cost_local": 450, "price_local": 500, "profit_local": 999999, "status": "未出貨"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := seededStore(t)
			before, err := dst.Load()
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "bad.json")
			require.NoError(t, os.WriteFile(path, []byte("["+tt.order+"]"), 0644))

			_, err = NewService(dst).RestoreOrders(path, FormatJSON)
			require.ErrorIs(t, err, store.ErrValidation)

			after, err := dst.Load()
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestRestoreCSVRejectsInconsistentOrders(t *testing.T) {
	dst := seededStore(t)
	before, err := dst.Load()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "登記時間,IG帳號,商品,貨源,匯率,成本(RMB),成本(TWD),售價(TWD),利潤(TWD),狀態,備註\n" +
		"2024-03-01 10:00:00,,bag,,4.5,100.0,450,500,50,未出貨,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err = NewService(dst).RestoreOrders(path, FormatCSV)
	require.ErrorIs(t, err, store.ErrValidation)

	after, err := dst.Load()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRestoreJSONEmptyStatusIsUnshipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	order := `{"account": "shop_a", "product": "bag", "exchange_rate": "4.5", "cost_foreign": "100", "cost_local": 450, "price_local": 500, "profit_local": 50, "status": ""}`
	require.NoError(t, os.WriteFile(path, []byte("["+order+"]"), 0644))

	dst := store.NewStore(filepath.Join(t.TempDir(), "restored.csv"))
	restored, err := NewService(dst).RestoreOrders(path, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 1, restored)

	got, err := dst.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.Unshipped, got[0].Status)
}

func TestBackupUnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	svc := NewService(seededStore(t))
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	_, _, err := svc.BackupOrders(dir, FormatJSON)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBackupInvalidFormat(t *testing.T) {
	svc := NewService(seededStore(t))
	_, _, err := svc.BackupOrders(t.TempDir(), "bson")
	assert.Error(t, err)
}

func TestValidateBackupFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(store.NewStore(filepath.Join(dir, "orders.csv")))

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	assert.EqualError(t, svc.ValidateBackupFile(empty, FormatCSV), "backup file is empty")

	data := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(data, []byte("[]"), 0644))
	assert.Error(t, svc.ValidateBackupFile(data, FormatCSV))
	assert.NoError(t, svc.ValidateBackupFile(data, FormatJSON))

	assert.Error(t, svc.ValidateBackupFile(filepath.Join(dir, "missing.csv"), FormatCSV))
}

func TestDetectFormatUnknown(t *testing.T) {
	_, err := DetectFormat("orders.bson")
	assert.Error(t, err)
}
