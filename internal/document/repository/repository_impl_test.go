package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/khata/internal/document/domain"
	reconciliationdomain "github.com/smallbiznis/khata/internal/reconciliation/domain"
	"github.com/smallbiznis/khata/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Document{}))
	return conn
}

func day(n int) time.Time {
	return time.Date(2026, time.March, n, 12, 0, 0, 0, time.UTC)
}

func doc(id, org snowflake.ID, kind domain.Kind, docType, number, total string, occurred, created time.Time) *domain.Document {
	return &domain.Document{
		ID:             id,
		OrgID:          org,
		Kind:           kind,
		DocumentType:   docType,
		DocumentNumber: number,
		TotalAmount:    decimal.RequireFromString(total),
		Status:         domain.StatusDraft,
		OccurredAt:     occurred,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func TestInsertRejectsDuplicateNumberPerOrg(t *testing.T) {
	conn := setupDB(t)
	repo := Provide()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, conn, doc(1, 10, domain.KindSale, "INV", "INV-202603-001", "10", day(1), day(1))))
	err := repo.Insert(ctx, conn, doc(2, 10, domain.KindSale, "INV", "INV-202603-001", "10", day(1), day(1)))
	require.Error(t, err)
	assert.True(t, db.IsDuplicateKeyErr(err))

	require.NoError(t, repo.Insert(ctx, conn, doc(3, 11, domain.KindSale, "INV", "INV-202603-001", "10", day(1), day(1))))
}

func TestCounterScopesByTypeAndCreationMonth(t *testing.T) {
	conn := setupDB(t)
	repo := Provide()
	ctx := context.Background()

	april := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, conn, doc(1, 10, domain.KindSale, "INV", "INV-202603-001", "10", day(2), day(2))))
	require.NoError(t, repo.Insert(ctx, conn, doc(2, 10, domain.KindSale, "INV", "INV-202603-002", "10", day(3), day(3))))
	require.NoError(t, repo.Insert(ctx, conn, doc(3, 10, domain.KindExpense, "EXP", "EXP-202603-001", "10", day(3), day(3))))
	require.NoError(t, repo.Insert(ctx, conn, doc(4, 10, domain.KindSale, "INV", "INV-202604-001", "10", day(31), april)))
	require.NoError(t, repo.Insert(ctx, conn, doc(5, 20, domain.KindSale, "INV", "INV-202603-001", "10", day(3), day(3))))

	counter := NewCounter(conn, repo)
	count, err := counter.CountInRange(ctx, 10, "INV", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), april)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestLedgerLoaderReturnsWindowInOrder(t *testing.T) {
	conn := setupDB(t)
	repo := Provide()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, conn, doc(3, 10, domain.KindExpense, "EXP", "EXP-202603-001", "90", day(5), day(5))))
	require.NoError(t, repo.Insert(ctx, conn, doc(1, 10, domain.KindSale, "INV", "INV-202603-001", "5000", day(8), day(8))))
	require.NoError(t, repo.Insert(ctx, conn, doc(2, 10, domain.KindSale, "INV", "INV-202603-002", "5000", day(5), day(5))))
	require.NoError(t, repo.Insert(ctx, conn, doc(4, 10, domain.KindSale, "INV", "INV-202603-003", "5000", day(25), day(25))))
	require.NoError(t, repo.Insert(ctx, conn, doc(5, 11, domain.KindSale, "INV", "INV-202603-001", "5000", day(6), day(6))))

	loader := NewLedgerLoader(conn, repo)
	entries, err := loader.ListLedgerEntries(ctx, 10, day(1), day(10))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "2", entries[0].ID)
	assert.Equal(t, "3", entries[1].ID)
	assert.Equal(t, reconciliationdomain.EntryKindExpense, entries[1].Kind)
	assert.Equal(t, "1", entries[2].ID)
	assert.Equal(t, "INV-202603-001", entries[2].DisplayNumber)
	assert.True(t, decimal.NewFromInt(5000).Equal(entries[2].Amount))
}

func TestMarkFiledOnlyOnce(t *testing.T) {
	conn := setupDB(t)
	repo := Provide()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, conn, doc(1, 10, domain.KindSale, "INV", "INV-202603-001", "10", day(1), day(1))))

	ok, err := repo.MarkFiled(ctx, conn, 10, 1, day(2))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkFiled(ctx, conn, 10, 1, day(3))
	require.NoError(t, err)
	assert.False(t, ok)
}
