package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/khata/internal/payroll/domain"
	"github.com/smallbiznis/khata/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.PayrollRecord{}))
	return conn
}

func record(id, org snowflake.ID, code, number string, at time.Time) *domain.PayrollRecord {
	return &domain.PayrollRecord{
		ID:            id,
		OrgID:         org,
		EmployeeCode:  code,
		EmployeeName:  "Employee " + code,
		Period:        at.Format("2006-01"),
		PayslipNumber: number,
		Status:        domain.StatusProcessed,
		BaseSalary:    decimal.NewFromInt(20000),
		GrossSalary:   decimal.NewFromInt(30000),
		NetSalary:     decimal.NewFromInt(27250),
		ProcessedAt:   at,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
}

func TestInsertAndFind(t *testing.T) {
	conn := setupDB(t)
	repo := Provide()
	ctx := context.Background()
	at := time.Date(2026, 3, 31, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, conn, record(1, 10, "E1", "PAY-202603-001", at)))

	found, err := repo.FindByID(ctx, conn, 10, 1)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "PAY-202603-001", found.PayslipNumber)
	assert.True(t, decimal.NewFromInt(27250).Equal(found.NetSalary))

	otherOrg, err := repo.FindByID(ctx, conn, 11, 1)
	require.NoError(t, err)
	assert.Nil(t, otherOrg)
}

func TestInsertRejectsSecondRunForPeriod(t *testing.T) {
	conn := setupDB(t)
	repo := Provide()
	ctx := context.Background()
	at := time.Date(2026, 3, 31, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, conn, record(1, 10, "E1", "PAY-202603-001", at)))
	err := repo.Insert(ctx, conn, record(2, 10, "E1", "PAY-202603-002", at))
	assert.Error(t, err)
}

func TestCounterCountsMonth(t *testing.T) {
	conn := setupDB(t)
	repo := Provide()
	ctx := context.Background()

	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, conn, record(1, 10, "E1", "PAY-202603-001", march)))
	require.NoError(t, repo.Insert(ctx, conn, record(2, 10, "E2", "PAY-202603-002", march.Add(time.Hour))))
	require.NoError(t, repo.Insert(ctx, conn, record(3, 10, "E3", "PAY-202604-001", april)))
	require.NoError(t, repo.Insert(ctx, conn, record(4, 20, "E1", "PAY-202603-001", march)))

	counter := NewCounter(conn, repo)
	count, err := counter.CountInRange(ctx, 10, domain.PayslipPrefix, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), april)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
