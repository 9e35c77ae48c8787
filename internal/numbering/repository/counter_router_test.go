package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang/mock/gomock"
	numberingmock "github.com/smallbiznis/khata/internal/numbering/domain/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterRouterDispatchesByScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	documents := numberingmock.NewMockCounter(ctrl)
	payslips := numberingmock.NewMockCounter(ctrl)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	documents.EXPECT().CountInRange(gomock.Any(), snowflake.ID(1), "INV", from, to).Return(int64(4), nil)
	payslips.EXPECT().CountInRange(gomock.Any(), snowflake.ID(1), "PAY", from, to).Return(int64(9), nil)

	router := NewCounterRouter(documents).Route("PAY", payslips)
	ctx := context.Background()

	n, err := router.CountInRange(ctx, snowflake.ID(1), "INV", from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	n, err = router.CountInRange(ctx, snowflake.ID(1), "PAY", from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
}

func TestCounterRouterWithoutFallback(t *testing.T) {
	_, err := NewCounterRouter(nil).CountInRange(context.Background(), 1, "INV", time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestCounterRouterPropagatesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	documents := numberingmock.NewMockCounter(ctrl)
	boom := errors.New("timeout")
	documents.EXPECT().CountInRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), boom)

	_, err := NewCounterRouter(documents).CountInRange(context.Background(), 1, "INV", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, boom)
}
