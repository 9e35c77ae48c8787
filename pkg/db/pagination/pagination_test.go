package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "42", OccurredAt: "2026-03-14T00:00:00Z"})
	require.NoError(t, err)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "42", cursor.ID)
	assert.Equal(t, "2026-03-14T00:00:00Z", cursor.OccurredAt)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("!!!")
	assert.ErrorIs(t, err, ErrInvalidPageToken)
}

func TestBuildCursorPageInfo(t *testing.T) {
	items := []int{1, 2, 3}
	extract := func(v int) string { return string(rune('a' + v)) }

	page, info := BuildCursorPageInfo(items, 2, extract)
	assert.Equal(t, []int{1, 2}, page)
	assert.True(t, info.HasMore)
	assert.Equal(t, "c", info.NextPageToken)

	page, info = BuildCursorPageInfo(items, 3, extract)
	assert.Equal(t, items, page)
	assert.False(t, info.HasMore)
	assert.Empty(t, info.NextPageToken)
}

func TestSizeClamps(t *testing.T) {
	assert.Equal(t, DefaultPageSize, Pagination{}.Size())
	assert.Equal(t, MaxPageSize, Pagination{PageSize: 1000}.Size())
	assert.Equal(t, 10, Pagination{PageSize: 10}.Size())
}
