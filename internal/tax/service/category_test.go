package service

import (
	"context"
	"testing"

	taxdomain "github.com/smallbiznis/khata/internal/tax/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func codes(categories []taxdomain.Category) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.Code)
	}
	return out
}

func TestSuggestCategoryCaseInsensitive(t *testing.T) {
	got := SuggestCategory("Team LUNCH at a Restaurant")
	require.NotEmpty(t, got)
	assert.Equal(t, "9963", got[0].Code)
	assert.True(t, got[0].SuggestedRate.Equal(d("5")))
}

func TestSuggestCategoryKeepsTableOrder(t *testing.T) {
	got := SuggestCategory("laptop repair service")
	assert.Equal(t, []string{"8471", "9997"}, codes(got))
}

func TestSuggestCategoryMatchesDescriptionSubstring(t *testing.T) {
	got := SuggestCategory("transport")
	assert.Equal(t, []string{"9964", "9965"}, codes(got))
}

func TestSuggestCategoryNoMatch(t *testing.T) {
	got := SuggestCategory("zzzz")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, SuggestCategory("   "))
}

func TestServiceSuggestCategoryUsesCache(t *testing.T) {
	svc := NewService(ServiceParams{Log: zap.NewNop()}).(*Service)

	first := svc.SuggestCategory(context.Background(), "Courier charges")
	require.Equal(t, []string{"9965"}, codes(first))
	assert.Equal(t, 1, svc.categories.Len())

	// callers may mutate their copy without poisoning the cache
	first[0].Code = "mutated"
	second := svc.SuggestCategory(context.Background(), "  courier CHARGES ")
	assert.Equal(t, []string{"9965"}, codes(second))
	assert.Equal(t, 1, svc.categories.Len())
}

func TestServiceComputeAndValidate(t *testing.T) {
	svc := NewService(ServiceParams{Log: zap.NewNop()})

	b, err := svc.Compute(context.Background(), taxdomain.ComputeRequest{
		Direction: taxdomain.DirectionInclusive,
		Amount:    d("1180"),
		Rate:      d("18"),
	})
	require.NoError(t, err)
	assert.True(t, b.BaseAmount.Equal(d("1000")))

	_, err = svc.ValidateRegistrationID(context.Background(), "")
	assert.ErrorIs(t, err, taxdomain.ErrMissingInput)
}

func TestSuggestCategoryIgnoresKeywordsInsideWords(t *testing.T) {
	cases := map[string][]string{
		"apple juice":         {},
		"credit card fees":    {},
		"scarf":               {},
		"current account fee": {"9983"},
		"monthly rent":        {"9972"},
		"car hire":            {"8703"},
		"mobile app build":    {"998314", "8517"},
	}
	for description, want := range cases {
		assert.Equal(t, want, codes(SuggestCategory(description)), description)
	}
}

func TestSuggestCategoryStemsMatchLongerWords(t *testing.T) {
	assert.Equal(t, []string{"9983"}, codes(SuggestCategory("consulting retainer")))
	assert.Equal(t, []string{"9972"}, codes(SuggestCategory("Rental deposit")))
	assert.Equal(t, []string{"6109"}, codes(SuggestCategory("T-Shirts for staff")))
}

func TestContainsKeyword(t *testing.T) {
	assert.True(t, containsKeyword("it services retainer", "it services"))
	assert.False(t, containsKeyword("audit services", "it services"))
	assert.True(t, containsKeyword("car-wash", "car"))
	assert.False(t, containsKeyword("anything", "*"))
}
