package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSearchQueryCopiesParams(t *testing.T) {
	params := map[string]string{"searchLocation": "London"}
	q := NewSearchQuery(params)

	params["searchLocation"] = "Manchester"

	assert.Equal(t, "London", q.Params["searchLocation"])
	assert.Equal(t, 0, q.Index)
}

func TestWithIndexDerivesNewQuery(t *testing.T) {
	q := NewSearchQuery(map[string]string{"channel": "BUY"})

	q24 := q.WithIndex(24)
	q48 := q24.WithIndex(48)

	assert.Equal(t, 0, q.Index)
	assert.Equal(t, 24, q24.Index)
	assert.Equal(t, 48, q48.Index)
	assert.Equal(t, "BUY", q48.Params["channel"])
}

func TestWithIndexClampsNegative(t *testing.T) {
	q := NewSearchQuery(nil).WithIndex(-24)
	assert.Equal(t, 0, q.Index)
}

func TestCrawlStateBudget(t *testing.T) {
	s := NewCrawlState(3)

	assert.Equal(t, 1, s.Page)
	assert.False(t, s.BudgetReached())

	s.RecordScraped()
	s.RecordScraped()
	assert.False(t, s.BudgetReached())

	s.RecordScraped()
	assert.True(t, s.BudgetReached())
	assert.Equal(t, 3, s.Scraped)

	// после достижения бюджета счётчик не растёт
	s.RecordScraped()
	assert.Equal(t, 3, s.Scraped)
}

func TestCrawlStateZeroBudget(t *testing.T) {
	s := NewCrawlState(0)
	assert.True(t, s.BudgetReached())

	s.RecordScraped()
	assert.Equal(t, 0, s.Scraped)
}

func TestAdvancePage(t *testing.T) {
	s := NewCrawlState(10)
	s.AdvancePage()
	s.AdvancePage()
	assert.Equal(t, 3, s.Page)
}

func TestHasMinimumData(t *testing.T) {
	price := "£450,000"
	location := "1 Test Street, London"

	tests := []struct {
		name   string
		record PropertyRecord
		want   bool
	}{
		{"price only", PropertyRecord{Price: &price}, true},
		{"location only", PropertyRecord{Location: &location}, true},
		{"both", PropertyRecord{Price: &price, Location: &location}, true},
		{"neither", PropertyRecord{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.HasMinimumData())
		})
	}
}
