package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snipurl-platform/internal/model"
	"snipurl-platform/internal/store"
)

func newAnalyticsEnv(t *testing.T) (*AnalyticsService, store.LinkStore, store.ClickStore) {
	t.Helper()
	db := newTestDB(t)
	links := store.NewLinkStore(db)
	clicks := store.NewClickStore(db)
	return NewAnalyticsService(links, clicks), links, clicks
}

func seedLink(t *testing.T, links store.LinkStore, aliasName string) *model.Link {
	t.Helper()
	link := &model.Link{
		ID:          uuid.NewString(),
		OriginalURL: "https://example.com/" + aliasName,
		Alias:       aliasName,
		Name:        "example.com",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, links.Create(context.Background(), link))
	return link
}

func seedClick(t *testing.T, clicks store.ClickStore, linkID, country string, at time.Time) {
	t.Helper()
	require.NoError(t, clicks.Append(context.Background(), &model.ClickEvent{
		ID:        uuid.NewString(),
		LinkID:    linkID,
		Country:   country,
		CreatedAt: at,
	}))
}

func TestSummarize_ZeroState(t *testing.T) {
	analytics, _, _ := newAnalyticsEnv(t)

	summary, err := analytics.Summarize(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.TotalLinks)
	assert.Zero(t, summary.TotalClicks)
	assert.Equal(t, "N/A", summary.TopCountry)
	assert.Zero(t, summary.AverageCtr)
	assert.Empty(t, summary.ClicksByCountry)
	require.Len(t, summary.ClicksByDate, 7)
	for _, bucket := range summary.ClicksByDate {
		assert.Zero(t, bucket.Clicks)
		assert.NotEmpty(t, bucket.Date)
	}
}

func TestSummarize_AggregatesLedger(t *testing.T) {
	analytics, links, clicks := newAnalyticsEnv(t)
	now := time.Now()
	analytics.now = func() time.Time { return now }

	first := seedLink(t, links, "one")
	second := seedLink(t, links, "two")

	seedClick(t, clicks, first.ID, "Germany", now)
	seedClick(t, clicks, first.ID, "Germany", now.Add(-time.Hour))
	seedClick(t, clicks, second.ID, "Japan", now.AddDate(0, 0, -2))
	// Outside the trailing week; still counted in totals and countries.
	seedClick(t, clicks, second.ID, "Brazil", now.AddDate(0, 0, -30))

	summary, err := analytics.Summarize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.TotalLinks)
	assert.Equal(t, int64(4), summary.TotalClicks, "totals come from the ledger, not the counters")
	assert.Equal(t, "Germany", summary.TopCountry)
	assert.InDelta(t, 2.0, summary.AverageCtr, 0.001)

	require.Len(t, summary.ClicksByDate, 7)
	var weekTotal int64
	for _, bucket := range summary.ClicksByDate {
		weekTotal += bucket.Clicks
	}
	assert.Equal(t, int64(3), weekTotal, "date series covers the trailing week only")
	assert.Equal(t, summary.ClicksByDate[6].Date, now.Format("Jan 2"), "series ends today, ascending")

	require.Len(t, summary.ClicksByCountry, 3)
	assert.Equal(t, store.CountryCount{Country: "Germany", Clicks: 2}, summary.ClicksByCountry[0])
}

func TestSummarize_AverageCtrRounding(t *testing.T) {
	analytics, links, clicks := newAnalyticsEnv(t)

	first := seedLink(t, links, "a")
	seedLink(t, links, "b")
	seedLink(t, links, "c")

	for i := 0; i < 2; i++ {
		seedClick(t, clicks, first.ID, "Canada", time.Now())
	}

	summary, err := analytics.Summarize(context.Background())
	require.NoError(t, err)
	// 2 clicks over 3 links rounds to two decimal places.
	assert.InDelta(t, 0.67, summary.AverageCtr, 0.001)
}

func TestUserStats(t *testing.T) {
	analytics, links, clicks := newAnalyticsEnv(t)

	stats, err := analytics.UserStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalLinks)
	assert.Zero(t, stats.TotalClicks)

	link := seedLink(t, links, "counted")
	seedClick(t, clicks, link.ID, "France", time.Now())

	stats, err = analytics.UserStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalLinks)
	assert.Equal(t, int64(1), stats.TotalClicks)
}
