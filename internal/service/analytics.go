package service

import (
	"context"
	"math"
	"time"

	"snipurl-platform/internal/store"
)

const topCountriesLimit = 10

// DateCount is one calendar-day bucket of the trailing-week series.
type DateCount struct {
	Date   string `json:"date"` // "Jan 2"
	Clicks int64  `json:"clicks"`
}

// Summary is the dashboard snapshot. AverageCtr is a clicks-per-link density
// (total clicks / total links), not an impression-based click-through rate.
type Summary struct {
	TotalLinks      int64                `json:"total_links"`
	TotalClicks     int64                `json:"total_clicks"`
	TopCountry      string               `json:"top_country"`
	AverageCtr      float64              `json:"average_ctr"`
	ClicksByDate    []DateCount          `json:"clicks_by_date"`
	ClicksByCountry []store.CountryCount `json:"clicks_by_country"`
}

// UserStats is the quick-stats shape for the dashboard header.
type UserStats struct {
	TotalLinks  int64 `json:"total_links"`
	TotalClicks int64 `json:"total_clicks"`
}

// AnalyticsService computes read-only summaries over the link store and the
// click ledger. Totals come from the ledger, the ground truth, never from
// summing per-link counters.
type AnalyticsService struct {
	links  store.LinkStore
	clicks store.ClickStore
	now    func() time.Time
}

func NewAnalyticsService(links store.LinkStore, clicks store.ClickStore) *AnalyticsService {
	return &AnalyticsService{links: links, clicks: clicks, now: time.Now}
}

// Summarize returns a best-effort snapshot. An empty store produces zeros and
// sentinels, never an error.
func (s *AnalyticsService) Summarize(ctx context.Context) (*Summary, error) {
	totalLinks, err := s.links.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalClicks, err := s.clicks.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	byCountry, err := s.clicks.TopCountries(ctx, topCountriesLimit)
	if err != nil {
		return nil, err
	}
	topCountry := "N/A"
	if len(byCountry) > 0 {
		topCountry = byCountry[0].Country
	}
	if byCountry == nil {
		byCountry = []store.CountryCount{}
	}

	byDate, err := s.clicksByDate(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalLinks:      totalLinks,
		TotalClicks:     totalClicks,
		TopCountry:      topCountry,
		AverageCtr:      clicksPerLink(totalClicks, totalLinks),
		ClicksByDate:    byDate,
		ClicksByCountry: byCountry,
	}, nil
}

func (s *AnalyticsService) UserStats(ctx context.Context) (*UserStats, error) {
	totalLinks, err := s.links.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalClicks, err := s.clicks.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &UserStats{TotalLinks: totalLinks, TotalClicks: totalClicks}, nil
}

// clicksByDate buckets the trailing week including today into 7 ascending
// calendar-day entries, zero-filled.
func (s *AnalyticsService) clicksByDate(ctx context.Context) ([]DateCount, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowStart := today.AddDate(0, 0, -6)

	events, err := s.clicks.QueryByTimeWindow(ctx, windowStart, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, 7)
	for _, event := range events {
		counts[event.CreatedAt.In(now.Location()).Format("Jan 2")]++
	}

	buckets := make([]DateCount, 0, 7)
	for i := 0; i < 7; i++ {
		day := windowStart.AddDate(0, 0, i)
		key := day.Format("Jan 2")
		buckets = append(buckets, DateCount{Date: key, Clicks: counts[key]})
	}
	return buckets, nil
}

func clicksPerLink(totalClicks, totalLinks int64) float64 {
	if totalLinks == 0 {
		return 0
	}
	return math.Round(float64(totalClicks)/float64(totalLinks)*100) / 100
}
