package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"snipurl-platform/internal/model"
	"snipurl-platform/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.OpenSQLite(dsn)
	require.NoError(t, err)

	// One connection keeps sqlite's shared-cache locking out of the tests.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func newLink(aliasName string) *model.Link {
	return &model.Link{
		ID:          uuid.NewString(),
		OriginalURL: "https://example.com/" + aliasName,
		Alias:       aliasName,
		Name:        "example.com",
		CreatedAt:   time.Now(),
	}
}

func TestLinkStore_CreateEnforcesAliasUniqueness(t *testing.T) {
	links := NewLinkStore(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, links.Create(ctx, newLink("taken")))

	err := links.Create(ctx, newLink("taken"))
	assert.ErrorIs(t, err, ErrAliasTaken)

	// The losing insert must not have left a second row.
	count, err := links.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLinkStore_GetAndList(t *testing.T) {
	links := NewLinkStore(newTestDB(t))
	ctx := context.Background()

	first := newLink("first")
	first.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, links.Create(ctx, first))
	second := newLink("second")
	require.NoError(t, links.Create(ctx, second))

	byAlias, err := links.GetByAlias(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, first.ID, byAlias.ID)

	byID, err := links.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", byID.Alias)

	_, err = links.GetByAlias(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := links.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Alias, "most recently created first")
}

func TestLinkStore_UpdateMutatesOnlyNameAndURL(t *testing.T) {
	links := NewLinkStore(newTestDB(t))
	ctx := context.Background()

	link := newLink("stable")
	require.NoError(t, links.Create(ctx, link))

	newName := "renamed"
	newURL := "https://example.org/moved"
	updated, err := links.Update(ctx, link.ID, LinkUpdate{Name: &newName, OriginalURL: &newURL})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, newURL, updated.OriginalURL)
	assert.Equal(t, "stable", updated.Alias, "alias never changes")

	_, err = links.Update(ctx, "no-such-id", LinkUpdate{Name: &newName})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLinkStore_DeleteIsIdempotentAndCascades(t *testing.T) {
	db := newTestDB(t)
	links := NewLinkStore(db)
	clicks := NewClickStore(db)
	ctx := context.Background()

	link := newLink("doomed")
	require.NoError(t, links.Create(ctx, link))
	require.NoError(t, clicks.Append(ctx, &model.ClickEvent{
		ID: uuid.NewString(), LinkID: link.ID, Country: "Germany", CreatedAt: time.Now(),
	}))

	require.NoError(t, links.Delete(ctx, link.ID))

	_, err := links.GetByID(ctx, link.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	orphans, err := clicks.CountByLink(ctx, link.ID)
	require.NoError(t, err)
	assert.Zero(t, orphans, "click events cascade with their link")

	// Second delete of the same id is not an error.
	assert.NoError(t, links.Delete(ctx, link.ID))
	assert.NoError(t, links.Delete(ctx, "never-existed"))
}

func TestLinkStore_IncrementClicksLosesNoUpdates(t *testing.T) {
	links := NewLinkStore(newTestDB(t))
	ctx := context.Background()

	link := newLink("busy")
	require.NoError(t, links.Create(ctx, link))

	const increments = 20
	var wg sync.WaitGroup
	for i := 0; i < increments; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, links.IncrementClicks(ctx, link.ID))
		}()
	}
	wg.Wait()

	reloaded, err := links.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(increments), reloaded.Clicks)
}

func TestClickStore_AppendWithIncrementKeepsCounterAndLedgerTogether(t *testing.T) {
	db := newTestDB(t)
	links := NewLinkStore(db)
	clicks := NewClickStore(db)
	ctx := context.Background()

	link := newLink("tracked")
	require.NoError(t, links.Create(ctx, link))

	for i := 0; i < 3; i++ {
		err := clicks.AppendWithIncrement(ctx, &model.ClickEvent{
			ID: uuid.NewString(), LinkID: link.ID, Country: "France", CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	reloaded, err := links.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), reloaded.Clicks)

	ledger, err := clicks.CountByLink(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), ledger)
}

func TestClickStore_QueryByTimeWindow(t *testing.T) {
	db := newTestDB(t)
	links := NewLinkStore(db)
	clicks := NewClickStore(db)
	ctx := context.Background()

	link := newLink("windowed")
	require.NoError(t, links.Create(ctx, link))

	now := time.Now()
	for _, age := range []time.Duration{time.Hour, 48 * time.Hour, 200 * time.Hour} {
		require.NoError(t, clicks.Append(ctx, &model.ClickEvent{
			ID: uuid.NewString(), LinkID: link.ID, Country: "Japan", CreatedAt: now.Add(-age),
		}))
	}

	recent, err := clicks.QueryByTimeWindow(ctx, now.Add(-72*time.Hour), now)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestClickStore_TopCountriesIsDeterministic(t *testing.T) {
	db := newTestDB(t)
	links := NewLinkStore(db)
	clicks := NewClickStore(db)
	ctx := context.Background()

	link := newLink("geo")
	require.NoError(t, links.Create(ctx, link))

	add := func(country string, n int) {
		for i := 0; i < n; i++ {
			require.NoError(t, clicks.Append(ctx, &model.ClickEvent{
				ID: uuid.NewString(), LinkID: link.ID, Country: country, CreatedAt: time.Now(),
			}))
		}
	}
	add("Brazil", 3)
	add("Canada", 1)
	add("Australia", 1)

	top, err := clicks.TopCountries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, CountryCount{Country: "Brazil", Clicks: 3}, top[0])
	// Equal counts break ties alphabetically.
	assert.Equal(t, "Australia", top[1].Country)
	assert.Equal(t, "Canada", top[2].Country)

	limited, err := clicks.TopCountries(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "Brazil", limited[0].Country)
}
