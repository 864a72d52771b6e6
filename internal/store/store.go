package store

import (
	"context"
	"errors"
	"time"

	"snipurl-platform/internal/model"
)

var (
	// ErrAliasTaken is returned when an insert loses the uniqueness race.
	ErrAliasTaken = errors.New("alias already taken")
	// ErrNotFound is returned for lookups and updates on unknown ids/aliases.
	ErrNotFound = errors.New("link not found")
)

// LinkUpdate carries the mutable fields of a link. Nil means leave unchanged;
// the alias is deliberately absent, it never changes after creation.
type LinkUpdate struct {
	Name        *string
	OriginalURL *string
}

// CountryCount is one row of a per-country click breakdown.
type CountryCount struct {
	Country string `json:"country"`
	Clicks  int64  `json:"clicks"`
}

// LinkStore persists links and guarantees alias uniqueness.
type LinkStore interface {
	// Create inserts a new link. The existence check and insert are a single
	// atomic operation backed by the unique alias index.
	Create(ctx context.Context, link *model.Link) error
	GetByAlias(ctx context.Context, alias string) (*model.Link, error)
	GetByID(ctx context.Context, id string) (*model.Link, error)
	// List returns all links, most recently created first.
	List(ctx context.Context) ([]model.Link, error)
	Update(ctx context.Context, id string, update LinkUpdate) (*model.Link, error)
	// Delete is idempotent and cascades the link's click events.
	Delete(ctx context.Context, id string) error
	// IncrementClicks adds one to the counter without a read-modify-write race.
	IncrementClicks(ctx context.Context, id string) error
	AliasExists(ctx context.Context, alias string) (bool, error)
	CountAll(ctx context.Context) (int64, error)
}

// ClickStore is the append-only click ledger.
type ClickStore interface {
	Append(ctx context.Context, event *model.ClickEvent) error
	// AppendWithIncrement writes the ledger row and bumps the link counter in
	// one transaction, so the two can never drift apart.
	AppendWithIncrement(ctx context.Context, event *model.ClickEvent) error
	CountAll(ctx context.Context) (int64, error)
	CountByLink(ctx context.Context, linkID string) (int64, error)
	QueryByTimeWindow(ctx context.Context, start, end time.Time) ([]model.ClickEvent, error)
	// TopCountries orders by count descending, ties broken alphabetically.
	TopCountries(ctx context.Context, limit int) ([]CountryCount, error)
}
