package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"

	"snipurl-platform/internal/alias"
	"snipurl-platform/internal/model"
	"snipurl-platform/internal/security"
	"snipurl-platform/internal/store"
)

// LinkService is the link lifecycle manager: validated create, update and
// delete. All validation runs before any store mutation; the atomic insert in
// the store is the only side effect of a create.
type LinkService struct {
	links      store.LinkStore
	generator  *alias.Generator
	production bool
}

func NewLinkService(links store.LinkStore, generator *alias.Generator, production bool) *LinkService {
	return &LinkService{
		links:      links,
		generator:  generator,
		production: production,
	}
}

// CreateInput is the creation request. Alias and Name are optional.
type CreateInput struct {
	OriginalURL string
	Alias       string
	Name        string
}

func (s *LinkService) Create(ctx context.Context, input CreateInput) (*model.Link, error) {
	if err := security.ValidateURL(input.OriginalURL, s.production); err != nil {
		return nil, err
	}

	chosenAlias := input.Alias
	if chosenAlias != "" {
		if err := security.ValidateAlias(chosenAlias); err != nil {
			return nil, err
		}
		taken, err := s.links.AliasExists(ctx, chosenAlias)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, store.ErrAliasTaken
		}
	} else {
		generated, err := s.generator.Generate(ctx)
		if err != nil {
			return nil, err
		}
		chosenAlias = generated
	}

	name := input.Name
	if name == "" {
		name = defaultName(input.OriginalURL)
	}
	name, err := security.SanitizeName(name)
	if err != nil {
		return nil, err
	}

	link := &model.Link{
		ID:          uuid.NewString(),
		OriginalURL: input.OriginalURL,
		Alias:       chosenAlias,
		Name:        name,
		Clicks:      0,
		CreatedAt:   time.Now(),
	}

	if input.Alias != "" {
		// Caller-chosen alias: a duplicate-key loss means the name really is
		// taken, so the conflict surfaces as-is.
		if err := s.links.Create(ctx, link); err != nil {
			return nil, err
		}
		return link, nil
	}

	// Generated alias: the insert can still lose the uniqueness race with a
	// concurrent create that drew the same candidate. The caller never chose
	// this alias, so the conflict is invisible to them: draw a fresh one and
	// retry within the same attempt budget.
	for attempt := 0; attempt < alias.MaxAttempts; attempt++ {
		err := s.links.Create(ctx, link)
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, store.ErrAliasTaken) {
			return nil, err
		}
		regenerated, genErr := s.generator.Generate(ctx)
		if genErr != nil {
			return nil, genErr
		}
		link.Alias = regenerated
	}
	return nil, alias.ErrGenerationExhausted
}

// UpdateInput carries the mutable fields. Nil means leave unchanged.
type UpdateInput struct {
	Name        *string
	OriginalURL *string
}

func (s *LinkService) Update(ctx context.Context, id string, input UpdateInput) (*model.Link, error) {
	update := store.LinkUpdate{}

	if input.OriginalURL != nil {
		if err := security.ValidateURL(*input.OriginalURL, s.production); err != nil {
			return nil, err
		}
		update.OriginalURL = input.OriginalURL
	}
	if input.Name != nil {
		cleaned, err := security.SanitizeName(*input.Name)
		if err != nil {
			return nil, err
		}
		update.Name = &cleaned
	}

	return s.links.Update(ctx, id, update)
}

func (s *LinkService) Delete(ctx context.Context, id string) error {
	return s.links.Delete(ctx, id)
}

func (s *LinkService) Get(ctx context.Context, id string) (*model.Link, error) {
	return s.links.GetByID(ctx, id)
}

func (s *LinkService) List(ctx context.Context) ([]model.Link, error) {
	return s.links.List(ctx)
}

// defaultName falls back to the destination hostname, matching what users see
// in their link table when they skip the name field.
func defaultName(originalURL string) string {
	parsed, err := url.Parse(originalURL)
	if err != nil || parsed.Hostname() == "" {
		return originalURL
	}
	return parsed.Hostname()
}
