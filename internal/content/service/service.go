// Package service serves site content from the upstream API.
package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"mealshare/internal/apiclient"
	"mealshare/internal/content/models"
	dErrors "mealshare/pkg/domain-errors"
	"mealshare/pkg/platform/sentinel"
	"mealshare/pkg/requestcontext"
)

// API is the subset of the upstream client the content service needs.
type API interface {
	GetHero(ctx context.Context) (models.Hero, error)
	UpdateHero(ctx context.Context, in models.HeroInput) (models.Hero, error)
	UploadHeroImage(ctx context.Context, file apiclient.Upload) (models.Hero, error)
	List(ctx context.Context, col models.Collection, out any) error
	Get(ctx context.Context, col models.Collection, id string, out any) error
	Create(ctx context.Context, col models.Collection, in, out any) error
	Update(ctx context.Context, col models.Collection, id string, in, out any) error
	Delete(ctx context.Context, col models.Collection, id string) error
	Upload(ctx context.Context, col models.Collection, id string, file apiclient.Upload, out any) error
}

type Service struct {
	api    API
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(api API, opts ...Option) *Service {
	s := &Service{api: api, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Home fetches the hero and every collection concurrently. Any failure fails the page.
func (s *Service) Home(ctx context.Context) (models.Home, error) {
	var home models.Home
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hero, err := s.hero(gctx)
		home.Hero = hero
		return err
	})
	g.Go(func() error {
		return s.api.List(gctx, models.CollectionPublications, &home.Publications)
	})
	g.Go(func() error {
		return s.api.List(gctx, models.CollectionPressReleases, &home.PressReleases)
	})
	g.Go(func() error {
		return s.api.List(gctx, models.CollectionProgrammes, &home.Programmes)
	})
	if err := g.Wait(); err != nil {
		return models.Home{}, s.apiError(ctx, "home", err)
	}
	home.Publications = nonNil(home.Publications)
	home.PressReleases = nonNil(home.PressReleases)
	home.Programmes = nonNil(home.Programmes)
	return home, nil
}

// Hero returns the banner with tagline defaults applied.
func (s *Service) Hero(ctx context.Context) (models.Hero, error) {
	hero, err := s.hero(ctx)
	if err != nil {
		return models.Hero{}, s.apiError(ctx, "hero", err)
	}
	return hero, nil
}

// hero treats a missing upstream hero as an empty one.
func (s *Service) hero(ctx context.Context) (models.Hero, error) {
	hero, err := s.api.GetHero(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.Hero{}.WithDefaults(), nil
	}
	if err != nil {
		return models.Hero{}, err
	}
	return hero.WithDefaults(), nil
}

func (s *Service) UpdateHero(ctx context.Context, in models.HeroInput) (models.Hero, error) {
	if err := models.Validate(in); err != nil {
		return models.Hero{}, err
	}
	hero, err := s.api.UpdateHero(ctx, in)
	if err != nil {
		return models.Hero{}, s.apiError(ctx, "hero", err)
	}
	s.logger.InfoContext(ctx, "hero updated",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", requestcontext.ActorID(ctx),
	)
	return hero.WithDefaults(), nil
}

func (s *Service) UploadHeroImage(ctx context.Context, file apiclient.Upload) (models.Hero, error) {
	hero, err := s.api.UploadHeroImage(ctx, file)
	if err != nil {
		return models.Hero{}, s.apiError(ctx, "hero", err)
	}
	s.logger.InfoContext(ctx, "hero image uploaded",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", requestcontext.ActorID(ctx),
		"filename", file.Filename,
	)
	return hero.WithDefaults(), nil
}

// List returns every item of col as a typed slice.
func (s *Service) List(ctx context.Context, col models.Collection) (any, error) {
	out, ok := models.NewList(col)
	if !ok {
		return nil, unknownCollection(col)
	}
	if err := s.api.List(ctx, col, out); err != nil {
		return nil, s.apiError(ctx, string(col), err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, col models.Collection, id string) (any, error) {
	out, ok := models.NewItem(col)
	if !ok {
		return nil, unknownCollection(col)
	}
	if err := s.api.Get(ctx, col, id, out); err != nil {
		return nil, s.apiError(ctx, string(col), err)
	}
	return out, nil
}

// Create validates input, which must be the DTO models.NewInput returns for col.
func (s *Service) Create(ctx context.Context, col models.Collection, input any) (any, error) {
	out, ok := models.NewItem(col)
	if !ok {
		return nil, unknownCollection(col)
	}
	if err := models.Validate(input); err != nil {
		return nil, err
	}
	if err := s.api.Create(ctx, col, input, out); err != nil {
		return nil, s.apiError(ctx, string(col), err)
	}
	s.logger.InfoContext(ctx, "content created",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", requestcontext.ActorID(ctx),
		"collection", string(col),
	)
	return out, nil
}

func (s *Service) Update(ctx context.Context, col models.Collection, id string, input any) (any, error) {
	out, ok := models.NewItem(col)
	if !ok {
		return nil, unknownCollection(col)
	}
	if err := models.Validate(input); err != nil {
		return nil, err
	}
	if err := s.api.Update(ctx, col, id, input, out); err != nil {
		return nil, s.apiError(ctx, string(col), err)
	}
	s.logger.InfoContext(ctx, "content updated",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", requestcontext.ActorID(ctx),
		"collection", string(col),
		"id", id,
	)
	return out, nil
}

func (s *Service) Delete(ctx context.Context, col models.Collection, id string) error {
	if !col.IsValid() {
		return unknownCollection(col)
	}
	if err := s.api.Delete(ctx, col, id); err != nil {
		return s.apiError(ctx, string(col), err)
	}
	s.logger.InfoContext(ctx, "content deleted",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", requestcontext.ActorID(ctx),
		"collection", string(col),
		"id", id,
	)
	return nil
}

// Upload forwards an image (or programme icon) and returns the updated item.
func (s *Service) Upload(ctx context.Context, col models.Collection, id string, file apiclient.Upload) (any, error) {
	out, ok := models.NewItem(col)
	if !ok {
		return nil, unknownCollection(col)
	}
	if err := s.api.Upload(ctx, col, id, file, out); err != nil {
		return nil, s.apiError(ctx, string(col), err)
	}
	s.logger.InfoContext(ctx, "content file uploaded",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", requestcontext.ActorID(ctx),
		"collection", string(col),
		"id", id,
		"filename", file.Filename,
	)
	return out, nil
}

func unknownCollection(col models.Collection) error {
	return dErrors.New(dErrors.CodeNotFound, "unknown content collection: "+string(col))
}

func (s *Service) apiError(ctx context.Context, what string, err error) error {
	if _, ok := dErrors.As(err); ok {
		return err
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, what+" not found")
	}

	s.logger.WarnContext(ctx, "content api call failed",
		"request_id", requestcontext.RequestID(ctx),
		"content", what,
		"error", err.Error(),
	)

	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "content service timed out")
	}
	var statusErr *apiclient.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Status {
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return dErrors.Wrap(err, dErrors.CodeBadRequest, "content service rejected the request")
		case http.StatusUnauthorized, http.StatusForbidden:
			return dErrors.Wrap(err, dErrors.CodeForbidden, "content service refused the request")
		}
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "content service unavailable")
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
