package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/ports"
)

// HomeCache abstracts the read-through listing cache (Redis).
type HomeCache interface {
	Get(ctx context.Context, id string) (*domain.Home, error)
	Set(ctx context.Context, home *domain.Home) error
	Invalidate(ctx context.Context, id string) error
}

type homeService struct {
	repo  ports.HomeRepository
	cache HomeCache
	log   zerolog.Logger
}

// NewHomeService returns a HomeService implementation. cache may be nil, in
// which case every read goes to the repository.
func NewHomeService(repo ports.HomeRepository, cache HomeCache, log zerolog.Logger) ports.HomeService {
	return &homeService{repo: repo, cache: cache, log: log}
}

func (s *homeService) CreateHome(ctx context.Context, input ports.CreateHomeInput) (*domain.Home, error) {
	images := make([]domain.Image, 0, len(input.ImageURLs))
	for _, u := range input.ImageURLs {
		images = append(images, domain.Image{URL: u})
	}

	now := time.Now().UTC()
	home := &domain.Home{
		Address:      input.Address,
		City:         input.City,
		Price:        input.Price,
		LandSizeSqm:  input.LandSizeSqm,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		PropertyType: input.PropertyType,
		Images:       images,
		RealtorID:    input.RealtorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, home)
	if err != nil {
		return nil, fmt.Errorf("create home: %w", err)
	}

	s.log.Info().Str("home_id", created.ID).Int64("realtor_id", created.RealtorID).Msg("home created")
	return created, nil
}

func (s *homeService) GetHome(ctx context.Context, id string) (*domain.Home, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	home, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, home); err != nil {
			s.log.Warn().Err(err).Str("home_id", id).Msg("failed to cache home")
		}
	}
	return home, nil
}

func (s *homeService) ListHomes(ctx context.Context, filter ports.HomeFilter) ([]domain.Home, error) {
	return s.repo.Find(ctx, filter)
}

func (s *homeService) UpdateHome(ctx context.Context, id string, input ports.UpdateHomeInput, actor *domain.User) (*domain.Home, error) {
	home, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && home.RealtorID != actor.ID {
		return nil, domain.ErrForbidden
	}

	if input.Address != nil {
		home.Address = *input.Address
	}
	if input.City != nil {
		home.City = *input.City
	}
	if input.Price != nil {
		home.Price = *input.Price
	}
	if input.LandSizeSqm != nil {
		home.LandSizeSqm = *input.LandSizeSqm
	}
	if input.Bedrooms != nil {
		home.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		home.Bathrooms = *input.Bathrooms
	}
	if input.PropertyType != nil {
		home.PropertyType = *input.PropertyType
	}
	home.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, home); err != nil {
		return nil, fmt.Errorf("update home: %w", err)
	}
	s.invalidate(ctx, id)
	return home, nil
}

func (s *homeService) DeleteHome(ctx context.Context, id string, actor *domain.User) error {
	home, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin && home.RealtorID != actor.ID {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete home: %w", err)
	}
	s.invalidate(ctx, id)
	s.log.Info().Str("home_id", id).Int64("actor_id", actor.ID).Msg("home deleted")
	return nil
}

func (s *homeService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("home_id", id).Msg("failed to invalidate home cache")
	}
}
