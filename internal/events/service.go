package events

import (
	"context"
	"fmt"

	"tessera/internal/shared/constants"
	"tessera/pkg/cache"
	"tessera/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context, query EventListQuery) ([]Event, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

// SetCacheService enables the read-through cache for event lookups
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := &Event{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Time:        req.Time,
		ImageURL:    req.ImageURL,
	}

	if _, err := event.StartsAt(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.DeletePattern(ctx, constants.CacheKeyEventList+"*"); err != nil {
			logger.GetDefault().Debug("failed to invalidate event list cache", "error", err)
		}
	}

	return event, nil
}

func (s *service) GetEvent(ctx context.Context, id string) (*Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrEventNotFound
	}

	if s.cacheService != nil {
		var cached Event
		cacheKey := constants.BuildEventDetailCacheKey(id)
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		cacheKey := constants.BuildEventDetailCacheKey(id)
		if err := s.cacheService.Set(ctx, cacheKey, event, constants.TTL_EVENT_DETAIL); err != nil {
			logger.GetDefault().Debug("failed to cache event detail", "error", err)
		}
	}

	return event, nil
}

func (s *service) ListEvents(ctx context.Context, query EventListQuery) ([]Event, error) {
	events, err := s.repo.ListEvents(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}
