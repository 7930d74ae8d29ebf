package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rentwheels/rental-admin/internal/common"
	"github.com/rentwheels/rental-admin/internal/domain"
	"github.com/rentwheels/rental-admin/internal/repository"
	pkgcache "github.com/rentwheels/rental-admin/pkg/cache"
	"github.com/rs/zerolog"
)

var entryMutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "content_entry_mutations_total",
		Help: "Content entry mutations by kind, operation and result",
	},
	[]string{"kind", "op", "result"},
)

// EntryService defines the business logic for content entries
type EntryService interface {
	List(ctx context.Context, kind domain.EntryKind, ownerID string) ([]domain.EntryResponse, error)
	Get(ctx context.Context, id string) (*domain.EntryResponse, error)
	Create(ctx context.Context, req *domain.CreateEntryRequest) (*domain.EntryResponse, error)
	Update(ctx context.Context, id string, req *domain.UpdateEntryRequest) (*domain.EntryResponse, error)
	Delete(ctx context.Context, kind domain.EntryKind, id string) error
	Reorder(ctx context.Context, req *domain.ReorderEntriesRequest) error
}

type entryService struct {
	repo  repository.EntryRepository
	cache pkgcache.Service
	log   zerolog.Logger
	newID func() string
}

// NewEntryService creates a new EntryService. cache may be nil.
func NewEntryService(repo repository.EntryRepository, cache pkgcache.Service, log *zerolog.Logger) EntryService {
	l := zerolog.Nop()
	if log != nil {
		l = log.With().Str("component", "entry_service").Logger()
	}
	return &entryService{
		repo:  repo,
		cache: cache,
		log:   l,
		newID: func() string { return uuid.New().String() },
	}
}

// List retrieves one owner's entries, read-through the cache
func (s *entryService) List(ctx context.Context, kind domain.EntryKind, ownerID string) ([]domain.EntryResponse, error) {
	if !kind.IsValid() || ownerID == "" {
		return nil, fmt.Errorf("%w: kind and owner_id are required", common.ErrInvalidInput)
	}

	if s.cacheEnabled() {
		if data, err := s.cache.GetEntries(ctx, string(kind), ownerID); err == nil {
			var cached []domain.EntryResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	entries, err := s.repo.ListByOwner(kind, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.EntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = entry.ToResponse()
	}

	if s.cacheEnabled() {
		if err := s.cache.SetEntries(ctx, string(kind), ownerID, responses); err != nil {
			s.log.Warn().Err(err).Str("kind", string(kind)).Str("owner_id", ownerID).Msg("entry list cache write failed")
		}
	}

	return responses, nil
}

// Get retrieves an entry by ID
func (s *entryService) Get(ctx context.Context, id string) (*domain.EntryResponse, error) {
	entry, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	resp := entry.ToResponse()
	return &resp, nil
}

// Create creates a new entry at the end of its owner's list
func (s *entryService) Create(ctx context.Context, req *domain.CreateEntryRequest) (*domain.EntryResponse, error) {
	req.Normalize()
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown kind %q", common.ErrInvalidInput, req.Kind)
	}
	if req.OwnerID == "" || req.Question == "" || req.Answer == "" {
		return nil, fmt.Errorf("%w: owner_id, question and answer are required", common.ErrInvalidInput)
	}

	maxOrder, err := s.repo.GetMaxOrderNum(req.Kind, req.OwnerID)
	if err != nil {
		s.observe(req.Kind, "create", err)
		return nil, err
	}

	entry := &domain.ContentEntry{
		ID:       s.newID(),
		Kind:     req.Kind,
		OwnerID:  req.OwnerID,
		Question: req.Question,
		Answer:   req.Answer,
		OrderNum: maxOrder + 1,
	}

	if err := s.repo.Create(entry); err != nil {
		s.observe(req.Kind, "create", err)
		return nil, err
	}
	s.observe(req.Kind, "create", nil)
	s.invalidate(ctx, entry.Kind, entry.OwnerID)

	resp := entry.ToResponse()
	return &resp, nil
}

// Update replaces question and answer of an entry
func (s *entryService) Update(ctx context.Context, id string, req *domain.UpdateEntryRequest) (*domain.EntryResponse, error) {
	req.Normalize()
	if req.Question == "" || req.Answer == "" {
		return nil, fmt.Errorf("%w: question and answer are required", common.ErrInvalidInput)
	}

	entry, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	entry.Question = req.Question
	entry.Answer = req.Answer

	if err := s.repo.Update(entry); err != nil {
		s.observe(entry.Kind, "update", err)
		return nil, err
	}
	s.observe(entry.Kind, "update", nil)
	s.invalidate(ctx, entry.Kind, entry.OwnerID)

	resp := entry.ToResponse()
	return &resp, nil
}

// Delete deletes an entry of the given kind
func (s *entryService) Delete(ctx context.Context, kind domain.EntryKind, id string) error {
	entry, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if entry.Kind != kind {
		return fmt.Errorf("%w: %w", common.ErrEntryNotFound, common.ErrKindMismatch)
	}

	if err := s.repo.Delete(id); err != nil {
		s.observe(kind, "delete", err)
		return err
	}
	s.observe(kind, "delete", nil)
	s.invalidate(ctx, entry.Kind, entry.OwnerID)
	return nil
}

// Reorder persists the display order of one owner's entries
func (s *entryService) Reorder(ctx context.Context, req *domain.ReorderEntriesRequest) error {
	if !req.Kind.IsValid() || req.OwnerID == "" || len(req.IDs) == 0 {
		return fmt.Errorf("%w: kind, owner_id and ids are required", common.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(req.IDs))
	for _, id := range req.IDs {
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %q", common.ErrInvalidInput, id)
		}
		seen[id] = true
	}

	if err := s.repo.ReorderBulk(req.Kind, req.OwnerID, req.IDs); err != nil {
		s.observe(req.Kind, "reorder", err)
		return err
	}
	s.observe(req.Kind, "reorder", nil)
	s.invalidate(ctx, req.Kind, req.OwnerID)
	return nil
}

func (s *entryService) cacheEnabled() bool {
	return s.cache != nil && s.cache.IsAvailable()
}

func (s *entryService) invalidate(ctx context.Context, kind domain.EntryKind, ownerID string) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.InvalidateEntries(ctx, string(kind), ownerID); err != nil {
		s.log.Warn().Err(err).Str("kind", string(kind)).Str("owner_id", ownerID).Msg("entry list cache invalidation failed")
	}
}

func (s *entryService) observe(kind domain.EntryKind, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	entryMutations.WithLabelValues(string(kind), op, result).Inc()
}
