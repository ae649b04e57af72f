package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shadematch/backend/internal/domain"
	"github.com/shadematch/backend/internal/metrics"
)

// SavedService manages a user's bookmarked shades
type SavedService struct {
	repo    domain.SavedFoundationRepository
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewSavedService creates a saved-foundation service over repo
func NewSavedService(repo domain.SavedFoundationRepository, logger *zap.Logger, m *metrics.Metrics) *SavedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SavedService{
		repo:    repo,
		logger:  logger.Named("saved"),
		metrics: m,
	}
}

// Save bookmarks a shade. Saving the same shade twice returns the existing bookmark.
func (s *SavedService) Save(ctx context.Context, userID, brand, shadeName string) (*domain.SavedFoundation, error) {
	userID, brand, shadeName, err := normalizeSaved(userID, brand, shadeName)
	if err != nil {
		s.metrics.ObserveSaved("save", metrics.OutcomeInvalid)
		return nil, err
	}

	saved, err := s.repo.Save(ctx, userID, brand, shadeName)
	if err != nil {
		s.metrics.ObserveSaved("save", metrics.OutcomeError)
		s.logger.Error("save failed", zap.String("user", userID), zap.Error(err))
		return nil, err
	}

	s.metrics.ObserveSaved("save", metrics.OutcomeOK)
	return saved, nil
}

// Remove deletes a bookmark. Returns ErrNotFound when it does not exist.
func (s *SavedService) Remove(ctx context.Context, userID, brand, shadeName string) error {
	userID, brand, shadeName, err := normalizeSaved(userID, brand, shadeName)
	if err != nil {
		s.metrics.ObserveSaved("remove", metrics.OutcomeInvalid)
		return err
	}

	if err := s.repo.Remove(ctx, userID, brand, shadeName); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.ObserveSaved("remove", metrics.OutcomeEmpty)
		} else {
			s.metrics.ObserveSaved("remove", metrics.OutcomeError)
			s.logger.Error("remove failed", zap.String("user", userID), zap.Error(err))
		}
		return err
	}

	s.metrics.ObserveSaved("remove", metrics.OutcomeOK)
	return nil
}

// List returns a user's bookmarks, newest first
func (s *SavedService) List(ctx context.Context, userID string) ([]domain.SavedFoundation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}

	saved, err := s.repo.List(ctx, userID)
	if err != nil {
		s.metrics.ObserveSaved("list", metrics.OutcomeError)
		return nil, err
	}
	s.metrics.ObserveSaved("list", metrics.OutcomeOK)
	return saved, nil
}

func normalizeSaved(userID, brand, shadeName string) (string, string, string, error) {
	userID = strings.TrimSpace(userID)
	brand = strings.TrimSpace(brand)
	shadeName = strings.TrimSpace(shadeName)

	switch {
	case userID == "":
		return "", "", "", fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	case brand == "":
		return "", "", "", fmt.Errorf("%w: brand is required", domain.ErrInvalidRequest)
	case shadeName == "":
		return "", "", "", fmt.Errorf("%w: shade name is required", domain.ErrInvalidRequest)
	}
	return userID, brand, shadeName, nil
}
