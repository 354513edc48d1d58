package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"service-desk/internal/repositories"
	"service-desk/pkg/constants"
	apperrors "service-desk/pkg/errors"
)

type RefreshServiceInterface interface {
	// Revision returns the current request-list revision. It only grows, so
	// a client that saw the same value can skip refetching.
	Revision(ctx context.Context) (int64, error)
}

type RefreshService struct {
	cache  repositories.CacheRepositoryInterface
	logger *zap.Logger
}

func NewRefreshService(cache repositories.CacheRepositoryInterface, logger *zap.Logger) RefreshServiceInterface {
	return &RefreshService{cache: cache, logger: logger}
}

func (s *RefreshService) Revision(ctx context.Context) (int64, error) {
	raw, err := s.cache.Get(ctx, constants.CacheKeyRequestsRevision)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("read requests revision: %w", err)
	}
	rev, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warn("corrupt requests revision", zap.String("value", raw))
		return 0, fmt.Errorf("parse requests revision: %w", err)
	}
	return rev, nil
}
