package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shadematch/backend/internal/domain"
	"github.com/shadematch/backend/internal/metrics"
)

// Recommendation sources
const (
	SourceMatcher = "matcher"
	SourceCache   = "cache"
)

// RecommendationServiceConfig holds configuration for the recommendation service
type RecommendationServiceConfig struct {
	CacheTTL time.Duration
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

// RecommendationService turns a match request into ranked shades with
// shopping links, caching the rendered recommendation.
type RecommendationService struct {
	cache    domain.CacheRepository
	matcher  *MatchingService
	resolver *ShoppingLinkResolver
	cacheTTL time.Duration
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewRecommendationService creates a new recommendation service with dependencies
func NewRecommendationService(
	cache domain.CacheRepository,
	matcher *MatchingService,
	resolver *ShoppingLinkResolver,
	config RecommendationServiceConfig,
) *RecommendationService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RecommendationService{
		cache:    cache,
		matcher:  matcher,
		resolver: resolver,
		cacheTTL: cacheTTL,
		logger:   logger.Named("recommendations"),
		metrics:  config.Metrics,
	}
}

// Recommend validates the request and returns ranked matches.
// Flow: parse -> check cache -> match -> attach shopping links -> cache -> return
func (s *RecommendationService) Recommend(
	ctx context.Context,
	request *domain.MatchRequest,
) (*domain.Recommendation, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}

	undertone, depth, tier, err := parseMatchRequest(request)
	if err != nil {
		s.metrics.ObserveMatch(metrics.TierUnknown, metrics.OutcomeInvalid, 0)
		return nil, err
	}

	selection := domain.SelectionFor(tier)
	cacheKey := generateCacheKey(undertone, depth, selection)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		s.metrics.CacheHit()
		s.metrics.ObserveMatch(string(tier), matchOutcome(cached.Matches), len(cached.Matches))
		// Cached entries are keyed by selection, so premium and lifetime share one.
		cached.Tier = tier
		cached.Source = SourceCache
		return cached, nil
	}
	s.metrics.CacheMiss()

	matches, err := s.matcher.Match(undertone, depth, tier)
	if err != nil {
		s.metrics.ObserveMatch(string(tier), metrics.OutcomeError, 0)
		return nil, err
	}

	for i := range matches {
		matches[i].ShoppingURL = s.resolver.ResolveShoppingURL(matches[i].Foundation.Brand, matches[i].Foundation.ShadeName)
	}

	recommendation := &domain.Recommendation{
		Undertone: undertone,
		SkinTone:  depth,
		Tier:      tier,
		Selection: selection,
		Matches:   matches,
		Source:    SourceMatcher,
	}

	if err := s.setInCache(ctx, cacheKey, recommendation); err != nil {
		s.logger.Warn("failed to cache recommendation", zap.String("key", cacheKey), zap.Error(err))
	}

	s.metrics.ObserveMatch(string(tier), matchOutcome(matches), len(matches))
	s.logger.Debug("recommendation computed",
		zap.String("key", cacheKey),
		zap.Int("matches", len(matches)))

	return recommendation, nil
}

// parseMatchRequest validates and normalizes the raw request fields
func parseMatchRequest(request *domain.MatchRequest) (domain.Undertone, domain.SkinToneDepth, domain.Tier, error) {
	undertone, err := domain.ParseUndertone(request.Undertone)
	if err != nil {
		return "", "", "", err
	}
	depth, err := domain.ParseSkinToneDepth(request.SkinTone)
	if err != nil {
		return "", "", "", err
	}
	tier, err := domain.ParseTier(request.Tier)
	if err != nil {
		return "", "", "", err
	}
	return undertone, depth, tier, nil
}

// generateCacheKey builds "matches:{undertone}:{depth}:{selection}".
// Scoring only depends on whether the tier is premium, which the selection captures.
func generateCacheKey(undertone domain.Undertone, depth domain.SkinToneDepth, selection domain.CatalogSelection) string {
	return fmt.Sprintf("matches:%s:%s:%s", undertone, depth, selection)
}

func matchOutcome(matches []domain.MatchResult) string {
	if len(matches) == 0 {
		return metrics.OutcomeEmpty
	}
	return metrics.OutcomeOK
}

// getFromCache retrieves a recommendation from cache
func (s *RecommendationService) getFromCache(ctx context.Context, key string) (*domain.Recommendation, error) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return nil, err
	}

	var recommendation domain.Recommendation
	if err := json.Unmarshal(data, &recommendation); err != nil {
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return nil, domain.ErrCacheMiss
	}

	return &recommendation, nil
}

// setInCache stores a recommendation in cache
func (s *RecommendationService) setInCache(ctx context.Context, key string, recommendation *domain.Recommendation) error {
	data, err := json.Marshal(recommendation)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, data, s.cacheTTL)
}
