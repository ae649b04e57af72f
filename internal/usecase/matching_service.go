package usecase

import (
	"cmp"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/shadematch/backend/internal/catalog"
	"github.com/shadematch/backend/internal/domain"
)

// Undertone scoring. The two columns accumulate independently.
const (
	undertoneExactMatch        = 40
	undertoneExactConfidence   = 30
	undertoneNeutralMatch      = 20
	undertoneNeutralConfidence = 15
)

// Depth scoring by index distance on the depth scale
const (
	depthExactMatch      = 35
	depthExactConfidence = 25
	depthNearMatch       = 20 // distance 1
	depthNearConfidence  = 15
	depthCloseMatch      = 10 // distance 2
	depthCloseConfidence = 8
)

// Brand bonuses
const (
	premiumBrandMatch      = 15 // premium tier only
	premiumBrandConfidence = 20
	highlyRatedMatch       = 10
	highlyRatedConfidence  = 15
)

// Filtering and truncation
const (
	maxScore           = 100
	minMatchScore      = 30
	freeResultLimit    = 4
	premiumResultLimit = 12
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	EnableDebugLogging bool
	Logger             *zap.Logger
}

// MatchingService scores catalog shades against a skin classification.
// It only reads its catalog, so one instance can serve concurrent callers.
type MatchingService struct {
	catalog            *catalog.Catalog
	logger             *zap.Logger
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service over an immutable catalog
func NewMatchingService(c *catalog.Catalog, config MatchConfig) *MatchingService {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MatchingService{
		catalog:            c,
		logger:             logger.Named("matcher"),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Match ranks the catalog for an undertone and depth. Premium and lifetime
// tiers score the premium catalog too and get up to 12 results; free gets 4.
// Results below 30 are dropped and ties keep catalog order.
//
// Returns ErrInvalidArgument before scoring when any input is out of domain.
func (s *MatchingService) Match(
	undertone domain.Undertone,
	depth domain.SkinToneDepth,
	tier domain.Tier,
) ([]domain.MatchResult, error) {
	if !undertone.IsValid() {
		return nil, fmt.Errorf("%w: undertone %q", domain.ErrInvalidArgument, undertone)
	}
	if !depth.IsValid() {
		return nil, fmt.Errorf("%w: skin tone depth %q", domain.ErrInvalidArgument, depth)
	}
	if !tier.IsValid() {
		return nil, fmt.Errorf("%w: tier %q", domain.ErrInvalidArgument, tier)
	}

	selection := domain.SelectionFor(tier)
	candidates := s.catalog.Records(selection)

	if s.enableDebugLogging {
		s.logger.Debug("scoring candidates",
			zap.String("undertone", string(undertone)),
			zap.String("depth", string(depth)),
			zap.String("selection", string(selection)),
			zap.Int("candidates", len(candidates)))
	}

	results := make([]domain.MatchResult, 0, len(candidates))
	for _, record := range candidates {
		result := scoreCandidate(record, undertone, depth, tier)

		if s.enableDebugLogging {
			s.logger.Debug("scored",
				zap.String("id", record.ID),
				zap.Int("match", result.MatchScore),
				zap.Int("confidence", result.ConfidenceScore),
				zap.Strings("reasons", result.Reasons))
		}

		if result.MatchScore < minMatchScore {
			continue
		}
		results = append(results, result)
	}

	slices.SortStableFunc(results, func(a, b domain.MatchResult) int {
		return cmp.Compare(b.MatchScore, a.MatchScore)
	})

	limit := freeResultLimit
	if tier.IsPremium() {
		limit = premiumResultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// scoreCandidate applies every additive rule to one record
func scoreCandidate(
	record domain.FoundationRecord,
	undertone domain.Undertone,
	depth domain.SkinToneDepth,
	tier domain.Tier,
) domain.MatchResult {
	match, confidence := 0, 0
	var reasons []string

	switch {
	case record.Undertone == undertone:
		match += undertoneExactMatch
		confidence += undertoneExactConfidence
		reasons = append(reasons, fmt.Sprintf("Perfect %s undertone match", undertone))
	case record.Undertone == domain.UndertoneNeutral || undertone == domain.UndertoneNeutral:
		match += undertoneNeutralMatch
		confidence += undertoneNeutralConfidence
		reasons = append(reasons, "Neutral undertone works across warm and cool skin")
	}

	switch record.SkinToneDepth.Distance(depth) {
	case 0:
		match += depthExactMatch
		confidence += depthExactConfidence
		reasons = append(reasons, fmt.Sprintf("Exact %s skin tone depth", depth))
	case 1:
		match += depthNearMatch
		confidence += depthNearConfidence
		reasons = append(reasons, fmt.Sprintf("Very close skin tone depth (%s)", record.SkinToneDepth))
	case 2:
		match += depthCloseMatch
		confidence += depthCloseConfidence
		reasons = append(reasons, fmt.Sprintf("Nearby skin tone depth (%s), may need blending", record.SkinToneDepth))
	}

	if tier.IsPremium() && catalog.IsPremiumBrand(record.Brand) {
		match += premiumBrandMatch
		confidence += premiumBrandConfidence
		reasons = append(reasons, fmt.Sprintf("Premium %s formula included with your plan", record.Brand))
	}

	if catalog.IsHighlyRatedBrand(record.Brand) {
		match += highlyRatedMatch
		confidence += highlyRatedConfidence
		reasons = append(reasons, "Highly rated formula")
	}

	return domain.MatchResult{
		Foundation:      record,
		MatchScore:      clampScore(match),
		ConfidenceScore: clampScore(confidence),
		Reasons:         reasons,
	}
}

func clampScore(score int) int {
	return max(0, min(score, maxScore))
}
