package usecase

import (
	"log"
	"strings"

	"github.com/visionscan/backend/internal/domain"
)

// defaultFuzzyThreshold is the minimum sequenceRatio score required to accept
// a non-exact match.
const defaultFuzzyThreshold = 0.6

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	FuzzyThreshold     float64
	EnableDebugLogging bool
}

// MatchingService resolves a detected product name to at most one inventory
// record using a layered strategy: exact SKU, exact name, alias, then fuzzy
// similarity. Cheaper unambiguous tiers always win over the fuzzy sweep so an
// exact signal can never be overridden by an accidental higher fuzzy score on
// an unrelated item.
type MatchingService struct {
	fuzzyThreshold     float64
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	threshold := config.FuzzyThreshold
	if threshold <= 0 {
		threshold = defaultFuzzyThreshold
	}

	return &MatchingService{
		fuzzyThreshold:     threshold,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// MatchProduct resolves detectedName against the candidate records. It
// returns nil when nothing matches; absence is a normal outcome, not an
// error. The tiers short-circuit: the first hit wins and later tiers are
// never evaluated.
func (s *MatchingService) MatchProduct(detectedName string, candidates []domain.InventoryRecord) *domain.MatchResult {
	normalized := strings.ToLower(strings.TrimSpace(detectedName))
	if normalized == "" || len(candidates) == 0 {
		return nil
	}

	// 1. Exact SKU match
	for i := range candidates {
		if strings.ToLower(candidates[i].SKU) == normalized {
			return s.result(&candidates[i], detectedName, "sku")
		}
	}

	// 2. Exact name match
	for i := range candidates {
		if strings.ToLower(candidates[i].Name) == normalized {
			return s.result(&candidates[i], detectedName, "name")
		}
	}

	// 3. Alias match
	for i := range candidates {
		for _, alias := range candidates[i].Aliases {
			if strings.ToLower(alias) == normalized {
				return s.result(&candidates[i], detectedName, "alias")
			}
		}
	}

	// 4. Fuzzy match over every name and alias. Strictly-greater comparison
	// keeps the first-encountered candidate on ties.
	var best *domain.InventoryRecord
	bestScore := 0.0

	for i := range candidates {
		score := sequenceRatio(normalized, strings.ToLower(candidates[i].Name))
		if score > bestScore {
			bestScore = score
			best = &candidates[i]
		}

		for _, alias := range candidates[i].Aliases {
			score = sequenceRatio(normalized, strings.ToLower(alias))
			if score > bestScore {
				bestScore = score
				best = &candidates[i]
			}
		}
	}

	if s.enableDebugLogging {
		log.Printf("[MATCH] fuzzy best for %q: score=%.3f threshold=%.3f", detectedName, bestScore, s.fuzzyThreshold)
	}

	if best != nil && bestScore >= s.fuzzyThreshold {
		return s.result(best, detectedName, "fuzzy")
	}

	return nil
}

func (s *MatchingService) result(record *domain.InventoryRecord, detectedName, tier string) *domain.MatchResult {
	if s.enableDebugLogging {
		log.Printf("[MATCH] %q -> %q (sku=%s) via %s tier", detectedName, record.Name, record.SKU, tier)
	}
	return &domain.MatchResult{
		Record:      record,
		MatchedFrom: detectedName,
	}
}
