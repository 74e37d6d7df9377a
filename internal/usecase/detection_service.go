package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/visionscan/backend/internal/domain"
)

// DetectionServiceConfig holds configuration for the detection service
type DetectionServiceConfig struct {
	FuzzyThreshold     float64
	EnableDebugLogging bool
}

// DetectionService coordinates one detection run: verify the session, take an
// inventory snapshot, ask the vision model for guesses and resolve each guess
// against the snapshot. It holds no mutable state, so concurrent detection
// requests are independent.
type DetectionService struct {
	sessions  domain.SessionRepository
	inventory domain.InventoryRepository
	vision    domain.VisionDetector
	matcher   *MatchingService
}

// NewDetectionService creates a new detection service with dependencies
func NewDetectionService(
	sessions domain.SessionRepository,
	inventory domain.InventoryRepository,
	vision domain.VisionDetector,
	config DetectionServiceConfig,
) *DetectionService {
	matcher := NewMatchingService(MatchConfig{
		FuzzyThreshold:     config.FuzzyThreshold,
		EnableDebugLogging: config.EnableDebugLogging,
	})

	return &DetectionService{
		sessions:  sessions,
		inventory: inventory,
		vision:    vision,
		matcher:   matcher,
	}
}

// RunDetection detects products on the image and resolves them to inventory
// records. Guesses the matcher cannot resolve are dropped, not reported as
// errors. Flow: session check -> inventory snapshot -> vision model -> match
// each guess -> assemble outcomes.
func (s *DetectionService) RunDetection(ctx context.Context, sessionID, imageBase64 string) (*domain.DetectionReport, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive() {
		return nil, domain.ErrSessionNotActive
	}

	records, err := s.inventory.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory snapshot: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrEmptyInventory
	}

	names := make([]string, len(records))
	for i, record := range records {
		names[i] = record.Name
	}

	guesses, processingMs, err := s.vision.DetectProducts(ctx, imageBase64, names)
	if err != nil {
		return nil, err
	}

	results := make([]domain.DetectionOutcome, 0, len(guesses))
	for _, guess := range guesses {
		match := s.matcher.MatchProduct(guess.ProductName, records)
		if match == nil {
			log.Printf("[DETECT] no inventory match for %q, dropping", guess.ProductName)
			continue
		}

		results = append(results, domain.DetectionOutcome{
			InventoryID: match.Record.ID,
			Name:        match.Record.Name,
			SKU:         match.Record.SKU,
			Confidence:  guess.Confidence,
			Quantity:    guess.Quantity,
			MatchedFrom: match.MatchedFrom,
		})
	}

	return &domain.DetectionReport{
		Results:          results,
		ProcessingTimeMs: processingMs,
		ModelUsed:        s.vision.Model(),
	}, nil
}
