package domain

import "strings"

// DetectionGuess is one product hypothesis emitted by the vision model for a
// single image. Guesses are transient: built by the Ollama client, consumed
// once by the matcher, never persisted.
type DetectionGuess struct {
	ProductName string
	Confidence  float64
	Quantity    int
}

// NewDetectionGuess builds a guess with the model-output invariants applied:
// the name is trimmed, confidence is clamped to [0,1] and quantity is floored
// at 1. The caller is still responsible for discarding empty-name guesses.
func NewDetectionGuess(name string, confidence float64, quantity int) DetectionGuess {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	if quantity < 1 {
		quantity = 1
	}
	return DetectionGuess{
		ProductName: strings.TrimSpace(name),
		Confidence:  confidence,
		Quantity:    quantity,
	}
}

// MatchResult ties a detected name to the inventory record it resolved to.
// Absence of a match is represented by a nil *MatchResult, never by a
// partially filled value.
type MatchResult struct {
	Record      *InventoryRecord
	MatchedFrom string
}

// DetectionOutcome is one successfully matched guess, ready for display or
// checkout.
type DetectionOutcome struct {
	InventoryID string  `json:"inventory_id"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Confidence  float64 `json:"confidence"`
	Quantity    int     `json:"quantity"`
	MatchedFrom string  `json:"matched_from"`
}

// DetectionReport is the full result of one detection run.
type DetectionReport struct {
	Results          []DetectionOutcome `json:"results"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
	ModelUsed        string             `json:"model_used"`
}
