package ollama

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/visionscan/backend/internal/domain"
)

// extractGuesses recovers structured product guesses from the model's raw
// text reply. Vision models wrap their JSON in conversational filler, so the
// extractor takes the slice between the first '{' and the last '}' and parses
// that. Malformed output is an expected condition, not an error: the worst
// case is an empty guess list. Entries whose fields cannot be coerced are
// skipped individually without aborting the batch.
func extractGuesses(responseText string) []domain.DetectionGuess {
	start := strings.Index(responseText, "{")
	end := strings.LastIndex(responseText, "}")
	if start == -1 || end == -1 || end < start {
		log.Printf("[OLLAMA] no JSON object in model reply (%d bytes)", len(responseText))
		return nil
	}

	var envelope struct {
		Products []json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal([]byte(responseText[start:end+1]), &envelope); err != nil {
		log.Printf("[OLLAMA] failed to parse model reply as JSON: %v", err)
		return nil
	}

	guesses := make([]domain.DetectionGuess, 0, len(envelope.Products))
	for _, raw := range envelope.Products {
		// Quantity is decoded as float64 and truncated, so a model
		// answering "quantity": 2.0 still parses.
		entry := struct {
			Name       string  `json:"name"`
			Confidence float64 `json:"confidence"`
			Quantity   float64 `json:"quantity"`
		}{Quantity: 1}

		if err := json.Unmarshal(raw, &entry); err != nil {
			log.Printf("[OLLAMA] skipping unparseable product entry: %v", err)
			continue
		}

		guess := domain.NewDetectionGuess(entry.Name, entry.Confidence, int(entry.Quantity))
		if guess.ProductName == "" {
			continue
		}
		guesses = append(guesses, guess)
	}

	return guesses
}
