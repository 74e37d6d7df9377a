package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/visionscan/backend/internal/domain"
	"golang.org/x/time/rate"
)

// generateRequest is the Ollama /api/generate request body.
type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images"`
	Stream bool     `json:"stream"`
}

// generateResponse is the subset of the Ollama reply the pipeline uses:
// the free-text model output and the model-reported evaluation duration
// in nanoseconds.
type generateResponse struct {
	Response     string `json:"response"`
	EvalDuration int64  `json:"eval_duration"`
}

// Client handles communication with an Ollama server running a
// vision-language model.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Ollama client. The timeout bounds the whole
// inference request; a detection that exceeds it fails, it is never retried.
func NewClient(endpoint, model string, timeout time.Duration) *Client {
	// A local model server processes one image at a time anyway; cap the
	// request rate so a burst of concurrent scans queues here instead of
	// piling up connections.
	limiter := rate.NewLimiter(rate.Limit(2), 4)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoint:    strings.TrimRight(endpoint, "/"),
		model:       model,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose logging of raw model replies
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Model returns the model identifier used for inference.
func (c *Client) Model() string {
	return c.model
}

// DetectProducts sends the image to the vision model with an inventory-aware
// prompt and returns the extracted product guesses plus the model-reported
// processing time in whole milliseconds. Input violations fail fast with
// domain.ErrInvalidInput before any network call.
func (c *Client) DetectProducts(ctx context.Context, imageBase64 string, candidateNames []string) ([]domain.DetectionGuess, int64, error) {
	if imageBase64 == "" {
		return nil, 0, fmt.Errorf("%w: image base64 cannot be empty", domain.ErrInvalidInput)
	}
	if len(candidateNames) == 0 {
		return nil, 0, fmt.Errorf("%w: inventory list cannot be empty", domain.ErrInvalidInput)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limiter error: %w", err)
	}

	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: buildInventoryPrompt(candidateNames),
		Images: []string{imageBase64},
		Stream: false,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := c.endpoint + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, mapTransportError(err, c.endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[OLLAMA] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
		return nil, 0, fmt.Errorf("%w: status %d", domain.ErrModelAPIFailure, resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, 0, fmt.Errorf("%w: decoding response: %v", domain.ErrModelAPIFailure, err)
	}

	if c.debug {
		log.Printf("[OLLAMA] raw model reply: %s", genResp.Response)
	}

	guesses := extractGuesses(genResp.Response)
	processingMs := genResp.EvalDuration / int64(time.Millisecond)

	log.Printf("[OLLAMA] model %s returned %d guesses in %dms", c.model, len(guesses), processingMs)
	return guesses, processingMs, nil
}

// Heartbeat checks that the Ollama endpoint is reachable. Used at startup to
// warn early about a misconfigured or stopped model server.
func (c *Client) Heartbeat(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapTransportError(err, c.endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrModelAPIFailure, resp.StatusCode)
	}
	return nil
}

// mapTransportError translates low-level HTTP client failures into the domain
// error taxonomy: connection refused means the model server is down, a
// deadline hit means the inference ran too long, everything else is an
// upstream failure carrying the original message.
func mapTransportError(err error, endpoint string) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		log.Printf("[OLLAMA] request to %s timed out", endpoint)
		return fmt.Errorf("%w: %v", domain.ErrDetectionTimeout, err)
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		log.Printf("[OLLAMA] failed to connect to %s", endpoint)
		return fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}

	log.Printf("[OLLAMA] API error: %v", err)
	return fmt.Errorf("%w: %v", domain.ErrModelAPIFailure, err)
}

// buildInventoryPrompt embeds the candidate product names into the detection
// prompt. The instructions are deliberately strict: the model must answer with
// a JSON object, only name products from the list, and omit anything it is not
// confident about.
func buildInventoryPrompt(candidateNames []string) string {
	inventory := strings.Join(candidateNames, ", ")
	return fmt.Sprintf(`Analyze this image and identify products from our inventory.

Available products: %s

Please respond with a JSON object containing detected products. Format:
{
  "products": [
    {"name": "product_name_from_list", "confidence": 0.95, "quantity": 1},
    ...
  ]
}

Only include products that you see in the image from the available list.
Set confidence as a decimal 0-1.
Be strict - only report products you're confident about.
If no products detected, return {"products": []}`, inventory)
}
