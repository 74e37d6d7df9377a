package domain

import "context"

// InventoryRepository defines the interface for inventory persistence
type InventoryRepository interface {
	Create(ctx context.Context, record InventoryRecord) (*InventoryRecord, error)
	GetByID(ctx context.Context, id string) (*InventoryRecord, error)
	List(ctx context.Context, limit, offset int) ([]InventoryRecord, int, error)
	GetAll(ctx context.Context) ([]InventoryRecord, error)
	Update(ctx context.Context, id string, update InventoryUpdate) (*InventoryRecord, error)
	AdjustStock(ctx context.Context, id string, delta int) (*InventoryRecord, error)
}

// SessionRepository defines the interface for scan session persistence
type SessionRepository interface {
	Create(ctx context.Context) (*ScanSession, error)
	GetByID(ctx context.Context, id string) (*ScanSession, error)
	SetStatus(ctx context.Context, id, status string) (*ScanSession, error)
}

// VisionDetector defines the interface for the vision-language model client.
// DetectProducts returns the model's product guesses plus the model-reported
// processing time in milliseconds.
type VisionDetector interface {
	DetectProducts(ctx context.Context, imageBase64 string, candidateNames []string) ([]DetectionGuess, int64, error)
	Model() string
}
