package domain

import "time"

// Session status values.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// ScanSession represents one customer checkout session. Detection requests
// are only accepted while the session is active.
type ScanSession struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the session still accepts scans.
func (s *ScanSession) IsActive() bool {
	return s.Status == SessionActive
}

// ValidSessionStatus reports whether status is one of the known values.
func ValidSessionStatus(status string) bool {
	switch status {
	case SessionActive, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}
