package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// BroadcastJob is one administrator-initiated fan-out. It is never stored.
type BroadcastJob struct {
	ID         uuid.UUID
	Body       string
	Recipients []int64
}

// BroadcastResult is the per-job delivery summary
type BroadcastResult struct {
	Sent   int
	Failed int
	Total  int
}

// Summary returns the report shown to the administrator
func (r BroadcastResult) Summary() string {
	return fmt.Sprintf("📢 Broadcast finished\n\n✅ Sent: %d\n❌ Failed: %d\n👥 Total: %d", r.Sent, r.Failed, r.Total)
}
