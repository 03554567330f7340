package reminderRepo

import (
	"context"
	"time"

	"lunchbox/models"
)

// MarkerClaimer makes "fire reminder kind on date" an atomic decision.
// Claim returns models.ErrAlreadyClaimed when another caller already owns
// the (kind, date) pair.
type MarkerClaimer interface {
	Claim(ctx context.Context, kind models.ReminderKind, date string, firedAt time.Time) error
	// Release drops a claim so a later tick can retry.
	Release(ctx context.Context, kind models.ReminderKind, date string) error
}
