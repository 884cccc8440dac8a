package entity

import "time"

// PasswordResetToken rows survive consumption; used tokens stay behind with
// used=true as an audit trail. They are only removed when the owning account
// is deleted.
type PasswordResetToken struct {
	ID        uint64
	UserID    uint64
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
