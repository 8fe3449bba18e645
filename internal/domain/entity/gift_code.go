package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
)

// GiftCode is a single-use code that grants credit
type GiftCode struct {
	ID            uint64
	Code          string
	CreditAmount  int64
	Used          bool
	UsedBy        string
	UsedAt        *time.Time
	TransactionID uint64
	ExpiredAt     *time.Time
	CreatedAt     time.Time
}

// NormalizeGiftCode trims and upper-cases user input
func NormalizeGiftCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Redeemable returns nil when the code can still be redeemed at now
func (g *GiftCode) Redeemable(now time.Time) error {
	if g.Used {
		return errs.ErrGiftCodeUsed
	}
	if g.ExpiredAt != nil && !now.Before(*g.ExpiredAt) {
		return errs.ErrGiftCodeExpired
	}
	return nil
}

// Redeem marks the code as used by the user
func (g *GiftCode) Redeem(userID string, transactionID uint64, now time.Time) error {
	if err := g.Redeemable(now); err != nil {
		return err
	}

	usedAt := now
	g.Used = true
	g.UsedBy = userID
	g.UsedAt = &usedAt
	g.TransactionID = transactionID
	return nil
}
