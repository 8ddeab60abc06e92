// Package engine implements the equity and profit allocation core: converting
// investments into equity grants and profit declarations into multi-party
// credits, with per-channel serialization and a journal row for every balance
// mutation.
package engine

import (
	"errors"

	"gorm.io/gorm"
)

// MinInvestment is the smallest accepted investment amount (₹).
const MinInvestment float64 = 500

// equityEpsilon absorbs float noise when comparing issued equity against the
// offered pool.
const equityEpsilon = 1e-9

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrBelowMinimum         = errors.New("below minimum investment")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrEquityExhausted      = errors.New("equity pool exhausted")
	ErrInvalidSplit         = errors.New("invalid profit split")
	ErrSplitCeilingExceeded = errors.New("split ceiling exceeded")
	ErrDistributionFailed   = errors.New("distribution failed")
	ErrIdempotencyConflict  = errors.New("idempotency key conflict")
	ErrAlreadyMember        = errors.New("already a team member")
	ErrNotFound             = errors.New("not found")
)

// Engine executes all mutating operations on channels, balances and the
// append-only receipt logs. Every operation runs in one database transaction
// and takes the channel row lock first, so concurrent requests against the
// same channel serialize while different channels proceed in parallel.
type Engine struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Engine {
	return &Engine{db: db}
}
