package utils

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

var mu sync.Mutex
var seededRand *rand.Rand

func init() {
	seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))
}

// GenerateOrderID builds a unique journal order id for a user's ledger row.
func GenerateOrderID(userID uint) string {
	mu.Lock()
	defer mu.Unlock()

	nowNano := time.Now().UnixNano()
	nanoPart := nowNano % 1000000

	randPart := seededRand.Intn(900) + 100

	return fmt.Sprintf("CF-%06d%03d%d", nanoPart, randPart, userID)
}

// NewReferenceID returns a fresh uuid for investment and distribution
// receipts. Callers may pass their own idempotency key instead.
func NewReferenceID() string {
	return uuid.NewString()
}
