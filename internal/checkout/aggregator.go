package checkout

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"shoppingcart-backend/internal/cart"
	"shoppingcart-backend/internal/dto"
)

// Aggregator derives the monetary summary from the selected cart subset and
// builds the payment payload. One Aggregator per user session; it remembers
// the current logical attempt so a user-initiated retry with unchanged cart
// contents reuses the idempotency key.
type Aggregator struct {
	mu          sync.Mutex
	shippingFee int64
	current     *Attempt
}

// Attempt is one logical checkout attempt: a key, the exact lines it covers
// and the request built from them.
type Attempt struct {
	Key         string
	Fingerprint string
	Lines       []cart.Line
	Request     dto.PaymentRequest
}

func (a *Attempt) LineIDs() []string {
	ids := make([]string, len(a.Lines))
	for i, l := range a.Lines {
		ids[i] = l.LineID
	}
	return ids
}

func NewAggregator(shippingFee int64) *Aggregator {
	return &Aggregator{shippingFee: shippingFee}
}

// Subtotal is the sum of unitPrice×quantity over exactly the given lines.
// No caching anywhere: the result feeds the charge amount.
func Subtotal(lines []cart.Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.UnitPrice * l.Quantity
	}
	return sum
}

func (a *Aggregator) ShippingFee() int64 { return a.shippingFee }

// BuildPaymentRequest packages the selected lines into a PaymentRequest with
// totals computed now, never taken from earlier state. A fresh idempotency
// key is generated per logical attempt; while the line set is unchanged and
// the previous attempt is unresolved, the same key is reused so the server
// can deduplicate a retried submission.
func (a *Aggregator) BuildPaymentRequest(userID int64, lines []cart.Line, shippingAddressID int64) (*Attempt, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	fp := Fingerprint(lines)
	key := NewIdempotencyKey()
	if a.current != nil && a.current.Fingerprint == fp {
		key = a.current.Key
	}

	items := make([]dto.PaymentItem, len(lines))
	for i, l := range lines {
		items[i] = dto.PaymentItem{ProductID: l.ProductID, Quantity: l.Quantity}
	}

	att := &Attempt{
		Key:         key,
		Fingerprint: fp,
		Lines:       append([]cart.Line(nil), lines...),
		Request: dto.PaymentRequest{
			UserID:            userID,
			IdempotencyKey:    key,
			TotalAmount:       Subtotal(lines) + a.shippingFee,
			Status:            "pending",
			ShippingAddressID: shippingAddressID,
			Items:             items,
		},
	}
	a.current = att
	return att, nil
}

// Current returns the unresolved attempt, or nil.
func (a *Aggregator) Current() *Attempt {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Resolve forgets the current attempt. Called once it reached a terminal
// success or was abandoned; the next build starts a fresh attempt.
func (a *Aggregator) Resolve() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = nil
}

// Restore re-adopts a persisted unresolved attempt, typically after a process
// restart, so a retry keeps the original key.
func (a *Aggregator) Restore(key, fingerprint string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = &Attempt{Key: key, Fingerprint: fingerprint}
}

// Fingerprint identifies a cart subset by content. Two attempts over the same
// lines, quantities and prices share a fingerprint regardless of order.
func Fingerprint(lines []cart.Line) string {
	tuples := make([]string, len(lines))
	for i, l := range lines {
		tuples[i] = fmt.Sprintf("%s|%d|%d|%d", l.LineID, l.ProductID, l.Quantity, l.UnitPrice)
	}
	sort.Strings(tuples)
	sum := sha256.Sum256([]byte(strings.Join(tuples, ";")))
	return hex.EncodeToString(sum[:])
}

// NewIdempotencyKey generates the key the upstream API deduplicates on: a
// dashless UUID truncated to a random length between 12 and 18 characters.
func NewIdempotencyKey() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	n := 12 + rand.Intn(7)
	return raw[:n]
}
