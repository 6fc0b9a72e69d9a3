package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"rodrigues-modas/internal/domain"
)

// ErrQuantity rejects adds with a non-positive quantity.
var ErrQuantity = errors.New("quantity must be positive")

// Owner identifies who a cart request acts for. Exactly one of the two fields
// is expected to be set; UserID wins when both are.
type Owner struct {
	UserID  string
	GuestID string
}

// Authenticated reports whether the owner is a logged-in user.
func (o Owner) Authenticated() bool {
	return o.UserID != ""
}

// Ref returns the owner reference a line should carry.
func (o Owner) Ref() string {
	if o.Authenticated() {
		return o.UserID
	}
	return domain.GuestOwner
}

// Notifier receives the user-facing outcome of a cart mutation. Mutations
// replayed by the login merge never reach it.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

type localStore interface {
	Load(guestID string) []domain.CartLine
	Clear(guestID string) error
	Add(guestID string, product domain.Product, quantity int, color, size string) ([]domain.CartLine, error)
	UpdateQuantity(guestID, lineID string, quantity int) ([]domain.CartLine, error)
	Remove(guestID, lineID string) ([]domain.CartLine, error)
}

type remoteStore interface {
	Fetch(ctx context.Context, ownerRef string) ([]domain.CartLine, error)
	Create(ctx context.Context, ownerRef, productID string, quantity int, color, size string) (*domain.CartLine, error)
	UpdateQuantity(ctx context.Context, ownerRef, lineID string, quantity int) error
	Remove(ctx context.Context, ownerRef, lineID string) error
	Clear(ctx context.Context, ownerRef string) error
}

type productSource interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Engine is the single authority over which store backs a cart request.
// Guests read and write the device-local store; authenticated owners the
// server-persisted one; the UI never sees both at once. It also runs the
// one-time guest-to-account merge on login.
type Engine struct {
	local    localStore
	remote   remoteStore
	products productSource
	notifier Notifier
	logger   *log.Logger

	mergeTimeout time.Duration

	mu     sync.Mutex
	merged map[string]time.Time
	locks  map[string]*sync.Mutex
}

func NewEngine(local localStore, remote remoteStore, products productSource, notifier Notifier, logger *log.Logger, mergeTimeout time.Duration) *Engine {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if mergeTimeout <= 0 {
		mergeTimeout = 15 * time.Second
	}
	return &Engine{
		local:        local,
		remote:       remote,
		products:     products,
		notifier:     notifier,
		logger:       logger,
		mergeTimeout: mergeTimeout,
		merged:       make(map[string]time.Time),
		locks:        make(map[string]*sync.Mutex),
	}
}

// Lines returns the active cart for the owner.
func (e *Engine) Lines(ctx context.Context, owner Owner) ([]domain.CartLine, error) {
	if !owner.Authenticated() {
		return e.local.Load(owner.GuestID), nil
	}
	return e.remote.Fetch(ctx, owner.UserID)
}

// Totals recomputes derived totals for a line list.
func (e *Engine) Totals(lines []domain.CartLine) domain.DerivedTotals {
	return ComputeTotals(lines)
}

// Add puts quantity of a product variant into the active cart. The identity
// key (product, color, size) decides increment versus insert, with identical
// behavior on both stores.
func (e *Engine) Add(ctx context.Context, owner Owner, productID string, quantity int, color, size string) ([]domain.CartLine, error) {
	if quantity < 1 {
		return nil, ErrQuantity
	}
	product, err := e.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.ErrNotFound
	}

	var lines []domain.CartLine
	if owner.Authenticated() {
		lock := e.ownerLock(owner.UserID)
		lock.Lock()
		_, err = e.remote.Create(ctx, owner.UserID, productID, quantity, color, size)
		lock.Unlock()
		if err == nil {
			lines, err = e.remote.Fetch(ctx, owner.UserID)
		}
	} else {
		lines, err = e.local.Add(owner.GuestID, *product, quantity, color, size)
	}
	if err != nil {
		e.logger.Printf("cart engine: add owner=%s product=%s error=%v", owner.Ref(), productID, err)
		e.notifier.Error("could not add the item to your cart")
		return nil, err
	}
	e.notifier.Success("item added to your cart")
	return lines, nil
}

// UpdateQuantity sets an absolute quantity on a line. Zero or below removes
// the line; a zero-quantity line never survives a read.
func (e *Engine) UpdateQuantity(ctx context.Context, owner Owner, lineID string, quantity int) ([]domain.CartLine, error) {
	if quantity <= 0 {
		return e.Remove(ctx, owner, lineID)
	}
	var (
		lines []domain.CartLine
		err   error
	)
	if owner.Authenticated() {
		lock := e.ownerLock(owner.UserID)
		lock.Lock()
		err = e.remote.UpdateQuantity(ctx, owner.UserID, lineID, quantity)
		lock.Unlock()
		if err == nil {
			lines, err = e.remote.Fetch(ctx, owner.UserID)
		}
	} else {
		lines, err = e.local.UpdateQuantity(owner.GuestID, lineID, quantity)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			e.logger.Printf("cart engine: update owner=%s line=%s error=%v", owner.Ref(), lineID, err)
			e.notifier.Error("could not update the item quantity")
		}
		return nil, err
	}
	return lines, nil
}

// Remove deletes one line from the active cart.
func (e *Engine) Remove(ctx context.Context, owner Owner, lineID string) ([]domain.CartLine, error) {
	var (
		lines []domain.CartLine
		err   error
	)
	if owner.Authenticated() {
		lock := e.ownerLock(owner.UserID)
		lock.Lock()
		err = e.remote.Remove(ctx, owner.UserID, lineID)
		lock.Unlock()
		if err == nil {
			lines, err = e.remote.Fetch(ctx, owner.UserID)
		}
	} else {
		lines, err = e.local.Remove(owner.GuestID, lineID)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			e.logger.Printf("cart engine: remove owner=%s line=%s error=%v", owner.Ref(), lineID, err)
			e.notifier.Error("could not remove the item")
		}
		return nil, err
	}
	return lines, nil
}

// Clear empties whichever store is active for the owner.
func (e *Engine) Clear(ctx context.Context, owner Owner) error {
	if owner.Authenticated() {
		lock := e.ownerLock(owner.UserID)
		lock.Lock()
		defer lock.Unlock()
		return e.remote.Clear(ctx, owner.UserID)
	}
	return e.local.Clear(owner.GuestID)
}

// MergeOnLogin replays the guest cart into the user's server cart, once per
// user for the lifetime of the process. The merge is at-most-once and
// non-retryable: lines that fail to transfer are logged and dropped, and the
// local slot is cleared regardless, so stale guest data can never merge twice.
// Individual replayed adds bypass the notifier entirely.
func (e *Engine) MergeOnLogin(ctx context.Context, guestID, userID string) error {
	if guestID == "" || userID == "" {
		return nil
	}

	// Serializes against user-initiated mutations for the same owner, so an
	// add racing the merge cannot double-count.
	lock := e.ownerLock(userID)
	lock.Lock()
	defer lock.Unlock()

	e.mu.Lock()
	if _, done := e.merged[userID]; done {
		e.mu.Unlock()
		return nil
	}
	// Marked before any I/O: a second login trigger is a no-op even if the
	// first merge is still in flight or already finished.
	e.merged[userID] = time.Now()
	e.mu.Unlock()

	lines := e.local.Load(guestID)
	if len(lines) == 0 {
		return e.local.Clear(guestID)
	}

	ctx, cancel := context.WithTimeout(ctx, e.mergeTimeout)
	defer cancel()

	failed := 0
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if _, err := e.remote.Create(ctx, userID, line.ProductID, line.Quantity, line.SelectedColor, line.SelectedSize); err != nil {
			failed++
			e.logger.Printf("cart engine: merge user=%s product=%s error=%v", userID, line.ProductID, err)
		}
	}
	if failed > 0 {
		e.logger.Printf("cart engine: merge user=%s finished with %d of %d lines failed", userID, failed, len(lines))
	}

	if err := e.local.Clear(guestID); err != nil {
		e.logger.Printf("cart engine: merge clear guest=%s error=%v", guestID, err)
	}
	return nil
}

// MergedAt reports when the one-time merge ran for the user, if it did.
func (e *Engine) MergedAt(userID string) (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	at, ok := e.merged[userID]
	return at, ok
}

func (e *Engine) ownerLock(userID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[userID] = lock
	}
	return lock
}
