package cart

import (
	"encoding/json"
	"io"
	"log"
	"time"

	"rodrigues-modas/internal/domain"

	"github.com/google/uuid"
)

// LocalStore persists the guest cart in a device-local slot keyed by guest ID.
// It survives reloads but not device changes, needs no server connectivity,
// and always writes the full line list, never a delta.
type LocalStore struct {
	slot   Slot
	logger *log.Logger
}

func NewLocal(slot Slot, logger *log.Logger) *LocalStore {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &LocalStore{slot: slot, logger: logger}
}

// Load reads the guest's lines. Corrupted data is discarded and the slot
// cleared so the next load starts clean; the caller only ever sees a cart.
func (s *LocalStore) Load(guestID string) []domain.CartLine {
	data, ok, err := s.slot.Get(guestID)
	if err != nil {
		s.logger.Printf("local cart: read guest=%s error=%v", guestID, err)
		return nil
	}
	if !ok {
		return nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		s.logger.Printf("local cart: corrupted data guest=%s, resetting: %v", guestID, err)
		if err := s.slot.Delete(guestID); err != nil {
			s.logger.Printf("local cart: reset guest=%s error=%v", guestID, err)
		}
		return nil
	}
	return lines
}

// Save overwrites the slot with the full line list.
func (s *LocalStore) Save(guestID string, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.slot.Set(guestID, data)
}

// Clear removes the slot entirely so a merge or checkout leaves no stale reads.
func (s *LocalStore) Clear(guestID string) error {
	return s.slot.Delete(guestID)
}

// Add inserts a line or increments the one matching the identity key.
// The product display data is snapshotted at add time.
func (s *LocalStore) Add(guestID string, product domain.Product, quantity int, color, size string) ([]domain.CartLine, error) {
	lines := s.Load(guestID)
	incoming := domain.CartLine{
		ProductID:     product.ID,
		SelectedColor: color,
		SelectedSize:  size,
	}
	matched := false
	for i := range lines {
		if lines[i].SameKey(incoming) {
			lines[i].Quantity += quantity
			matched = true
			break
		}
	}
	if !matched {
		lines = append(lines, domain.CartLine{
			ID:            uuid.NewString(),
			OwnerRef:      domain.GuestOwner,
			ProductID:     product.ID,
			Quantity:      quantity,
			SelectedColor: color,
			SelectedSize:  size,
			CreatedAt:     time.Now().UTC(),
			Product:       product.Snapshot(),
		})
	}
	if err := s.Save(guestID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// UpdateQuantity sets an absolute quantity; zero or below removes the line.
func (s *LocalStore) UpdateQuantity(guestID, lineID string, quantity int) ([]domain.CartLine, error) {
	if quantity <= 0 {
		return s.Remove(guestID, lineID)
	}
	lines := s.Load(guestID)
	found := false
	for i := range lines {
		if lines[i].ID == lineID {
			lines[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	if err := s.Save(guestID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Remove deletes one line by id.
func (s *LocalStore) Remove(guestID, lineID string) ([]domain.CartLine, error) {
	lines := s.Load(guestID)
	kept := lines[:0]
	found := false
	for _, ln := range lines {
		if ln.ID == lineID {
			found = true
			continue
		}
		kept = append(kept, ln)
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	if err := s.Save(guestID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}
