package pet

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Store is the durable keyed record store: one Record per user, persisted as
// a single JSON file rewritten atomically (write tmp, then rename) on every
// mutation. All access goes through one RWMutex; mutations are
// last-write-wins with no versioning.
type Store struct {
	mu   sync.RWMutex
	path string
	pets map[string]*Record
}

// NewMemory returns a store that never touches disk. Used by tests and
// anywhere persistence is not wanted.
func NewMemory() *Store {
	return &Store{pets: make(map[string]*Record)}
}

// Open loads the store from path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, pets: make(map[string]*Record)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}
	if err := json.Unmarshal(data, &s.pets); err != nil {
		return nil, fmt.Errorf("unmarshal store: %w", err)
	}
	return s, nil
}

// save writes the full map to disk. Callers must hold the write lock.
func (s *Store) save() error {
	if s.path == "" {
		return nil // in-memory store (tests)
	}
	data, err := json.MarshalIndent(s.pets, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write tmp store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename store: %w", err)
	}
	return nil
}

// Create makes a new pet for userID. Creation is create-once: a second
// attempt fails with ErrAlreadyExists and leaves the existing record alone.
func (s *Store) Create(userID, name string) (*Record, error) {
	if len([]rune(name)) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pets[userID]; ok {
		return nil, ErrAlreadyExists
	}
	rec := NewRecord(userID, name)
	s.pets[userID] = rec
	if err := s.save(); err != nil {
		delete(s.pets, userID)
		return nil, err
	}
	return rec.clone(), nil
}

// Get returns a copy of the record for userID.
func (s *Store) Get(userID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.pets[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.clone(), nil
}

// Delete removes the record for userID. Destructive, no soft-delete.
func (s *Store) Delete(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.pets[userID]
	if !ok {
		return ErrNotFound
	}
	delete(s.pets, userID)
	if err := s.save(); err != nil {
		s.pets[userID] = rec
		return err
	}
	return nil
}

// Update applies fn to the record under the write lock and persists the
// result. fn sees the live record; composite mutations (decay tick plus
// timestamps) stay atomic with respect to other store calls.
func (s *Store) Update(userID string, fn func(*Record)) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.pets[userID]
	if !ok {
		return nil, ErrNotFound
	}
	fn(rec)
	if err := s.save(); err != nil {
		return nil, err
	}
	return rec.clone(), nil
}

// SetMoney sets money to an absolute value (unbounded above, floor 0).
func (s *Store) SetMoney(userID string, amount int) (*Record, error) {
	if amount < 0 {
		amount = 0
	}
	return s.Update(userID, func(r *Record) { r.Money = amount })
}

// AddMoney adds amount (negative to spend); the balance never drops below 0.
func (s *Store) AddMoney(userID string, amount int) (*Record, error) {
	return s.Update(userID, func(r *Record) {
		r.Money = max(0, r.Money+amount)
	})
}

// SetName replaces the pet's name. Names longer than MaxNameLen are rejected.
func (s *Store) SetName(userID, name string) (*Record, error) {
	if len([]rune(name)) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	return s.Update(userID, func(r *Record) { r.Name = name })
}

// SetStat sets a bounded stat to an absolute value in [0,100].
func (s *Store) SetStat(userID string, f StatField, value int) (*Record, error) {
	if value < 0 || value > 100 {
		return nil, ErrInvalidRange
	}
	return s.Update(userID, func(r *Record) { r.setStat(f, value) })
}

// ApplyMinus subtracts n from a stat with clamping to [0,100]. The minus in
// the name is the sign convention: pass a negative n to add.
func (s *Store) ApplyMinus(userID string, f StatField, n int) (*Record, error) {
	return s.Update(userID, func(r *Record) {
		r.setStat(f, clamp(r.Stat(f)-n))
	})
}

// SetStates fully replaces the opaque state map. No merging.
func (s *Store) SetStates(userID string, states map[string]string) (*Record, error) {
	return s.Update(userID, func(r *Record) { r.States = states })
}

// AddPetItem puts item on the pet. Only one accessory can be worn, so the
// whole worn set is replaced.
func (s *Store) AddPetItem(userID, item string) (*Record, error) {
	return s.Update(userID, func(r *Record) { r.PetInventory = []string{item} })
}

// RemovePetItem takes the named item off the pet.
func (s *Store) RemovePetItem(userID, item string) (*Record, error) {
	return s.removeItem(userID, item, func(r *Record) *[]string { return &r.PetInventory })
}

// AddUserItem appends item to the owned inventory. Duplicates are allowed.
func (s *Store) AddUserItem(userID, item string) (*Record, error) {
	return s.Update(userID, func(r *Record) {
		r.UserInventory = append(r.UserInventory, item)
	})
}

// RemoveUserItem removes one occurrence of the named item from the owned
// inventory.
func (s *Store) RemoveUserItem(userID, item string) (*Record, error) {
	return s.removeItem(userID, item, func(r *Record) *[]string { return &r.UserInventory })
}

func (s *Store) removeItem(userID, item string, inv func(*Record) *[]string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.pets[userID]
	if !ok {
		return nil, ErrNotFound
	}
	items := inv(rec)
	idx := -1
	for i, it := range *items {
		if it == item {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrItemNotFound
	}
	*items = append((*items)[:idx], (*items)[idx+1:]...)
	if err := s.save(); err != nil {
		return nil, err
	}
	return rec.clone(), nil
}

// UserValue pairs a user with one of their numeric fields, for bulk
// threshold queries.
type UserValue struct {
	UserID string
	Value  int
}

// FindUnder returns every (user, value) whose field is strictly below n.
// field is one of "money", "satiety", "energy", "mood".
func (s *Store) FindUnder(field string, n int) []UserValue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []UserValue
	for id, r := range s.pets {
		var v int
		switch field {
		case "money":
			v = r.Money
		case "satiety", "energy", "mood":
			v = r.Stat(StatField(field))
		default:
			return nil
		}
		if v < n {
			out = append(out, UserValue{UserID: id, Value: v})
		}
	}
	return out
}

// FindLowStats returns copies of every record with satiety<satietyLT OR
// energy<energyLT OR mood<moodLT. This is the 2-hour sweep's pre-filtered
// query.
func (s *Store) FindLowStats(satietyLT, energyLT, moodLT int) []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Record
	for _, r := range s.pets {
		if r.Satiety < satietyLT || r.Energy < energyLT || r.Mood < moodLT {
			out = append(out, r.clone())
		}
	}
	return out
}

// WarnedUsers returns copies of every record with at least one warned flag
// set, so recovery sweeps can clear flags for users that no longer match the
// low-stat query.
func (s *Store) WarnedUsers() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Record
	for _, r := range s.pets {
		if r.WarnedSatiety || r.WarnedMood || r.WarnedEnergy {
			out = append(out, r.clone())
		}
	}
	return out
}

// Users returns all known user ids.
func (s *Store) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.pets))
	for id := range s.pets {
		ids = append(ids, id)
	}
	return ids
}

// Len reports how many pets exist.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pets)
}

// ResetAll drops every pet to low stats with a cash cushion (admin test
// helper). Returns the number of records touched.
func (s *Store) ResetAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.pets {
		r.Satiety = 10
		r.Energy = 10
		r.Mood = 10
		r.Money = 500
	}
	if err := s.save(); err != nil {
		return 0, err
	}
	return len(s.pets), nil
}
