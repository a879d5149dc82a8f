package bookings

import "sync"

// slotLocks serializes booking admission per slot key so the
// read-sum-insert sequence cannot interleave for the same slot. Two
// requests racing for the last seats of one slot are forced through the
// capacity check one at a time; distinct slots proceed concurrently.
// Entries are refcounted and evicted once uncontended, so arbitrary keys
// from unauthenticated payloads cannot grow the map without bound.
type slotLocks struct {
	mu    sync.Mutex
	locks map[string]*slotLock
}

type slotLock struct {
	mu   sync.Mutex
	refs int
}

func newSlotLocks() *slotLocks {
	return &slotLocks{locks: make(map[string]*slotLock)}
}

// SlotKey is the admission serialization key: the same triple bookings
// are joined to slots on.
func SlotKey(restaurantID, date, timeStr string) string {
	return restaurantID + "|" + date + "|" + timeStr
}

func (s *slotLocks) Lock(key string) {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &slotLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()
	l.mu.Lock()
}

func (s *slotLocks) Unlock(key string) {
	s.mu.Lock()
	l := s.locks[key]
	if l != nil {
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
	}
	s.mu.Unlock()
	if l != nil {
		l.mu.Unlock()
	}
}
