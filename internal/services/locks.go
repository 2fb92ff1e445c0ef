package services

import "sync"

// BookingLocks serializes multi-step operations per booking id. The store
// itself has no locking, so two writers on one booking could interleave
// partial reads with mutations; everything here runs in one process, so an
// in-process mutex table is enough. Different bookings proceed in parallel.
type BookingLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewBookingLocks() *BookingLocks {
	return &BookingLocks{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the booking's mutex and returns the unlock func.
func (l *BookingLocks) Lock(bookingID int64) func() {
	if l == nil {
		return func() {}
	}
	l.mu.Lock()
	m, ok := l.locks[bookingID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[bookingID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// LockPair locks two bookings in ascending id order so that concurrent
// rebooking calls cannot deadlock on each other.
func (l *BookingLocks) LockPair(a, b int64) func() {
	if l == nil {
		return func() {}
	}
	if a == b {
		return l.Lock(a)
	}
	if b < a {
		a, b = b, a
	}
	unlockA := l.Lock(a)
	unlockB := l.Lock(b)
	return func() {
		unlockB()
		unlockA()
	}
}
