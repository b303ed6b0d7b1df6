package clock

import "time"

// Clock dipakai service supaya "sekarang" bisa di-inject (tes pakai NewFixed).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem mengembalikan clock berbasis time.Now dalam UTC.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed selalu mengembalikan instant yang sama.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}
