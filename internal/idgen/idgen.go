// Package idgen hands out unique ids for projects and tasks.
package idgen

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/existflow/projectboard/internal/model"
	"github.com/google/uuid"
)

// Scheme names an id generation strategy
type Scheme string

const (
	SchemeUUID    Scheme = "uuid"
	SchemeCounter Scheme = "counter"
)

// Generator returns a fresh id on every call
type Generator interface {
	NewID() model.ID
}

// New returns the generator for scheme
func New(scheme Scheme) (Generator, error) {
	switch scheme {
	case SchemeUUID, "":
		return UUID{}, nil
	case SchemeCounter:
		return NewClock(time.Now), nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q (want uuid or counter)", scheme)
	}
}

// UUID generates time-ordered version 7 UUIDs
type UUID struct{}

// NewID returns a new UUIDv7
func (UUID) NewID() model.ID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the random source does
		return model.ID(uuid.New().String())
	}
	return model.ID(id.String())
}

// Clock generates millisecond timestamps that never repeat. Two ids asked
// for within the same millisecond get consecutive values.
type Clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewClock creates a clock generator reading time from now
func NewClock(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// NewID returns max(now in ms, previous+1)
func (c *Clock) NewID() model.ID {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.now().UnixMilli()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms
	return model.ID(strconv.FormatInt(ms, 10))
}

// Func adapts a plain function to Generator
type Func func() model.ID

// NewID calls f
func (f Func) NewID() model.ID {
	return f()
}

// Sequence returns a generator yielding prefix-1, prefix-2, ...
func Sequence(prefix string) Generator {
	var (
		mu sync.Mutex
		n  int
	)
	return Func(func() model.ID {
		mu.Lock()
		defer mu.Unlock()
		n++
		return model.ID(fmt.Sprintf("%s-%d", prefix, n))
	})
}

// maxAttempts bounds the retries when a generator hands out a taken id
const maxAttempts = 16

// Fresh asks gen for ids until one is non-empty and not taken. A generator
// that keeps repeating itself is replaced by a UUIDv7.
func Fresh(gen Generator, taken func(model.ID) bool) model.ID {
	for i := 0; i < maxAttempts; i++ {
		if id := gen.NewID(); id != "" && !taken(id) {
			return id
		}
	}
	return UUID{}.NewID()
}
