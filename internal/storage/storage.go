package storage

import (
	"errors"
	"sync"
)

// MaxModules caps the number of masses in a manifest or a single calculation.
const MaxModules = 1000

var (
	// ErrInvalidMasses indicates the provided module masses violate validation rules.
	ErrInvalidMasses = errors.New("module manifest must contain at most 1000 non-negative masses")
)

// Storage provides access to the module manifest used by the fuel service.
type Storage interface {
	GetMasses() ([]int, error)
	SetMasses(masses []int) error
}

// MemoryStorage keeps the manifest in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu     sync.RWMutex
	masses []int
}

// NewMemoryStorage initialises an empty manifest.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		masses: []int{},
	}
}

// GetMasses returns a copy of the current manifest in insertion order.
func (s *MemoryStorage) GetMasses() ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.masses), nil
}

// SetMasses validates and replaces the manifest. An empty slice clears it.
func (s *MemoryStorage) SetMasses(masses []int) error {
	if err := validateMasses(masses); err != nil {
		return err
	}

	copied := clone(masses)
	s.mu.Lock()
	s.masses = copied
	s.mu.Unlock()

	return nil
}

func clone(src []int) []int {
	if len(src) == 0 {
		return []int{}
	}

	out := make([]int, len(src))
	copy(out, src)
	return out
}

func validateMasses(masses []int) error {
	if len(masses) > MaxModules {
		return ErrInvalidMasses
	}
	for _, mass := range masses {
		if mass < 0 {
			return ErrInvalidMasses
		}
	}
	return nil
}
