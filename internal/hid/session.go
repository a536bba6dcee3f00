// SPDX-License-Identifier: GPL-3.0-only

package hid

import (
	"fmt"
	"sync"
)

// live guards against overlapping init/exit of the process-global hidapi
// state.
var (
	liveMu sync.Mutex
	live   bool
)

// Session owns the process-wide initialization of the hidapi library.
// Enumeration and device opening hang off the Session, so the library is
// guaranteed to be initialized before either is possible. At most one
// Session may be live at a time.
type Session struct {
	backend Backend
	mu      sync.Mutex
	closed  bool
}

// Option is a functional option for configuring a Session.
type Option func(*Session)

// WithBackend substitutes the hidapi backend, primarily for testing.
func WithBackend(b Backend) Option {
	return func(s *Session) {
		s.backend = b
	}
}

// NewSession initializes the hidapi library and returns the Session owning
// that initialization. It fails with ErrSessionActive if another Session is
// still open.
func NewSession(opts ...Option) (*Session, error) {
	s := &Session{backend: hidapiBackend{}}
	for _, opt := range opts {
		opt(s)
	}

	liveMu.Lock()
	defer liveMu.Unlock()

	if live {
		return nil, ErrSessionActive
	}
	if err := s.backend.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize hidapi: %w", err)
	}
	live = true

	return s, nil
}

// Close shuts the hidapi library down. Safe to call more than once; only
// the first call performs the shutdown.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	liveMu.Lock()
	live = false
	liveMu.Unlock()

	if err := s.backend.Exit(); err != nil {
		return fmt.Errorf("hidapi shutdown failed: %w", err)
	}
	return nil
}

// ensureOpen rejects use of a closed Session.
func (s *Session) ensureOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	return nil
}

// Open opens the first device matching vendorID and productID, optionally
// filtered by serial number (empty serial matches any device).
func (s *Session) Open(vendorID, productID uint16, serial string) (*ExclusiveDevice, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	raw, err := s.backend.Open(vendorID, productID, serial)
	if err != nil {
		return nil, fmt.Errorf("failed to open device %04x:%04x: %w", vendorID, productID, err)
	}
	return &ExclusiveDevice{raw: raw}, nil
}

// OpenPath opens the device at the given platform-specific path, typically
// taken from an enumerated DeviceInfo.
func (s *Session) OpenPath(path string) (*ExclusiveDevice, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	raw, err := s.backend.OpenPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open device at %s: %w", path, err)
	}
	return &ExclusiveDevice{raw: raw, path: path}, nil
}

// OpenShared is Open with reference-counted ownership.
func (s *Session) OpenShared(vendorID, productID uint16, serial string) (*SharedDevice, error) {
	dev, err := s.Open(vendorID, productID, serial)
	if err != nil {
		return nil, err
	}
	return dev.Share()
}

// OpenSharedPath is OpenPath with reference-counted ownership.
func (s *Session) OpenSharedPath(path string) (*SharedDevice, error) {
	dev, err := s.OpenPath(path)
	if err != nil {
		return nil, err
	}
	return dev.Share()
}
