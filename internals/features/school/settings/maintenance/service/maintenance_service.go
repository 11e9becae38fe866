// file: internals/features/school/settings/maintenance/service/maintenance_service.go
package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"edufam_backend/internals/constants"
)

// MaintenanceState is the resolved maintenance flag plus its knobs.
type MaintenanceState struct {
	Enabled      bool
	Message      string
	AllowedRoles []string
}

// Access is the per-request verdict.
type Access struct {
	Allowed bool
	Message string
}

// SettingReader loads the current state from wherever it is stored. The gorm
// implementation reads the app_settings row; tests plug in a fake.
type SettingReader interface {
	ReadMaintenanceState(ctx context.Context) (MaintenanceState, error)
}

// Service caches the maintenance state and refreshes it on a fixed interval,
// so the hot path never waits on the settings table. Reads that fail leave
// the app open: a broken settings store must not lock every school out.
type Service struct {
	reader SettingReader
	every  time.Duration

	mu    sync.RWMutex
	state MaintenanceState
	ready bool
}

func NewService(reader SettingReader, every time.Duration) *Service {
	if every <= 0 {
		every = 15 * time.Second
	}
	return &Service{reader: reader, every: every}
}

// Refresh pulls the state once. Called by the poller and right after an admin
// writes the setting, so a toggle is visible without waiting a full interval.
func (s *Service) Refresh(ctx context.Context) {
	st, err := s.reader.ReadMaintenanceState(ctx)
	if err != nil {
		log.Printf("[WARN] maintenance state read failed, keeping app open: %v", err)
		s.mu.Lock()
		s.state = MaintenanceState{Enabled: false}
		s.ready = true
		s.mu.Unlock()
		return
	}
	s.mu.Lock()
	s.state = st
	s.ready = true
	s.mu.Unlock()
}

// StartPolling refreshes immediately, then on every tick until ctx ends.
func (s *Service) StartPolling(ctx context.Context) {
	s.Refresh(ctx)
	go func() {
		t := time.NewTicker(s.every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Refresh(ctx)
			}
		}
	}()
}

// State returns the cached snapshot.
func (s *Service) State() MaintenanceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CheckAccess decides whether a caller with the given roles gets through.
// Fail-open twice over: maintenance off means everyone passes, and an
// unrefreshed cache counts as off.
func (s *Service) CheckAccess(roles ...string) Access {
	s.mu.RLock()
	st := s.state
	ready := s.ready
	s.mu.RUnlock()

	if !ready || !st.Enabled {
		return Access{Allowed: true}
	}

	// the platform bypass set is unconditional; configured roles only widen it
	allowed := append([]string{}, constants.MaintenanceBypassRoles...)
	allowed = append(allowed, st.AllowedRoles...)
	for _, r := range roles {
		for _, a := range allowed {
			if strings.EqualFold(strings.TrimSpace(r), strings.TrimSpace(a)) {
				return Access{Allowed: true}
			}
		}
	}

	msg := st.Message
	if strings.TrimSpace(msg) == "" {
		msg = "The system is under maintenance. Please try again later."
	}
	return Access{Allowed: false, Message: msg}
}
