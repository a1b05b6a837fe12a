// Package impersonation tracks which customer or lab identity a privileged
// session is acting as.
package impersonation

import (
	"context"
	"errors"
	"strings"
	"sync"

	"labtracker/internal/domain/entities"
	"labtracker/internal/infrastructure/logger"

	"go.uber.org/zap"
)

const (
	KeyCustomerID    = "impersonatedCustomerId"
	KeyCustomerEmail = "impersonatedCustomerEmail"
	KeyCustomerName  = "impersonatedCustomerName"
	KeyLabID         = "impersonatedLabId"
	KeyLabName       = "impersonatedLabName"
	KeyLabRole       = "impersonatedLabRole"
)

var (
	customerKeys = []string{KeyCustomerID, KeyCustomerEmail, KeyCustomerName}
	labKeys      = []string{KeyLabID, KeyLabName, KeyLabRole}
	allKeys      = append(append([]string{}, customerKeys...), labKeys...)
)

var (
	ErrMissingSession = errors.New("missing session id")
	ErrMissingTarget  = errors.New("missing impersonation target id")
)

// ISwitch is the impersonation API used by the HTTP layer.
type ISwitch interface {
	StartCustomer(ctx context.Context, session, id, email, name string) (entities.ImpersonatedUser, error)
	StartLab(ctx context.Context, session, id, name, role string) (entities.ImpersonatedUser, error)
	Stop(ctx context.Context, session string) error
	Current(ctx context.Context, session string) (entities.ImpersonatedUser, error)
}

// Listener is called after every change with the session's new state.
type Listener func(session string, current entities.ImpersonatedUser)

// Switch applies impersonation changes and notifies listeners.
type Switch struct {
	store Store
	log   *zap.Logger

	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
}

var _ ISwitch = (*Switch)(nil)

func NewSwitch(store Store, log *zap.Logger) *Switch {
	return &Switch{store: store, log: logger.OrNop(log).Named("impersonation"), listeners: make(map[int]Listener)}
}

// StartCustomer clears any lab impersonation and acts as the given customer.
func (s *Switch) StartCustomer(ctx context.Context, session, id, email, name string) (entities.ImpersonatedUser, error) {
	u := entities.ImpersonatedUser{Kind: entities.ImpersonationCustomer, ID: strings.TrimSpace(id), Email: email, Name: name}
	return s.start(ctx, session, labKeys, u, map[string]string{
		KeyCustomerID:    u.ID,
		KeyCustomerEmail: email,
		KeyCustomerName:  name,
	})
}

// StartLab clears any customer impersonation and acts as the given lab.
func (s *Switch) StartLab(ctx context.Context, session, id, name, role string) (entities.ImpersonatedUser, error) {
	u := entities.ImpersonatedUser{Kind: entities.ImpersonationLab, ID: strings.TrimSpace(id), Name: name, Role: role}
	return s.start(ctx, session, customerKeys, u, map[string]string{
		KeyLabID:   u.ID,
		KeyLabName: name,
		KeyLabRole: role,
	})
}

func (s *Switch) start(ctx context.Context, session string, clear []string, u entities.ImpersonatedUser, set map[string]string) (entities.ImpersonatedUser, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return entities.ImpersonatedUser{}, ErrMissingSession
	}
	if u.ID == "" {
		return entities.ImpersonatedUser{}, ErrMissingTarget
	}
	if err := s.store.Apply(ctx, session, clear, set); err != nil {
		return entities.ImpersonatedUser{}, err
	}
	s.log.Info("impersonation started", zap.String("session", session), zap.String("kind", string(u.Kind)), zap.String("target", u.ID))
	s.notify(session, u)
	return u, nil
}

// Stop clears every impersonation key of the session.
func (s *Switch) Stop(ctx context.Context, session string) error {
	session = strings.TrimSpace(session)
	if session == "" {
		return ErrMissingSession
	}
	if err := s.store.Apply(ctx, session, allKeys, nil); err != nil {
		return err
	}
	s.log.Info("impersonation stopped", zap.String("session", session))
	s.notify(session, entities.ImpersonatedUser{})
	return nil
}

// Current reads the session's state. No session means no impersonation.
func (s *Switch) Current(ctx context.Context, session string) (entities.ImpersonatedUser, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return entities.ImpersonatedUser{}, nil
	}
	values, err := s.store.Load(ctx, session)
	if err != nil {
		return entities.ImpersonatedUser{}, err
	}
	return fromValues(values), nil
}

// Subscribe registers l and returns its unsubscribe func.
func (s *Switch) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Switch) notify(session string, u entities.ImpersonatedUser) {
	s.mu.RLock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.RUnlock()
	for _, l := range ls {
		l(session, u)
	}
}

func fromValues(v map[string]string) entities.ImpersonatedUser {
	if id := v[KeyCustomerID]; id != "" {
		return entities.ImpersonatedUser{Kind: entities.ImpersonationCustomer, ID: id, Email: v[KeyCustomerEmail], Name: v[KeyCustomerName]}
	}
	if id := v[KeyLabID]; id != "" {
		return entities.ImpersonatedUser{Kind: entities.ImpersonationLab, ID: id, Name: v[KeyLabName], Role: v[KeyLabRole]}
	}
	return entities.ImpersonatedUser{}
}
