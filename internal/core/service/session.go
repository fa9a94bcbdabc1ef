package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// Reserved mock credentials granting the admin role.
const (
	AdminEmail    = "admin@worldofbrandsey.com"
	AdminPassword = "admin123"
)

const (
	adminAvatar = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=100&h=100&fit=crop&crop=face"
	userAvatar  = "https://images.unsplash.com/photo-1494790108755-2616b612b5e5?w=100&h=100&fit=crop&crop=face"
)

var _ port.SessionReader = (*SessionStore)(nil)

// SessionStore holds the single active session, if any.
type SessionStore struct {
	mu       sync.Mutex
	user     *domain.User
	record   record[domain.User]
	notifier port.Notifier
	newID    func() string
}

func NewSessionStore(
	ctx context.Context, kv port.KVStore, n port.Notifier,
) (*SessionStore, error) {
	const op = "NewSessionStore"

	s := &SessionStore{
		record:   newRecord[domain.User](kv, SessionKey),
		notifier: n,
		newID:    uuid.NewString,
	}

	u, ok, err := s.record.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if ok && u.ID != "" {
		s.user = &u
	}
	return s, nil
}

// Login accepts any non-empty pair; the reserved pair signs in as admin.
func (s *SessionStore) Login(
	ctx context.Context, email, password string,
) (domain.User, error) {
	const op = "SessionStore.Login"

	if email == "" || password == "" {
		s.notifier.Notify(domain.Failure("Invalid credentials"))
		return domain.User{}, fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}

	u := domain.User{
		ID:     "2",
		Email:  email,
		Name:   localPart(email),
		Role:   domain.RoleStandard,
		Avatar: userAvatar,
	}
	welcome := "Welcome back!"
	if email == AdminEmail && password == AdminPassword {
		u.ID = "1"
		u.Name = "Admin User"
		u.Role = domain.RoleAdmin
		u.Avatar = adminAvatar
		welcome = "Welcome back, Admin!"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	s.notifier.Notify(domain.Success(welcome))
	return u, nil
}

func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

// Register always creates a standard session for non-empty fields.
func (s *SessionStore) Register(
	ctx context.Context, name, email, password string,
) (domain.User, error) {
	const op = "SessionStore.Register"

	if name == "" || email == "" || password == "" {
		s.notifier.Notify(domain.Failure("Registration failed"))
		return domain.User{}, fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}

	u := domain.User{
		ID:     s.newID(),
		Email:  email,
		Name:   name,
		Role:   domain.RoleStandard,
		Avatar: userAvatar,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	s.notifier.Notify(domain.Success("Account created successfully!"))
	return u, nil
}

func (s *SessionStore) Logout(ctx context.Context) error {
	const op = "SessionStore.Logout"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record.delete(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.user = nil
	s.notifier.Notify(domain.Success("Logged out successfully"))
	return nil
}

// UpdateProfile merges p into the active session.
func (s *SessionStore) UpdateProfile(
	ctx context.Context, p domain.ProfileUpdate,
) (domain.User, error) {
	const op = "SessionStore.UpdateProfile"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		s.notifier.Notify(domain.Failure("Failed to update profile"))
		return domain.User{}, fmt.Errorf("%s: %w", op, domain.ErrNoSession)
	}

	u := s.user.Merge(p)
	if err := s.commit(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	s.notifier.Notify(domain.Success("Profile updated successfully"))
	return u, nil
}

func (s *SessionStore) Current() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *SessionStore) State() domain.SessionState {
	u, ok := s.Current()
	switch {
	case !ok:
		return domain.SessionAnonymous
	case u.IsAdmin():
		return domain.SessionAdmin
	default:
		return domain.SessionStandard
	}
}

func (s *SessionStore) commit(ctx context.Context, u domain.User) error {
	if err := s.record.save(ctx, u); err != nil {
		return err
	}
	s.user = &u
	return nil
}
