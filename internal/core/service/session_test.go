package service_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, kv *memKV) (*service.SessionStore, *service.NoticeBoard) {
	t.Helper()
	nb := service.NewNoticeBoard()
	s, err := service.NewSessionStore(t.Context(), kv, nb)
	require.NoError(t, err)
	return s, nb
}

func TestSessionStoreLogin(t *testing.T) {
	t.Run("Admin", func(t *testing.T) {
		s, nb := newSession(t, newMemKV())

		u, err := s.Login(t.Context(), service.AdminEmail, service.AdminPassword)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, u.Role)
		assert.Equal(t, "Admin User", u.Name)
		assert.Equal(t, domain.SessionAdmin, s.State())
		assert.Equal(t, []domain.Notice{domain.Success("Welcome back, Admin!")}, nb.Drain())
	})

	t.Run("AnyOtherPairIsStandard", func(t *testing.T) {
		for _, pair := range [][2]string{
			{"jane@example.com", "x"},
			{service.AdminEmail, "wrong"},
			{"admin", service.AdminPassword},
		} {
			s, _ := newSession(t, newMemKV())
			u, err := s.Login(t.Context(), pair[0], pair[1])
			require.NoError(t, err)
			assert.Equal(t, domain.RoleStandard, u.Role)
			assert.Equal(t, domain.SessionStandard, s.State())
		}
	})

	t.Run("NameFromEmail", func(t *testing.T) {
		s, _ := newSession(t, newMemKV())
		u, err := s.Login(t.Context(), "jane@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "jane", u.Name)
	})

	t.Run("EmptyCredentials", func(t *testing.T) {
		s, nb := newSession(t, newMemKV())
		_, err := s.Login(t.Context(), "", "secret")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Equal(t, domain.SessionAnonymous, s.State())
		assert.Equal(t, domain.NoticeError, nb.Drain()[0].Kind)
	})
}

func TestSessionStoreRegister(t *testing.T) {
	s, nb := newSession(t, newMemKV())

	u, err := s.Register(t.Context(), "Jane", "jane@example.com", "Secret1!")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, domain.RoleStandard, u.Role)
	assert.Equal(t, []domain.Notice{domain.Success("Account created successfully!")}, nb.Drain())
}

func TestSessionStoreLogout(t *testing.T) {
	kv := newMemKV()
	s, _ := newSession(t, kv)
	_, err := s.Login(t.Context(), "jane@example.com", "x")
	require.NoError(t, err)
	require.True(t, kv.has(service.SessionKey))

	require.NoError(t, s.Logout(t.Context()))
	assert.Equal(t, domain.SessionAnonymous, s.State())
	assert.False(t, kv.has(service.SessionKey))
}

func TestSessionStoreUpdateProfile(t *testing.T) {
	t.Run("NoSession", func(t *testing.T) {
		s, _ := newSession(t, newMemKV())
		city := "Paris"
		_, err := s.UpdateProfile(t.Context(), domain.ProfileUpdate{City: &city})
		assert.ErrorIs(t, err, domain.ErrNoSession)
	})

	t.Run("MergesAndPersists", func(t *testing.T) {
		kv := newMemKV()
		s, _ := newSession(t, kv)
		_, err := s.Login(t.Context(), "jane@example.com", "x")
		require.NoError(t, err)

		city := "Paris"
		u, err := s.UpdateProfile(t.Context(), domain.ProfileUpdate{City: &city})
		require.NoError(t, err)
		assert.Equal(t, "Paris", u.City)
		assert.Equal(t, "jane", u.Name)

		reloaded, _ := newSession(t, kv)
		cur, ok := reloaded.Current()
		require.True(t, ok)
		assert.Equal(t, u, cur)
	})
}
