package state

import (
	"context"

	"github.com/mathenaangeles/socialite/internal/models"
)

const (
	opUserRegister      = "user/register"
	opUserLogin         = "user/login"
	opUserLogout        = "user/logout"
	opUserGetProfile    = "user/getProfile"
	opUserUpdateProfile = "user/updateProfile"
	opUserDeleteAccount = "user/deleteAccount"
)

type userAction struct {
	op    string
	phase Phase
	seq   uint64
	err   string
	user  *models.User
}

// reduceUser folds one settlement into the session cache.
func reduceUser(cache UserCache, a userAction) UserCache {
	switch a.phase {
	case Pending:
		cache.Loading = true
		cache.Error = ""
	case Rejected:
		cache.Loading = false
		cache.Error = a.err
	case Fulfilled:
		cache.Loading = false
		cache.Error = ""
		switch a.op {
		case opUserLogout, opUserDeleteAccount:
			cache.User = nil
		default:
			cache.User = a.user
		}
	}
	return cache
}

func (s *Store) dispatchUserPending(op string) uint64 {
	s.mu.Lock()
	seq := s.beginLocked(op)
	s.state.User = reduceUser(s.state.User, userAction{op: op, phase: Pending, seq: seq})
	s.finishLocked()
	return seq
}

func (s *Store) dispatchUser(a userAction) {
	s.mu.Lock()
	if s.staleLocked(a.op, a.seq) {
		s.mu.Unlock()
		dropStale(a.op)
		return
	}
	s.state.User = reduceUser(s.state.User, a)
	s.finishLocked()
}

func (s *Store) runUser(ctx context.Context, op string, call func(context.Context) (*models.User, error)) (*models.User, error) {
	seq := s.dispatchUserPending(op)
	user, err := call(ctx)
	if err != nil {
		s.dispatchUser(userAction{op: op, phase: Rejected, seq: seq, err: err.Error()})
		return nil, err
	}
	s.dispatchUser(userAction{op: op, phase: Fulfilled, seq: seq, user: user})
	return user, nil
}

// Register creates an account and opens a session.
func (s *Store) Register(ctx context.Context, email, password string) (*models.User, error) {
	return s.runUser(ctx, opUserRegister, func(ctx context.Context) (*models.User, error) {
		return s.api.Register(ctx, email, password)
	})
}

// Login opens a session for an existing account.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	return s.runUser(ctx, opUserLogin, func(ctx context.Context) (*models.User, error) {
		return s.api.Login(ctx, email, password)
	})
}

// GetProfile refreshes the session user from the server.
func (s *Store) GetProfile(ctx context.Context) (*models.User, error) {
	return s.runUser(ctx, opUserGetProfile, func(ctx context.Context) (*models.User, error) {
		return s.api.Profile(ctx)
	})
}

// UpdateProfile updates the session user's name fields.
func (s *Store) UpdateProfile(ctx context.Context, firstName, lastName string) (*models.User, error) {
	return s.runUser(ctx, opUserUpdateProfile, func(ctx context.Context) (*models.User, error) {
		return s.api.UpdateProfile(ctx, firstName, lastName)
	})
}

// Logout destroys the session and synchronously erases all persisted
// session material, so nothing stale survives past logout.
func (s *Store) Logout(ctx context.Context) error {
	seq := s.dispatchUserPending(opUserLogout)
	if err := s.api.Logout(ctx); err != nil {
		s.dispatchUser(userAction{op: opUserLogout, phase: Rejected, seq: seq, err: err.Error()})
		return err
	}
	s.dispatchUser(userAction{op: opUserLogout, phase: Fulfilled, seq: seq})
	s.purgeSession()
	return nil
}

// DeleteAccount permanently deletes the account, then purges like logout.
func (s *Store) DeleteAccount(ctx context.Context) error {
	seq := s.dispatchUserPending(opUserDeleteAccount)
	if err := s.api.DeleteAccount(ctx); err != nil {
		s.dispatchUser(userAction{op: opUserDeleteAccount, phase: Rejected, seq: seq, err: err.Error()})
		return err
	}
	s.dispatchUser(userAction{op: opUserDeleteAccount, phase: Fulfilled, seq: seq})
	s.purgeSession()
	return nil
}
