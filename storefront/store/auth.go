package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/harikrishnagadicharla/unicart/pkg/kvstore"
	"github.com/harikrishnagadicharla/unicart/pkg/logger"
	"github.com/harikrishnagadicharla/unicart/pkg/types"
	"github.com/harikrishnagadicharla/unicart/storefront/client"
)

const authSnapshotKey = "unicart_auth"

// Session is the authenticated identity held by the auth store. Its absence
// means guest mode.
type Session struct {
	Token string            `json:"token"`
	User  types.UserPayload `json:"user"`
}

// AuthResult is the descriptor returned by Login and Register. Failures never
// escape as errors; callers inspect Success and Code.
type AuthResult struct {
	Success bool
	Code    string
	Message string
	User    *types.UserPayload
}

// AuthStore owns the session and gates whether the cart and wishlist stores
// operate against local storage or the remote service.
type AuthStore struct {
	notifier

	mu      sync.Mutex
	api     *client.Client
	kv      kvstore.Store
	logg    *logger.Logger
	session *Session
	loading bool
}

// NewAuthStore builds an auth store in guest mode. Call CheckAuth to
// rehydrate a persisted session.
func NewAuthStore(api *client.Client, kv kvstore.Store, logg *logger.Logger) *AuthStore {
	return &AuthStore{api: api, kv: kv, logg: logg}
}

// Token returns the bearer token, or empty in guest mode.
func (s *AuthStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// CurrentUser returns a copy of the signed-in user, or nil in guest mode.
func (s *AuthStore) CurrentUser() *types.UserPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	user := s.session.User
	return &user
}

// IsAuthenticated reports whether a session is active.
func (s *AuthStore) IsAuthenticated() bool {
	return s.Token() != ""
}

// IsLoading reports whether a login or registration call is in flight.
func (s *AuthStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Login exchanges credentials for a session. A transport failure leaves any
// prior session untouched; an explicit credential rejection clears it.
func (s *AuthStore) Login(ctx context.Context, email, password string) AuthResult {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return s.handleAuthFailure(ctx, "auth.login_failed", err)
	}
	return s.establishSession(ctx, resp)
}

// Register creates an account and, like login, establishes a session on
// success. Rejections carry EMAIL_RESERVED, EMAIL_TAKEN or NETWORK_ERROR.
func (s *AuthStore) Register(ctx context.Context, req client.RegisterRequest) AuthResult {
	s.setLoading(true)
	defer s.setLoading(false)

	req.Email = strings.TrimSpace(req.Email)
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return s.handleAuthFailure(ctx, "auth.register_failed", err)
	}
	return s.establishSession(ctx, resp)
}

// Logout drops the session locally and removes the persisted snapshot. The
// remote revocation is best-effort; local de-authentication never waits on it.
func (s *AuthStore) Logout(ctx context.Context) {
	s.mu.Lock()
	token := ""
	if s.session != nil {
		token = s.session.Token
	}
	s.session = nil
	if err := s.kv.Delete(authSnapshotKey); err != nil {
		s.logg.Error(ctx, "auth.snapshot_delete_failed", err)
	}
	s.mu.Unlock()
	s.notify()

	if token != "" {
		if err := s.api.Logout(ctx, token); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "auth.remote_logout_failed")
		}
	}
}

// CheckAuth rehydrates the session from the persisted snapshot. Malformed
// data is deleted and the store stays in guest mode; nothing surfaces to the
// caller.
func (s *AuthStore) CheckAuth(ctx context.Context) {
	raw, err := s.kv.Get(authSnapshotKey)
	if err != nil {
		if !kvstore.IsNotFound(err) {
			s.logg.Error(ctx, "auth.snapshot_read_failed", err)
		}
		return
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil || session.Token == "" || session.User.ID == "" {
		s.logg.Warn(ctx, "auth.snapshot_corrupt")
		if err := s.kv.Delete(authSnapshotKey); err != nil {
			s.logg.Error(ctx, "auth.snapshot_delete_failed", err)
		}
		return
	}

	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()
	s.notify()
}

func (s *AuthStore) establishSession(ctx context.Context, resp *client.AuthResponse) AuthResult {
	if resp.Token == "" || resp.User == nil {
		return AuthResult{Success: false, Code: client.CodeNetwork, Message: "malformed auth response"}
	}

	session := &Session{Token: resp.Token, User: *resp.User}
	raw, err := json.Marshal(session)
	if err != nil {
		return AuthResult{Success: false, Code: client.CodeNetwork, Message: "serialize session"}
	}

	s.mu.Lock()
	s.session = session
	if err := s.kv.Set(authSnapshotKey, string(raw)); err != nil {
		s.logg.Error(ctx, "auth.snapshot_write_failed", err)
	}
	s.mu.Unlock()
	s.notify()

	return AuthResult{Success: true, User: resp.User}
}

func (s *AuthStore) handleAuthFailure(ctx context.Context, event string, err error) AuthResult {
	s.logg.Error(ctx, event, err)

	code := client.CodeOf(err)
	if code == "" {
		code = client.CodeNetwork
	}
	message := "unable to reach the service, please try again"
	var typed *client.Error
	if errors.As(err, &typed) && !client.IsNetwork(err) {
		message = typed.Message
		// Only an invalid-credential rejection invalidates a prior
		// session. Throttling or a bad request says nothing about it.
		if typed.Code == client.CodeUnauthorized {
			s.mu.Lock()
			s.session = nil
			if delErr := s.kv.Delete(authSnapshotKey); delErr != nil {
				s.logg.Error(ctx, "auth.snapshot_delete_failed", delErr)
			}
			s.mu.Unlock()
			s.notify()
		}
	}

	return AuthResult{Success: false, Code: code, Message: message}
}

func (s *AuthStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
