package session

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"geotodo/pkg/claims"
)

var emailRe = regexp.MustCompile(`^[^@]+@[^@]+\.[a-zA-Z]{2,}$`)

// Manager owns the active session: it exchanges credentials for a bearer
// token, persists the resulting identity across restarts, and tears it down
// on logout or when any authenticated call comes back 401.
//
// Like the Synchronizer, the Manager is driven from a single goroutine; the
// loading flag is a plain bool for the UI to poll.
type Manager struct {
	auth   AuthService
	store  Store
	nav    Navigator
	alert  Alerter
	logger *slog.Logger

	active  *Session
	loading bool
}

func NewManager(auth AuthService, store Store, nav Navigator, alert Alerter, logger *slog.Logger) *Manager {
	return &Manager{
		auth:   auth,
		store:  store,
		nav:    nav,
		alert:  alert,
		logger: logger,
	}
}

func (m *Manager) Active() *Session {
	return m.active
}

func (m *Manager) Loading() bool {
	return m.loading
}

// ActiveUserID satisfies the task synchronizer's session source.
func (m *Manager) ActiveUserID() (string, bool) {
	if m.active == nil {
		return "", false
	}
	return m.active.UserID, true
}

// Login validates its inputs synchronously, then exchanges them for a token.
// The token payload is trusted as-is (it was just issued over the login
// channel) and supplies the user id and email. The session is persisted
// before it is announced.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	m.loading = true
	token, err := m.auth.Login(ctx, email, password)
	m.loading = false

	if err != nil {
		m.logger.Error("login", "error", err)
		if errors.Is(err, ErrInvalidCredentials) {
			m.alert.Alert("Login failed", "Invalid credentials.")
			return ErrInvalidCredentials
		}
		m.alert.Alert("Login failed", "Could not log in. Please try again.")
		return errors.New("login failed")
	}

	return m.establish(token)
}

// Register creates an account and opens a session with the returned token,
// same as a successful login.
func (m *Manager) Register(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	m.loading = true
	token, err := m.auth.Register(ctx, email, password)
	m.loading = false

	if err != nil {
		m.logger.Error("register", "error", err)
		if errors.Is(err, ErrEmailTaken) {
			m.alert.Alert("Registration failed", "That email is already registered.")
			return ErrEmailTaken
		}
		m.alert.Alert("Registration failed", "Could not register. Please try again.")
		return errors.New("registration failed")
	}

	return m.establish(token)
}

// Logout clears the session from memory and storage. No remote call; token
// invalidation server-side is not this client's concern.
func (m *Manager) Logout() {
	m.active = nil
	if err := m.store.Clear(); err != nil {
		m.logger.Error("clear session", "error", err)
	}
}

// Invalidate is the uniform reaction to an expired authorization: the
// session is gone and the user is routed back to the login boundary.
func (m *Manager) Invalidate() {
	m.Logout()
	m.nav.ToLogin()
}

// Restore reinstates a persisted session at process start, without touching
// the network. Absent or malformed records are discarded silently.
func (m *Manager) Restore() {
	s, err := m.store.Load()
	if err != nil {
		return
	}
	if s.UserID == "" || s.Email == "" || s.Token == "" {
		return
	}
	m.active = s
}

func (m *Manager) establish(token string) error {
	payload, err := claims.Decode(token)
	if err != nil {
		m.logger.Error("decode token", "error", err)
		m.alert.Alert("Login failed", "Could not log in. Please try again.")
		return errors.New("login failed")
	}

	s := &Session{
		UserID: payload.Subject,
		Email:  payload.Email,
		Token:  token,
	}
	if err := m.store.Save(s); err != nil {
		m.logger.Error("persist session", "error", err)
	}
	m.active = s
	m.nav.ToAuthenticated()
	return nil
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return ErrEmptyCredentials
	}
	if !emailRe.MatchString(email) {
		return ErrBadEmail
	}
	return nil
}
