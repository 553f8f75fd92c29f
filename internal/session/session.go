package session

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"foreman/internal/client"
	"foreman/internal/types"
)

// ErrInvalidCredentials distinguishes a rejected username/password pair from
// transport or server failures, which get their own message in the UI.
var ErrInvalidCredentials = errors.New("invalid username or password")

// API is the slice of the HTTP client the session store needs.
type API interface {
	Login(ctx context.Context, username, password string) (*client.TokenResponse, error)
	Me(ctx context.Context) (*types.User, error)
	SetToken(token string)
	ClearToken()
}

// Store owns the bearer token and the signed-in user. The token persists in
// a file under the data directory, the cookie analog for a terminal app.
type Store struct {
	api       API
	tokenPath string

	token         string
	user          *types.User
	authenticated bool
	loading       bool
}

func NewStore(api API, tokenPath string) *Store {
	return &Store{
		api:       api,
		tokenPath: strings.TrimSpace(tokenPath),
		loading:   true,
	}
}

func (s *Store) IsLoading() bool       { return s.loading }
func (s *Store) IsAuthenticated() bool { return s.authenticated }
func (s *Store) User() *types.User     { return s.user }

// Resume validates any stored token against the profile endpoint. A missing,
// expired, or rejected token silently resolves to signed out; only transport
// problems while a token exists are reported, and even then the session
// stays signed out.
func (s *Store) Resume(ctx context.Context) error {
	defer func() { s.loading = false }()

	token, err := s.readToken()
	if err != nil || token == "" {
		s.reset()
		return nil
	}
	s.api.SetToken(token)
	user, err := s.api.Me(ctx)
	if err != nil {
		s.discardToken()
		s.reset()
		if client.AsAPIError(err) != nil {
			// Expired or revoked token. Treated as signed out, no error
			// surfaced.
			return nil
		}
		return err
	}
	s.token = token
	s.user = user
	s.authenticated = true
	return nil
}

// Login exchanges credentials for a token, persists it, and fetches the
// profile. The session only becomes authenticated once both steps succeed.
func (s *Store) Login(ctx context.Context, username, password string) error {
	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		if apiErr := client.AsAPIError(err); apiErr != nil &&
			(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusBadRequest) {
			return ErrInvalidCredentials
		}
		return err
	}
	s.api.SetToken(resp.AccessToken)
	user, err := s.api.Me(ctx)
	if err != nil {
		s.api.ClearToken()
		s.reset()
		return err
	}
	// A failed write only means the token will not survive a restart; the
	// session still works for this run.
	_ = s.writeToken(resp.AccessToken)
	s.token = resp.AccessToken
	s.user = user
	s.authenticated = true
	return nil
}

// Logout clears local state unconditionally. No server round-trip is needed
// for it to succeed.
func (s *Store) Logout() {
	s.discardToken()
	s.api.ClearToken()
	s.reset()
}

func (s *Store) reset() {
	s.token = ""
	s.user = nil
	s.authenticated = false
}

func (s *Store) readToken() (string, error) {
	if s.tokenPath == "" {
		return "", nil
	}
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Store) writeToken(token string) error {
	if s.tokenPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.tokenPath), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.tokenPath, []byte(token+"\n"), 0o600)
}

func (s *Store) discardToken() {
	if s.tokenPath == "" {
		return
	}
	_ = os.Remove(s.tokenPath)
}
