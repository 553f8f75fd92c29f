package session

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"foreman/internal/client"
	"foreman/internal/types"
)

type fakeAPI struct {
	token     string
	loginResp *client.TokenResponse
	loginErr  error
	meResp    *types.User
	meErr     error
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*client.TokenResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAPI) Me(ctx context.Context) (*types.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.meResp, nil
}

func (f *fakeAPI) SetToken(token string) { f.token = token }
func (f *fakeAPI) ClearToken()           { f.token = "" }

func tokenPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "token")
}

func TestResumeWithoutStoredTokenResolvesSignedOut(t *testing.T) {
	s := NewStore(&fakeAPI{}, tokenPath(t))
	if !s.IsLoading() {
		t.Fatalf("expected loading before resume")
	}
	if err := s.Resume(context.Background()); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if s.IsLoading() || s.IsAuthenticated() {
		t.Fatalf("expected resolved signed-out state")
	}
}

func TestResumeDiscardsRejectedTokenSilently(t *testing.T) {
	path := tokenPath(t)
	if err := os.WriteFile(path, []byte("stale-token\n"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	api := &fakeAPI{meErr: &client.APIError{StatusCode: http.StatusUnauthorized, Message: "token expired"}}
	s := NewStore(api, path)
	if err := s.Resume(context.Background()); err != nil {
		t.Fatalf("expected silent fallback, got %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected signed out")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected stale token file removed")
	}
}

func TestResumeValidTokenRestoresSession(t *testing.T) {
	path := tokenPath(t)
	if err := os.WriteFile(path, []byte("good-token\n"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	api := &fakeAPI{meResp: &types.User{Email: "reviewer@example.com"}}
	s := NewStore(api, path)
	if err := s.Resume(context.Background()); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated session")
	}
	if api.token != "good-token" {
		t.Fatalf("expected token installed on client, got %q", api.token)
	}
	if s.User() == nil || s.User().Email != "reviewer@example.com" {
		t.Fatalf("expected profile loaded, got %+v", s.User())
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	api := &fakeAPI{loginErr: &client.APIError{StatusCode: http.StatusUnauthorized, Message: "bad credentials"}}
	s := NewStore(api, tokenPath(t))
	err := s.Login(context.Background(), "reviewer", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatalf("session must stay unauthenticated")
	}
}

func TestLoginServerErrorIsNotCredentialError(t *testing.T) {
	api := &fakeAPI{loginErr: &client.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}}
	s := NewStore(api, tokenPath(t))
	err := s.Login(context.Background(), "reviewer", "secret")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected distinguishable server error, got %v", err)
	}
}

func TestLoginProfileFailureLeavesSignedOut(t *testing.T) {
	api := &fakeAPI{
		loginResp: &client.TokenResponse{AccessToken: "tok"},
		meErr:     errors.New("connection reset"),
	}
	s := NewStore(api, tokenPath(t))
	if err := s.Login(context.Background(), "reviewer", "secret"); err == nil {
		t.Fatalf("expected error when profile fetch fails")
	}
	if s.IsAuthenticated() {
		t.Fatalf("session must stay unauthenticated")
	}
	if api.token != "" {
		t.Fatalf("expected token cleared from client")
	}
}

func TestLoginSuccessPersistsToken(t *testing.T) {
	path := tokenPath(t)
	api := &fakeAPI{
		loginResp: &client.TokenResponse{AccessToken: "tok-123"},
		meResp:    &types.User{Username: "reviewer"},
	}
	s := NewStore(api, path)
	if err := s.Login(context.Background(), "reviewer", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated session")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read token: %v", err)
	}
	if string(data) != "tok-123\n" {
		t.Fatalf("unexpected token file contents %q", data)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	path := tokenPath(t)
	api := &fakeAPI{
		loginResp: &client.TokenResponse{AccessToken: "tok"},
		meResp:    &types.User{Username: "reviewer"},
	}
	s := NewStore(api, path)
	if err := s.Login(context.Background(), "reviewer", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	s.Logout()
	if s.IsAuthenticated() || s.User() != nil {
		t.Fatalf("expected cleared session")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected token file removed")
	}
	if api.token != "" {
		t.Fatalf("expected client token cleared")
	}
}
