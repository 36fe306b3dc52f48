package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/krisk248/IITM-reap-project/internal/server"
	"github.com/krisk248/IITM-reap-project/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// Authenticator manages the installed-app OAuth2 flow and token persistence.
//
// The client secret file is the JSON downloaded from the API console; the
// token file is written after the first successful consent and reused (with
// automatic refresh) on later runs.
type Authenticator struct {
	config    *oauth2.Config
	tokenPath string
}

// NewAuthenticator builds an Authenticator from a client secret file.
// The callback server listens on host:port and the redirect URL must match
// one registered for the OAuth client.
func NewAuthenticator(clientSecretPath, tokenPath, host string, port int) (*Authenticator, error) {
	data, err := shared.VerifyAndReadFile(clientSecretPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMissingCredentials, err)
	}

	config, err := google.ConfigFromJSON(data, youtube.YoutubeForceSslScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}
	config.RedirectURL = fmt.Sprintf("http://%s:%d/callback", host, port)

	return &Authenticator{config: config, tokenPath: tokenPath}, nil
}

// Token returns the persisted token, or an error wrapping
// [shared.ErrNotAuthenticated] when no token file exists.
func (a *Authenticator) Token() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.tokenPath)
	if err != nil {
		return nil, fmt.Errorf("%w: no token at %s", shared.ErrNotAuthenticated, a.tokenPath)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("%w: corrupt token file: %v", shared.ErrNotAuthenticated, err)
	}

	return &token, nil
}

// TokenSource returns a refreshing token source backed by the saved token.
func (a *Authenticator) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	token, err := a.Token()
	if err != nil {
		return nil, err
	}
	return a.config.TokenSource(ctx, token), nil
}

// SaveToken writes a token to the token file with owner-only permissions.
func (a *Authenticator) SaveToken(token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(a.tokenPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Authorize runs the browser consent flow: it starts a loopback callback
// server, opens the consent URL, waits for the redirect, and persists the
// exchanged token.
func (a *Authenticator) Authorize(ctx context.Context, addr string, openBrowser func(string) error) error {
	state := shared.GenerateID()
	handler := server.NewOAuthHandler(a.config, state)

	router := server.NewBasicRouter()
	router.Handler(handler)

	srv := &http.Server{Addr: addr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	authURL := a.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	if openBrowser == nil {
		openBrowser = shared.OpenBrowser
	}
	if err := openBrowser(authURL); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	select {
	case result := <-handler.Result():
		if err := result.Error(); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
		}
		return a.SaveToken(result.Token)
	case err := <-errCh:
		return fmt.Errorf("%w: callback server: %v", shared.ErrAuthFailed, err)
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", shared.ErrTimeout, ctx.Err())
	}
}
