package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
)

// AuthLogin runs the OAuth2 consent flow and persists the exchanged token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	auth, err := r.authenticator()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	r.logger.Info("starting OAuth callback server", "addr", addr)
	r.writePlain("Opening browser for consent; waiting for the callback on %s\n", addr)

	if err := auth.Authorize(ctx, addr, nil); err != nil {
		return err
	}

	r.logger.Info("token saved", "path", config.Credentials.TokenPath)
	r.writePlain("✓ Authenticated, token saved to %s\n", config.Credentials.TokenPath)
	return nil
}

// AuthStatus reports whether a saved token exists and whether it has expired.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	auth, err := r.authenticator()
	if err != nil {
		return err
	}

	token, err := auth.Token()
	if err != nil {
		r.writePlain("✗ Not authenticated: %v\n", err)
		return nil
	}

	r.writePlain("✓ Token found at %s\n", config.Credentials.TokenPath)
	if token.Expiry.IsZero() {
		r.writePlain("Access token has no recorded expiry\n")
	} else if time.Now().After(token.Expiry) {
		r.writePlain("Access token expired at %s (will refresh on next use)\n",
			token.Expiry.Format(time.RFC3339))
	} else {
		r.writePlain("Access token valid until %s\n", token.Expiry.Format(time.RFC3339))
	}
	if token.RefreshToken != "" {
		r.writePlain("Refresh token present\n")
	}
	return nil
}
