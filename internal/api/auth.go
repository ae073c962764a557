package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/meridianfirm/firmdesk/internal/common"
)

// Credentials is the login payload for POST token/.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is the backend's response to a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair and stores it. Invalid
// credentials come back as a UserError rather than a raw 401.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	var tokens TokenPair
	if err := c.postUnauthenticated(ctx, "token/", creds, &tokens); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return common.NewUserError("invalid email or password", common.ErrUnauthorized)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	if err := c.sessions.SetTokens(tokens.Access, tokens.Refresh); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Logout discards the stored session. The backend issues stateless tokens,
// so there is nothing to revoke server-side.
func (c *Client) Logout() error {
	if err := c.sessions.Clear(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}
