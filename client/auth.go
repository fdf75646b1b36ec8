package client

import (
	"context"
	"fmt"

	"github.com/swiftcab/swiftcab-go/domain"
)

// RegisterParams are the fields for account creation. Role must be rider
// or driver; admin accounts are provisioned out of band.
type RegisterParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates an account. It does not sign the session in.
func (c *Client) Register(ctx context.Context, p RegisterParams) error {
	if p.Name == "" || p.Email == "" || p.Password == "" {
		return fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	return c.do(ctx, "POST", "/auth/register", p, nil)
}

type loginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login establishes the credentialed session. The session cookie is held
// in the client's jar and sent on every later call.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	return c.do(ctx, "POST", "/auth/login", loginParams{Email: email, Password: password}, nil)
}

// Logout ends the session server-side. The local cookie becomes useless
// whether or not the call succeeds.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "POST", "/auth/logout", nil, nil)
}
