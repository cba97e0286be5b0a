package auth

import (
	"context"
	"fmt"

	"github.com/abgdnv/storefront/pkg/api"
)

// Client calls the authentication endpoints of the backend.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	Message string `json:"message"`
}

// Register creates a new account and returns the server confirmation
// message. On failure the server-supplied detail is preserved in the error.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var resp signupResponse
	err := c.api.Post(ctx, "/auth/signup", signupRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		if detail := api.DetailOf(err); detail != "" {
			return "", fmt.Errorf("signup failed: %s: %w", detail, err)
		}
		return "", fmt.Errorf("signup failed: %w", err)
	}
	return resp.Message, nil
}
