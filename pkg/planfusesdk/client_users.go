package planfusesdk

import (
	"context"
	"net/http"
	"net/url"
)

// Register creates a new user account. Registering does not log the user
// in; call Login afterwards.
func (c *SDKClient) Register(ctx context.Context, username, password string) (*UserResponse, error) {
	resp, err := c.doJSONRequest(ctx, http.MethodPost, "/v1/users", RegisterRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserProfile looks up a user's public profile by username.
func (c *SDKClient) GetUserProfile(ctx context.Context, username string) (*UserResponse, error) {
	path := "/v1/users/username/" + url.PathEscape(username)

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}
