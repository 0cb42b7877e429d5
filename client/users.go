package client

import (
	"context"
	"fmt"
)

const (
	mePath            = "/users/api/users/me"
	updateProfilePath = "/users/api/users/update-profile"
)

// UserClient reads and updates the signed-in user's profile through the gateway.
type UserClient struct {
	gw *Gateway
}

// NewUserClient creates a UserClient on top of an existing Gateway.
func NewUserClient(gw *Gateway) *UserClient { return &UserClient{gw: gw} }

// Me returns the profile of the signed-in user.
func (c *UserClient) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.gw.Get(ctx, mePath, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &out, nil
}

// UpdateProfile updates the profile and returns the resulting record.
func (c *UserClient) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	var out User
	if err := c.gw.Put(ctx, updateProfilePath, req, &out); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &out, nil
}
