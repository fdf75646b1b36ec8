package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/swiftcab/swiftcab-go/domain"
)

// Me fetches the current identity record.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var wire userWire
	if err := c.do(ctx, "GET", "/user/me", nil, &wire); err != nil {
		return nil, err
	}
	user := wire.toDomain()
	return &user, nil
}

// UpdateProfileParams are the mutable profile fields.
type UpdateProfileParams struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UpdateProfile patches the caller's own profile.
func (c *Client) UpdateProfile(ctx context.Context, userID string, p UpdateProfileParams) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	var wire userWire
	if err := c.do(ctx, "PATCH", "/user/"+url.PathEscape(userID), p, &wire); err != nil {
		return nil, err
	}
	user := wire.toDomain()
	return &user, nil
}

type changePasswordParams struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword rotates the caller's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}
	return c.do(ctx, "PATCH", "/user/change-password",
		changePasswordParams{OldPassword: oldPassword, NewPassword: newPassword}, nil)
}

// ToggleAvailability flips the caller's online/offline flag. Drivers only;
// the server rejects other roles.
func (c *Client) ToggleAvailability(ctx context.Context) (*domain.User, error) {
	var wire userWire
	if err := c.do(ctx, "PATCH", "/user/availability", nil, &wire); err != nil {
		return nil, err
	}
	user := wire.toDomain()
	return &user, nil
}

// BecomeDriver files the caller's driver request with the given vehicle.
// The request settles in driverRequest.status = pending until an admin
// decides it.
func (c *Client) BecomeDriver(ctx context.Context, vehicle domain.Vehicle) (*domain.User, error) {
	if vehicle.Model == "" || vehicle.Plate == "" {
		return nil, fmt.Errorf("%w: vehicle model and plate are required", domain.ErrValidation)
	}
	body := vehicleWire{Type: string(vehicle.Type), Model: vehicle.Model, Plate: vehicle.Plate}
	var wire userWire
	if err := c.do(ctx, "PATCH", "/user/become-driver", body, &wire); err != nil {
		return nil, err
	}
	user := wire.toDomain()
	return &user, nil
}

// ApproveDriver decides a pending driver request. Admin only.
func (c *Client) ApproveDriver(ctx context.Context, userID string, decision domain.DriverRequestStatus) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	if decision != domain.DriverRequestApproved && decision != domain.DriverRequestRejected {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", domain.ErrValidation)
	}
	path := "/user/driver-request/" + url.PathEscape(userID) + "/approve?status=" + string(decision)
	var wire userWire
	if err := c.do(ctx, "PATCH", path, nil, &wire); err != nil {
		return nil, err
	}
	user := wire.toDomain()
	return &user, nil
}

// ToggleBlock flips a user's block flag. Admin only.
func (c *Client) ToggleBlock(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	var wire userWire
	if err := c.do(ctx, "PATCH", "/user/"+url.PathEscape(userID)+"/toggle-block", nil, &wire); err != nil {
		return nil, err
	}
	user := wire.toDomain()
	return &user, nil
}

// AllUsers lists every account. Admin only.
func (c *Client) AllUsers(ctx context.Context) ([]domain.User, error) {
	var wires []userWire
	if err := c.do(ctx, "GET", "/user/all-user", nil, &wires); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(wires))
	for _, w := range wires {
		users = append(users, w.toDomain())
	}
	return users, nil
}
