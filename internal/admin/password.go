package admin

import (
	"context"
	"fmt"
)

// PasswordForm holds the new admin password and its confirmation.
type PasswordForm struct {
	New     string
	Confirm string
}

// Validate requires a password and a matching confirmation.
func (f *PasswordForm) Validate() error {
	if f.New == "" {
		return invalid("new", "Password baru wajib diisi")
	}
	if f.New != f.Confirm {
		return invalid("confirm", "Password tidak cocok!")
	}
	return nil
}

// PasswordAPI changes the admin password remotely.
type PasswordAPI interface {
	UpdatePassword(ctx context.Context, newPassword string) error
}

// ChangePassword validates form and submits the new password.
func ChangePassword(ctx context.Context, api PasswordAPI, form PasswordForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	if err := api.UpdatePassword(ctx, form.New); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
