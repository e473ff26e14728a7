package account

import (
	"context"
	"errors"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/linkdeck/linkdeck/internal/platform/logging"
	"github.com/linkdeck/linkdeck/internal/service/analytics"
	"github.com/linkdeck/linkdeck/internal/service/block"
	"github.com/linkdeck/linkdeck/internal/service/message"
	"github.com/linkdeck/linkdeck/internal/service/profile"
)

// Account errors
var (
	ErrConfirmationMismatch = errors.New("confirmation phrase does not match")
	ErrUserNotFound         = errors.New("user not found")
)

// DeleteConfirmation is the phrase a user must type to delete their account.
const DeleteConfirmation = "DELETE"

// UserAdmin exposes the Firebase user management operations the account
// service needs.
type UserAdmin interface {
	Email(ctx context.Context, uid string) (string, error)
	UpdateEmail(ctx context.Context, uid, email string) error
	UpdatePassword(ctx context.Context, uid, password string) error
	DeleteUser(ctx context.Context, uid string) error
}

// FirebaseAdmin implements UserAdmin on the Firebase Admin SDK.
type FirebaseAdmin struct {
	client *fbauth.Client
}

// NewFirebaseAdmin creates a new Admin SDK-backed UserAdmin.
func NewFirebaseAdmin(client *fbauth.Client) *FirebaseAdmin {
	return &FirebaseAdmin{client: client}
}

func (a *FirebaseAdmin) Email(ctx context.Context, uid string) (string, error) {
	user, err := a.client.GetUser(ctx, uid)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("fetching user: %w", err)
	}
	return user.Email, nil
}

func (a *FirebaseAdmin) UpdateEmail(ctx context.Context, uid, email string) error {
	_, err := a.client.UpdateUser(ctx, uid, (&fbauth.UserToUpdate{}).Email(email))
	if err != nil {
		return fmt.Errorf("updating email: %w", err)
	}
	return nil
}

func (a *FirebaseAdmin) UpdatePassword(ctx context.Context, uid, password string) error {
	_, err := a.client.UpdateUser(ctx, uid, (&fbauth.UserToUpdate{}).Password(password))
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}

func (a *FirebaseAdmin) DeleteUser(ctx context.Context, uid string) error {
	if err := a.client.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// Service performs sensitive account operations. Every operation requires a
// fresh password check before it touches the user record.
type Service struct {
	admin    UserAdmin
	reauth   Reauthenticator
	profiles profile.Service
	blocks   block.Service
	messages message.Service
	clicks   analytics.Service
}

// NewService wires the account service to its collaborators.
func NewService(
	admin UserAdmin,
	reauth Reauthenticator,
	profiles profile.Service,
	blocks block.Service,
	messages message.Service,
	clicks analytics.Service,
) *Service {
	return &Service{
		admin:    admin,
		reauth:   reauth,
		profiles: profiles,
		blocks:   blocks,
		messages: messages,
		clicks:   clicks,
	}
}

// reauthenticate resolves the user's email and verifies the supplied password.
func (s *Service) reauthenticate(ctx context.Context, uid, password string) error {
	email, err := s.admin.Email(ctx, uid)
	if err != nil {
		return err
	}
	return s.reauth.Reauthenticate(ctx, email, password)
}

// ChangeEmail updates the sign-in email after verifying the current password.
func (s *Service) ChangeEmail(ctx context.Context, uid, currentPassword, newEmail string) error {
	if err := s.reauthenticate(ctx, uid, currentPassword); err != nil {
		logging.LogAuditEvent(ctx, "change_email", uid, "account", uid, "failure",
			map[string]any{"error": "reauth"})
		return err
	}
	if err := s.admin.UpdateEmail(ctx, uid, newEmail); err != nil {
		logging.LogAuditEvent(ctx, "change_email", uid, "account", uid, "failure", nil)
		return err
	}
	logging.LogAuditEvent(ctx, "change_email", uid, "account", uid, "success", nil)
	return nil
}

// ChangePassword updates the sign-in password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, uid, currentPassword, newPassword string) error {
	if err := s.reauthenticate(ctx, uid, currentPassword); err != nil {
		logging.LogAuditEvent(ctx, "change_password", uid, "account", uid, "failure",
			map[string]any{"error": "reauth"})
		return err
	}
	if err := s.admin.UpdatePassword(ctx, uid, newPassword); err != nil {
		logging.LogAuditEvent(ctx, "change_password", uid, "account", uid, "failure", nil)
		return err
	}
	logging.LogAuditEvent(ctx, "change_password", uid, "account", uid, "success", nil)
	return nil
}

// Delete removes the account and every piece of data it owns: blocks,
// guestbook messages, click history, the profile (which releases the slug),
// and finally the Firebase user itself. The caller must supply the literal
// confirmation phrase and their current password.
func (s *Service) Delete(ctx context.Context, uid, currentPassword, confirmation string) error {
	if confirmation != DeleteConfirmation {
		return ErrConfirmationMismatch
	}
	if err := s.reauthenticate(ctx, uid, currentPassword); err != nil {
		logging.LogAuditEvent(ctx, "delete_account", uid, "account", uid, "failure",
			map[string]any{"error": "reauth"})
		return err
	}

	if err := s.blocks.DeleteAll(ctx, uid); err != nil {
		return fmt.Errorf("deleting blocks: %w", err)
	}
	if err := s.messages.DeleteAll(ctx, uid); err != nil {
		return fmt.Errorf("deleting messages: %w", err)
	}
	if err := s.clicks.DeleteAll(ctx, uid); err != nil {
		return fmt.Errorf("deleting click history: %w", err)
	}
	if err := s.profiles.Delete(ctx, uid); err != nil && !errors.Is(err, profile.ErrNotFound) {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if err := s.admin.DeleteUser(ctx, uid); err != nil {
		return err
	}
	logging.LogAuditEvent(ctx, "delete_account", uid, "account", uid, "success", nil)
	return nil
}
