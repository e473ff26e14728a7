package account

import (
	"context"
	"errors"
	"testing"

	"github.com/linkdeck/linkdeck/internal/service/analytics"
	"github.com/linkdeck/linkdeck/internal/service/block"
	"github.com/linkdeck/linkdeck/internal/service/message"
	"github.com/linkdeck/linkdeck/internal/service/profile"
)

const (
	uid   = "user-1"
	email = "jane@example.com"
)

type fixture struct {
	admin    *MockAdmin
	reauth   *MockReauthenticator
	profiles *profile.MockService
	blocks   *block.MockService
	messages *message.MockService
	clicks   *analytics.MockService
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		admin:    NewMockAdmin(uid, email),
		reauth:   &MockReauthenticator{},
		profiles: profile.NewMockService(),
		blocks:   block.NewMockService(),
		messages: message.NewMockService(),
		clicks:   analytics.NewMockService(),
	}
	f.svc = NewService(f.admin, f.reauth, f.profiles, f.blocks, f.messages, f.clicks)
	return f
}

func TestChangeEmail(t *testing.T) {
	f := newFixture()

	if err := f.svc.ChangeEmail(context.Background(), uid, "hunter2", "new@example.com"); err != nil {
		t.Fatalf("change email: %v", err)
	}
	if f.admin.Emails[uid] != "new@example.com" {
		t.Errorf("email not updated: %q", f.admin.Emails[uid])
	}
	if len(f.reauth.Attempts) != 1 || f.reauth.Attempts[0] != email {
		t.Errorf("expected reauth against the old email, got %v", f.reauth.Attempts)
	}
}

func TestChangeEmailWrongPassword(t *testing.T) {
	f := newFixture()
	f.reauth.Err = ErrReauthFailed

	err := f.svc.ChangeEmail(context.Background(), uid, "wrong", "new@example.com")
	if !errors.Is(err, ErrReauthFailed) {
		t.Fatalf("expected ErrReauthFailed, got %v", err)
	}
	if f.admin.Emails[uid] != email {
		t.Errorf("email must not change on failed reauth: %q", f.admin.Emails[uid])
	}
}

func TestChangePassword(t *testing.T) {
	f := newFixture()

	if err := f.svc.ChangePassword(context.Background(), uid, "hunter2", "correct horse"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if f.admin.Passwords[uid] != "correct horse" {
		t.Errorf("password not updated")
	}
}

func TestDeleteRequiresConfirmationPhrase(t *testing.T) {
	f := newFixture()

	err := f.svc.Delete(context.Background(), uid, "hunter2", "delete")
	if !errors.Is(err, ErrConfirmationMismatch) {
		t.Fatalf("expected ErrConfirmationMismatch for lowercase phrase, got %v", err)
	}
	if len(f.reauth.Attempts) != 0 {
		t.Error("confirmation must be checked before touching credentials")
	}
	if len(f.admin.Deleted) != 0 {
		t.Error("user must not be deleted without the confirmation phrase")
	}
}

func TestDeleteCascades(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.profiles.Create(ctx, uid, "jane", "Jane"); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	if _, err := f.blocks.Add(ctx, uid, block.KindLink,
		block.LinkPayload{Title: "x", URL: "https://example.com"}, true); err != nil {
		t.Fatalf("seed block: %v", err)
	}
	if _, err := f.messages.Create(ctx, uid, message.CreateParams{Name: "Fan", Body: "hi"}); err != nil {
		t.Fatalf("seed message: %v", err)
	}
	f.clicks.Seed(analytics.Click{OwnerID: uid, BlockID: "b1"})

	if err := f.svc.Delete(ctx, uid, "hunter2", DeleteConfirmation); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if blocks, _ := f.blocks.List(ctx, uid); len(blocks) != 0 {
		t.Errorf("blocks survived deletion: %d", len(blocks))
	}
	if msgs, _ := f.messages.List(ctx, uid); len(msgs) != 0 {
		t.Errorf("messages survived deletion: %d", len(msgs))
	}
	if stats, _ := f.clicks.BlockStats(ctx, uid); len(stats) != 0 {
		t.Errorf("click history survived deletion: %v", stats)
	}
	if _, err := f.profiles.GetBySlug(ctx, "jane"); !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("slug must be released, got %v", err)
	}
	if len(f.admin.Deleted) != 1 || f.admin.Deleted[0] != uid {
		t.Errorf("expected Firebase user deleted, got %v", f.admin.Deleted)
	}
}

func TestDeleteWithoutProfile(t *testing.T) {
	f := newFixture()

	// An account that never created a profile can still be deleted.
	if err := f.svc.Delete(context.Background(), uid, "hunter2", DeleteConfirmation); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(f.admin.Deleted) != 1 {
		t.Errorf("expected Firebase user deleted, got %v", f.admin.Deleted)
	}
}

func TestDeleteUnknownUser(t *testing.T) {
	f := newFixture()

	err := f.svc.Delete(context.Background(), "ghost", "hunter2", DeleteConfirmation)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
