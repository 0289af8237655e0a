package session

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/shubh-37/content-commander/internal/models"
	"github.com/shubh-37/content-commander/internal/store"
	"github.com/shubh-37/content-commander/internal/tiktok"
)

type fakeValidator struct {
	user  *tiktok.UserInfo
	err   error
	calls int
}

func (f *fakeValidator) ValidateToken(ctx context.Context, token string) (*tiktok.UserInfo, error) {
	f.calls++
	return f.user, f.err
}

func TestNewSimulatedAccount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for handle, want := range map[string]string{
		"creator":     "@creator",
		"@creator":    "@creator",
		"  @creator ": "@creator",
		"@@creator":   "@@creator",
	} {
		account, err := NewSimulatedAccount(handle, rng)
		if err != nil {
			t.Fatalf("NewSimulatedAccount(%q): %v", handle, err)
		}
		if account.Username != want {
			t.Fatalf("handle %q normalized to %q, want %q", handle, account.Username, want)
		}
		if account.HasToken() {
			t.Fatalf("simulated account must not carry a token")
		}
		inPalette := false
		for _, c := range models.AvatarPalette {
			if c == account.AvatarColor {
				inPalette = true
			}
		}
		if !inPalette {
			t.Fatalf("color %s not in palette", account.AvatarColor)
		}
	}

	if _, err := NewSimulatedAccount("   ", rng); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestSimulatedColorsAreSeedable(t *testing.T) {
	a, _ := NewSimulatedAccount("x", rand.New(rand.NewSource(7)))
	b, _ := NewSimulatedAccount("x", rand.New(rand.NewSource(7)))
	if a.AvatarColor != b.AvatarColor {
		t.Fatalf("same seed gave %s and %s", a.AvatarColor, b.AvatarColor)
	}
}

func TestLinkSimulatedSelectsAccount(t *testing.T) {
	ctx := context.Background()
	sess, kv := openSession(t)
	linker := NewLinker(&fakeValidator{}, 1)

	account, err := linker.Link(ctx, sess, Simulated{Handle: "newbie"})
	if err != nil {
		t.Fatalf("Link: %v", err)
	}

	accounts := sess.Accounts()
	if len(accounts) != 2 || accounts[1].ID != account.ID {
		t.Fatalf("expected account appended, got %+v", accounts)
	}
	target, _ := sess.TargetAccount()
	if target.ID != account.ID {
		t.Fatalf("expected new account selected, got %+v", target)
	}

	persisted, _ := store.New(kv).LoadAccounts(ctx)
	if len(persisted) != 2 {
		t.Fatalf("accounts not persisted: %+v", persisted)
	}
}

func TestLinkTokenBacked(t *testing.T) {
	ctx := context.Background()
	sess, _ := openSession(t)
	validator := &fakeValidator{user: &tiktok.UserInfo{DisplayName: "Real Creator"}}
	linker := NewLinker(validator, 1)

	account, err := linker.Link(ctx, sess, TokenBacked{Token: "act.1"})
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if account.Username != "Real Creator" || account.AccessToken != "act.1" || account.AvatarColor != models.ColorCyan {
		t.Fatalf("unexpected account %+v", account)
	}
}

func TestLinkFailureAddsNothing(t *testing.T) {
	ctx := context.Background()
	sess, kv := openSession(t)
	validator := &fakeValidator{err: tiktok.ErrInvalidToken}
	linker := NewLinker(validator, 1)
	writesBefore := kv.Writes()

	if _, err := linker.Link(ctx, sess, TokenBacked{Token: "bad"}); !errors.Is(err, ErrLinkFailed) {
		t.Fatalf("expected ErrLinkFailed, got %v", err)
	}
	if _, err := linker.Link(ctx, sess, TokenBacked{Token: "  "}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := linker.Link(ctx, sess, Simulated{Handle: ""}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}

	if validator.calls != 1 {
		t.Fatalf("expected one validation call, got %d", validator.calls)
	}
	if len(sess.Accounts()) != 1 {
		t.Fatalf("expected no account added, got %+v", sess.Accounts())
	}
	if kv.Writes() != writesBefore {
		t.Fatalf("expected no writes, got %d", kv.Writes()-writesBefore)
	}
}

func TestLinkEmptyProfileAddsNothing(t *testing.T) {
	ctx := context.Background()
	sess, kv := openSession(t)
	validator := &fakeValidator{}
	linker := NewLinker(validator, 1)
	writesBefore := kv.Writes()

	if _, err := linker.Link(ctx, sess, TokenBacked{Token: "act.nobody"}); !errors.Is(err, ErrLinkFailed) {
		t.Fatalf("expected ErrLinkFailed, got %v", err)
	}
	if validator.calls != 1 {
		t.Fatalf("expected one validation call, got %d", validator.calls)
	}
	if len(sess.Accounts()) != 1 {
		t.Fatalf("expected no account added, got %+v", sess.Accounts())
	}
	if kv.Writes() != writesBefore {
		t.Fatalf("expected no writes, got %d", kv.Writes()-writesBefore)
	}
}
