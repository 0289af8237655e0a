package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shubh-37/content-commander/internal/models"
	"github.com/shubh-37/content-commander/internal/tiktok"
)

var (
	ErrEmptyInput = errors.New("empty input")
	ErrLinkFailed = errors.New("account validation failed")
)

// LinkMethod is how an account gets linked: Simulated or TokenBacked
type LinkMethod interface {
	linkMethod()
}

// Simulated links a handle without contacting the platform
type Simulated struct {
	Handle string
}

// TokenBacked links the account that owns an access token
type TokenBacked struct {
	Token string
}

func (Simulated) linkMethod()   {}
func (TokenBacked) linkMethod() {}

// TokenValidator resolves an access token to a profile
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*tiktok.UserInfo, error)
}

// NewSimulatedAccount builds an account for handle with a random palette color
func NewSimulatedAccount(handle string, rng *rand.Rand) (models.TikTokAccount, error) {
	name := strings.TrimSpace(handle)
	if name == "" {
		return models.TikTokAccount{}, ErrEmptyInput
	}
	if !strings.HasPrefix(name, "@") {
		name = "@" + name
	}

	return models.TikTokAccount{
		ID:          uuid.New().String(),
		Username:    name,
		AvatarColor: models.AvatarPalette[rng.Intn(len(models.AvatarPalette))],
	}, nil
}

// NewTokenAccount builds an API-connected account from a validated profile
func NewTokenAccount(token string, user *tiktok.UserInfo) models.TikTokAccount {
	return models.TikTokAccount{
		ID:          uuid.New().String(),
		Username:    user.DisplayName,
		AvatarColor: models.ColorCyan,
		AccessToken: token,
	}
}

// Linker adds accounts to a session
type Linker struct {
	validator TokenValidator

	mu  sync.Mutex
	rng *rand.Rand
}

func NewLinker(validator TokenValidator, seed int64) *Linker {
	return &Linker{
		validator: validator,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Link creates the account for method, appends it to the session and selects it.
// Nothing is added when input is empty or validation fails.
func (l *Linker) Link(ctx context.Context, sess *Session, method LinkMethod) (models.TikTokAccount, error) {
	account, err := l.build(ctx, method)
	if err != nil {
		return models.TikTokAccount{}, err
	}

	if err := sess.AddAccount(ctx, account); err != nil {
		return models.TikTokAccount{}, err
	}
	return account, nil
}

func (l *Linker) build(ctx context.Context, method LinkMethod) (models.TikTokAccount, error) {
	switch m := method.(type) {
	case Simulated:
		l.mu.Lock()
		defer l.mu.Unlock()
		return NewSimulatedAccount(m.Handle, l.rng)

	case TokenBacked:
		token := strings.TrimSpace(m.Token)
		if token == "" {
			return models.TikTokAccount{}, ErrEmptyInput
		}
		if l.validator == nil {
			return models.TikTokAccount{}, fmt.Errorf("%w: no validator configured", ErrLinkFailed)
		}
		user, err := l.validator.ValidateToken(ctx, token)
		if err != nil {
			return models.TikTokAccount{}, fmt.Errorf("%w: %v", ErrLinkFailed, err)
		}
		if user == nil {
			return models.TikTokAccount{}, fmt.Errorf("%w: empty profile", ErrLinkFailed)
		}
		return NewTokenAccount(token, user), nil

	default:
		return models.TikTokAccount{}, fmt.Errorf("unsupported link method %T", method)
	}
}
