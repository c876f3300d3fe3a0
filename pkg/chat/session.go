package chat

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openshift/sippy-chat/pkg/chatclient"
)

type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusInitializing  Status = "initializing"
	StatusReady         Status = "ready"
	StatusError         Status = "error"
)

// ReasonAuthRequired marks an Error status caused by a missing login. It is shown to
// the user and not retried automatically.
const ReasonAuthRequired = "auth_required"

// ErrInvalidTransition is returned for a status change the lifecycle does not allow.
var ErrInvalidTransition = errors.New("invalid session status transition")

// forward transitions; Reset bypasses this table.
var transitions = map[Status][]Status{
	StatusUninitialized: {StatusInitializing},
	StatusInitializing:  {StatusReady, StatusError},
	StatusError:         {StatusInitializing},
	StatusReady:         {StatusUninitialized},
}

func canTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Session is the client-local conversation context.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Status    Status    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
}

// NewSessionID mints a locally unique id from the creation time and a random suffix.
func NewSessionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix)
}

type AuthState int

const (
	AuthLoading AuthState = iota
	AuthUnauthenticated
	AuthAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case AuthLoading:
		return "loading"
	case AuthUnauthenticated:
		return "unauthenticated"
	case AuthAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("AuthState(%d)", int(s))
	}
}

// AuthStatus reports the state of the external authentication collaborator.
type AuthStatus interface {
	AuthState(ctx context.Context) AuthState
}

// AuthStateFunc adapts a function to the AuthStatus interface.
type AuthStateFunc func(ctx context.Context) AuthState

func (f AuthStateFunc) AuthState(ctx context.Context) AuthState {
	return f(ctx)
}

// TokenAuth derives the auth state from a token provider: a valid token means
// authenticated, anything else unauthenticated.
type TokenAuth struct {
	Tokens chatclient.TokenProvider
}

func (a TokenAuth) AuthState(ctx context.Context) AuthState {
	if a.Tokens == nil {
		return AuthUnauthenticated
	}
	if err := a.Tokens.EnsureValid(ctx); err != nil {
		return AuthUnauthenticated
	}
	return AuthAuthenticated
}

// jitter spreads retries of concurrent clients.
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d + time.Duration(rand.Int63n(int64(d)/4+1)) //nolint:gosec
}
