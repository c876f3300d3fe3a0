package chatclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var (
	ErrNoToken      = errors.New("no token available")
	ErrTokenExpired = errors.New("token expired")
)

// TokenProvider is the capability the client uses to authenticate. EnsureValid is
// called before every privileged request and may refresh the token as a side effect.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
	EnsureValid(ctx context.Context) error
}

// StaticTokenProvider always returns the same token.
type StaticTokenProvider struct {
	Token string
	now   func() time.Time
}

func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{Token: token, now: time.Now}
}

func (p *StaticTokenProvider) GetToken(context.Context) (string, error) {
	if p.Token == "" {
		return "", ErrNoToken
	}
	return p.Token, nil
}

func (p *StaticTokenProvider) EnsureValid(context.Context) error {
	return validate(p.Token, p.now)
}

// FileTokenProvider reads the token from a file on every call so that an external
// login process can rotate it.
type FileTokenProvider struct {
	Path string
	now  func() time.Time
}

func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{Path: path, now: time.Now}
}

func (p *FileTokenProvider) GetToken(context.Context) (string, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (p *FileTokenProvider) EnsureValid(ctx context.Context) error {
	token, err := p.GetToken(ctx)
	if err != nil {
		return err
	}
	return validate(token, p.now)
}

func validate(token string, now func() time.Time) error {
	if token == "" {
		return ErrNoToken
	}
	if now == nil {
		now = time.Now
	}
	if exp, ok := TokenExpiry(token); ok && !now().Before(exp) {
		return ErrTokenExpired
	}
	return nil
}

// TokenExpiry returns the "exp" claim of a JWT. Opaque tokens report false.
func TokenExpiry(token string) (time.Time, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil || !gjson.ValidBytes(payload) {
		return time.Time{}, false
	}
	exp := gjson.GetBytes(payload, "exp")
	if exp.Type != gjson.Number {
		return time.Time{}, false
	}
	return time.Unix(exp.Int(), 0), true
}
