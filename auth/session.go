// Package auth manages a bearer token pair kept in a source's secret store
// and the calls to the remote auth endpoints that produce it.
package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/papersrc/papersrc/store"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Secret store keys owned by this package.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Session is the token pair plus the access token's decoded payload.
type Session struct {
	AccessToken  string
	RefreshToken mo.Option[string]
	// Payload is decoded from AccessToken whenever the session is read, never stored.
	Payload mo.Option[jwt.MapClaims]
}

func newSession(access string, refresh mo.Option[string]) *Session {
	return &Session{
		AccessToken:  access,
		RefreshToken: refresh,
		Payload:      DecodePayload(access),
	}
}

// DecodePayload reads the claims of a JWT without verifying its signature.
// Tokens that are not JWTs decode to None.
func DecodePayload(token string) mo.Option[jwt.MapClaims] {
	if token == "" {
		return mo.None[jwt.MapClaims]()
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser(jwt.WithJSONNumber()).ParseUnverified(token, claims); err != nil {
		return mo.None[jwt.MapClaims]()
	}
	return mo.Some(claims)
}

// GetSession returns None when no access token is stored.
func GetSession(secrets store.Store) (mo.Option[*Session], error) {
	access, err := store.Get[string](secrets, AccessTokenKey)
	if err != nil {
		return mo.None[*Session](), err
	}

	token, ok := access.Get()
	if !ok || token == "" {
		return mo.None[*Session](), nil
	}

	refresh, err := store.Get[string](secrets, RefreshTokenKey)
	if err != nil {
		return mo.None[*Session](), err
	}

	return mo.Some(newSession(token, refresh)), nil
}

// SaveSession overwrites both token slots. Passing None for both logs out.
// The resulting session is returned, or None when there is no access token.
func SaveSession(secrets store.Store, access, refresh mo.Option[string]) (mo.Option[*Session], error) {
	err := errors.Join(
		secrets.Store(AccessTokenKey, optionValue(access)),
		secrets.Store(RefreshTokenKey, optionValue(refresh)),
	)
	if err != nil {
		return mo.None[*Session](), fmt.Errorf("save session: %w", err)
	}

	token, ok := access.Get()
	if !ok || token == "" {
		return mo.None[*Session](), nil
	}
	return mo.Some(newSession(token, refresh)), nil
}

func optionValue(o mo.Option[string]) any {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}

// Claim is one payload entry prepared for display.
type Claim struct {
	Key   string
	Value string
}

// Introspect flattens the payload into sorted claims. Arrays are joined by newlines.
func (s *Session) Introspect() []Claim {
	payload, ok := s.Payload.Get()
	if !ok {
		return []Claim{}
	}

	keys := lo.Keys(payload)
	sort.Strings(keys)

	return lo.Map(keys, func(k string, _ int) Claim {
		switch value := payload[k].(type) {
		case []any:
			return Claim{Key: k, Value: strings.Join(lo.Map(value, func(v any, _ int) string { return fmt.Sprint(v) }), "\n")}
		default:
			return Claim{Key: k, Value: fmt.Sprint(value)}
		}
	})
}

// Expired reports whether the access token's exp claim lies before now.
// Tokens without a readable exp never expire.
func (s *Session) Expired(now time.Time) bool {
	payload, ok := s.Payload.Get()
	if !ok {
		return false
	}

	exp, err := payload.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
