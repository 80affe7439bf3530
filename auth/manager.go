package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/papersrc/papersrc/log"
	"github.com/papersrc/papersrc/network"
	"github.com/papersrc/papersrc/source"
	"github.com/papersrc/papersrc/store"
	"github.com/samber/mo"
	"golang.org/x/sync/singleflight"
)

// Endpoint names a remote auth operation.
type Endpoint string

const (
	Login   Endpoint = "login"
	Refresh Endpoint = "refresh"
	Logout  Endpoint = "logout"
)

// Envelope is the response body of every auth endpoint.
type Envelope struct {
	Result string `json:"result"`
	Token  *struct {
		Session string `json:"session"`
		Refresh string `json:"refresh"`
	} `json:"token,omitempty"`
	Errors []source.APIErrorItem `json:"errors,omitempty"`
}

// Manager owns the secret store keys of one source and its auth calls.
type Manager struct {
	secrets  store.Store
	executor network.Executor
	baseURL  string

	// inflight holds at most one pending call per endpoint.
	// Entries are dropped as soon as the call settles, so results are never reused.
	inflight singleflight.Group
}

// NewManager returns a Manager posting to baseURL + endpoint.
func NewManager(secrets store.Store, executor network.Executor, baseURL string) *Manager {
	return &Manager{
		secrets:  secrets,
		executor: executor,
		baseURL:  baseURL,
	}
}

func (m *Manager) Session() (mo.Option[*Session], error) {
	return GetSession(m.secrets)
}

func (m *Manager) Save(access, refresh mo.Option[string]) (mo.Option[*Session], error) {
	return SaveSession(m.secrets, access, refresh)
}

// Call posts payload to endpoint. Concurrent calls to the same endpoint share one request
// and its outcome; the request runs with the first caller's context.
func (m *Manager) Call(ctx context.Context, endpoint Endpoint, payload any) (*Envelope, error) {
	result, err, shared := m.inflight.Do(string(endpoint), func() (any, error) {
		return m.call(ctx, endpoint, payload)
	})
	if shared {
		log.Debugf("auth: joined in-flight %s call", endpoint)
	}
	if err != nil {
		return nil, err
	}
	return result.(*Envelope), nil
}

func (m *Manager) call(ctx context.Context, endpoint Endpoint, payload any) (*Envelope, error) {
	url := m.baseURL + string(endpoint)
	resp, err := m.executor.Schedule(ctx, &network.Request{
		Method:  http.MethodPost,
		URL:     url,
		Headers: map[string]string{"Content-Type": "application/json"},
		Data:    payload,
	}, 1)
	if err != nil {
		return nil, err
	}

	if err := source.CheckStatus(resp.Status, url); err != nil {
		log.Errorf("auth: %s: %v", endpoint, err)
		return nil, err
	}

	var envelope Envelope
	if err := resp.JSON(&envelope); err != nil {
		return nil, &source.MalformedResponseError{What: string(endpoint) + " envelope", Err: err}
	}

	if envelope.Result != "ok" {
		return nil, &source.APIError{Errors: envelope.Errors}
	}

	return &envelope, nil
}

// Login validates the credentials locally, exchanges them for a token pair and stores it.
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" {
		return nil, &source.ValidationError{Field: "Username", Reason: "must not be empty"}
	}
	if password == "" {
		return nil, &source.ValidationError{Field: "Password", Reason: "must not be empty"}
	}

	envelope, err := m.Call(ctx, Login, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	return m.saveEnvelope(envelope)
}

// Refresh trades the stored refresh token for a new pair.
func (m *Manager) Refresh(ctx context.Context) (*Session, error) {
	current, err := m.Session()
	if err != nil {
		return nil, err
	}

	session, ok := current.Get()
	if !ok {
		return nil, &source.ValidationError{Field: "Session", Reason: "is not logged in"}
	}

	token, ok := session.RefreshToken.Get()
	if !ok || token == "" {
		return nil, &source.ValidationError{Field: "Refresh token", Reason: "is not stored"}
	}

	envelope, err := m.Call(ctx, Refresh, map[string]any{"token": token})
	if err != nil {
		return nil, err
	}

	return m.saveEnvelope(envelope)
}

// Logout invalidates the session remotely, then clears both token slots.
func (m *Manager) Logout(ctx context.Context) error {
	if _, err := m.Call(ctx, Logout, map[string]any{}); err != nil {
		return err
	}
	_, err := m.Save(mo.None[string](), mo.None[string]())
	return err
}

func (m *Manager) saveEnvelope(envelope *Envelope) (*Session, error) {
	if envelope.Token == nil || envelope.Token.Session == "" {
		return nil, &source.MalformedResponseError{What: "token missing from auth response"}
	}

	saved, err := m.Save(mo.Some(envelope.Token.Session), mo.Some(envelope.Token.Refresh))
	if err != nil {
		return nil, err
	}

	session, ok := saved.Get()
	if !ok {
		return nil, fmt.Errorf("session was not saved")
	}
	return session, nil
}
