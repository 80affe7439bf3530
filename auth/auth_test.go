package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/papersrc/papersrc/network"
	"github.com/papersrc/papersrc/source"
	"github.com/papersrc/papersrc/store"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func token(claims jwt.MapClaims) string {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		panic(err)
	}
	return signed
}

// fakeExecutor answers every request with the same envelope after release is closed.
type fakeExecutor struct {
	calls    atomic.Int32
	status   int
	envelope any
	release  chan struct{}
	last     *network.Request
	mu       sync.Mutex
}

func (f *fakeExecutor) Schedule(ctx context.Context, request *network.Request, _ int) (*network.Response, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.last = request
	f.mu.Unlock()

	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	data, _ := json.Marshal(f.envelope)
	return &network.Response{Status: f.status, Data: data}, nil
}

func okEnvelope(session, refresh string) map[string]any {
	return map[string]any{
		"result": "ok",
		"token":  map[string]string{"session": session, "refresh": refresh},
	}
}

func TestSession(t *testing.T) {
	Convey("Given an empty secret store", t, func() {
		secrets := store.NewMemory()

		Convey("GetSession should be None", func() {
			session, err := GetSession(secrets)
			So(err, ShouldBeNil)
			So(session.IsAbsent(), ShouldBeTrue)
		})

		Convey("When a token pair is saved", func() {
			access := token(jwt.MapClaims{"sub": "user-1", "roles": []string{"ROLE_USER", "ROLE_MEMBER"}, "exp": 1700000000})
			saved, err := SaveSession(secrets, mo.Some(access), mo.Some("refresh-1"))
			So(err, ShouldBeNil)
			So(saved.MustGet().AccessToken, ShouldEqual, access)

			Convey("GetSession should return it with a decoded payload", func() {
				session, err := GetSession(secrets)
				So(err, ShouldBeNil)
				So(session.MustGet().RefreshToken.MustGet(), ShouldEqual, "refresh-1")
				So(session.MustGet().Payload.MustGet()["sub"], ShouldEqual, "user-1")
			})

			Convey("Introspect should flatten the payload", func() {
				claims := saved.MustGet().Introspect()
				So(claims, ShouldResemble, []Claim{
					{Key: "exp", Value: "1700000000"},
					{Key: "roles", Value: "ROLE_USER\nROLE_MEMBER"},
					{Key: "sub", Value: "user-1"},
				})
			})

			Convey("Saving None for both should log out", func() {
				cleared, err := SaveSession(secrets, mo.None[string](), mo.None[string]())
				So(err, ShouldBeNil)
				So(cleared.IsAbsent(), ShouldBeTrue)

				session, err := GetSession(secrets)
				So(err, ShouldBeNil)
				So(session.IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("A token that is not a JWT should have no payload", func() {
			saved, err := SaveSession(secrets, mo.Some("opaque"), mo.None[string]())
			So(err, ShouldBeNil)
			So(saved.MustGet().Payload.IsAbsent(), ShouldBeTrue)
			So(saved.MustGet().Introspect(), ShouldBeEmpty)
		})
	})
}

func TestCall(t *testing.T) {
	Convey("Given a manager over a slow executor", t, func() {
		executor := &fakeExecutor{status: 200, envelope: okEnvelope("a", "r"), release: make(chan struct{})}
		manager := NewManager(store.NewMemory(), executor, "https://api.example.org/auth/")

		Convey("Two concurrent refresh calls should issue one request", func() {
			var wg sync.WaitGroup
			results := make([]*Envelope, 2)
			for i := range results {
				wg.Add(1)
				go func() {
					defer wg.Done()
					results[i], _ = manager.Call(context.Background(), Refresh, map[string]string{"token": "r"})
				}()
			}

			time.Sleep(100 * time.Millisecond)
			close(executor.release)
			wg.Wait()

			So(executor.calls.Load(), ShouldEqual, 1)
			So(results[0], ShouldNotBeNil)
			So(results[0], ShouldEqual, results[1])

			Convey("A later call should issue a fresh request", func() {
				_, err := manager.Call(context.Background(), Refresh, map[string]string{"token": "r"})
				So(err, ShouldBeNil)
				So(executor.calls.Load(), ShouldEqual, 2)
			})
		})

		Convey("Calls to different endpoints should not be collapsed", func() {
			close(executor.release)
			_, err := manager.Call(context.Background(), Refresh, nil)
			So(err, ShouldBeNil)
			_, err = manager.Call(context.Background(), Logout, nil)
			So(err, ShouldBeNil)
			So(executor.calls.Load(), ShouldEqual, 2)
			So(executor.last.URL, ShouldEqual, "https://api.example.org/auth/logout")
		})
	})

	Convey("Given failing responses", t, func() {
		Convey("A status above 399 should be an HTTPStatusError", func() {
			manager := NewManager(store.NewMemory(), &fakeExecutor{status: 401, envelope: map[string]any{}}, "")
			_, err := manager.Call(context.Background(), Login, nil)

			var statusErr *source.HTTPStatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.Status, ShouldEqual, 401)
		})

		Convey("A non-ok result should be an APIError with every message", func() {
			manager := NewManager(store.NewMemory(), &fakeExecutor{status: 200, envelope: map[string]any{
				"result": "error",
				"errors": []map[string]string{{"title": "Invalid", "detail": "bad password"}},
			}}, "")
			_, err := manager.Call(context.Background(), Login, nil)

			var apiErr *source.APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "[Invalid]: bad password")
		})

		Convey("A failed call should not be remembered", func() {
			executor := &fakeExecutor{status: 500, envelope: map[string]any{}}
			manager := NewManager(store.NewMemory(), executor, "")
			_, err := manager.Call(context.Background(), Refresh, nil)
			So(err, ShouldNotBeNil)

			executor.status = 200
			executor.envelope = okEnvelope("a", "r")
			_, err = manager.Call(context.Background(), Refresh, nil)
			So(err, ShouldBeNil)
			So(executor.calls.Load(), ShouldEqual, 2)
		})
	})
}

func TestLoginFlow(t *testing.T) {
	Convey("Given a manager", t, func() {
		access := token(jwt.MapClaims{"sub": "user-1"})
		executor := &fakeExecutor{status: 200, envelope: okEnvelope(access, "refresh-1")}
		secrets := store.NewMemory()
		manager := NewManager(secrets, executor, "https://api.example.org/auth/")

		Convey("Empty credentials should fail validation without a request", func() {
			_, err := manager.Login(context.Background(), "", "pw")
			var validation *source.ValidationError
			So(errors.As(err, &validation), ShouldBeTrue)
			So(validation.Field, ShouldEqual, "Username")

			_, err = manager.Login(context.Background(), "user", "")
			So(errors.As(err, &validation), ShouldBeTrue)
			So(validation.Field, ShouldEqual, "Password")

			So(executor.calls.Load(), ShouldEqual, 0)
		})

		Convey("Login should store the returned pair", func() {
			session, err := manager.Login(context.Background(), "user", "pw")
			So(err, ShouldBeNil)
			So(session.AccessToken, ShouldEqual, access)
			So(executor.last.Data, ShouldResemble, map[string]string{"username": "user", "password": "pw"})

			Convey("Refresh should send the refresh token", func() {
				_, err := manager.Refresh(context.Background())
				So(err, ShouldBeNil)
				So(executor.last.Data, ShouldResemble, map[string]any{"token": "refresh-1"})
			})

			Convey("Logout should clear the session", func() {
				So(manager.Logout(context.Background()), ShouldBeNil)
				current, err := manager.Session()
				So(err, ShouldBeNil)
				So(current.IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("Refresh without a session should fail validation", func() {
			_, err := manager.Refresh(context.Background())
			var validation *source.ValidationError
			So(errors.As(err, &validation), ShouldBeTrue)
		})

		Convey("Refresh without a stored refresh token should fail validation without a request", func() {
			_, err := manager.Save(mo.Some(access), mo.None[string]())
			So(err, ShouldBeNil)

			_, err = manager.Refresh(context.Background())
			var validation *source.ValidationError
			So(errors.As(err, &validation), ShouldBeTrue)
			So(validation.Field, ShouldEqual, "Refresh token")
			So(executor.calls.Load(), ShouldEqual, 0)
		})

		Convey("A response without a token should be malformed", func() {
			executor.envelope = map[string]any{"result": "ok"}
			_, err := manager.Login(context.Background(), "user", "pw")
			var malformed *source.MalformedResponseError
			So(errors.As(err, &malformed), ShouldBeTrue)
		})
	})
}
