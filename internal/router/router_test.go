package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/rentwheels/internal/auth"
	"github.com/vaughan-dsouza/rentwheels/internal/events"
	"github.com/vaughan-dsouza/rentwheels/internal/handlers"
	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/repository"
	"github.com/vaughan-dsouza/rentwheels/internal/router"
	"github.com/vaughan-dsouza/rentwheels/internal/testutil"
)

type api struct {
	t      *testing.T
	store  *repository.Store
	pub    *events.Recorder
	server http.Handler
}

func newAPI(t *testing.T) *api {
	t.Helper()
	store := testutil.NewStore(t)
	svc := auth.NewService(store, testutil.Secret, time.Hour, auth.WithHashCost(bcrypt.MinCost))
	pub := &events.Recorder{}
	return &api{
		t:      t,
		store:  store,
		pub:    pub,
		server: router.New(handlers.NewHandler(store, svc, pub), svc),
	}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.server.ServeHTTP(w, req)
	return w
}

// user creates a user with password "password" and logs them in.
func (a *api) user(name, email string, role models.Role) (*models.User, string) {
	a.t.Helper()
	u := testutil.CreateUser(a.t, a.store, name, email, role)
	return u, a.login(email)
}

func (a *api) login(email string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/login", "", map[string]string{"email": email, "password": "password"})
	if w.Code != http.StatusOK {
		a.t.Fatalf("login %s: status %d body %s", email, w.Code, w.Body)
	}
	return decode[session](a.t, w).Token
}

type session struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, w.Body)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status %d, want %d (body %s)", w.Code, want, w.Body)
	}
}

func TestHealthz(t *testing.T) {
	a := newAPI(t)
	expectStatus(t, a.do(http.MethodGet, "/healthz", "", nil), http.StatusOK)
}

func TestUnknownRoute(t *testing.T) {
	a := newAPI(t)
	expectStatus(t, a.do(http.MethodGet, "/nope", "", nil), http.StatusNotFound)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
