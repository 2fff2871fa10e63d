// Package gatewaytest provides an in-process database gateway for tests.
package gatewaytest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/pkg/httpx"
)

// Gateway is a fake database gateway speaking the real wire format. Users
// live in memory; Fail makes every call answer with a non-zero envelope.
type Gateway struct {
	*httptest.Server

	mu     sync.Mutex
	users  []domain.User
	nextID int64
	fail   bool
	calls  map[string]int
}

// New starts a fake gateway that is closed when the test ends.
func New(t testing.TB) *Gateway {
	t.Helper()
	g := &Gateway{nextID: 1, calls: map[string]int{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /db/v2/users/read", g.read)
	mux.HandleFunc("POST /db/v2/users/create", g.create)
	mux.HandleFunc("POST /db/v2/users/update", g.update)
	g.Server = httptest.NewServer(mux)
	t.Cleanup(g.Close)
	return g
}

// Seed adds a user and returns it with its assigned id.
func (g *Gateway) Seed(u domain.User) domain.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	u.ID = g.nextID
	g.nextID++
	g.users = append(g.users, u)
	return u
}

// User returns a copy of the stored user with the given username.
func (g *Gateway) User(username string) (domain.User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, u := range g.users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}

// Fail toggles failure mode.
func (g *Gateway) Fail(on bool) {
	g.mu.Lock()
	g.fail = on
	g.mu.Unlock()
}

// Calls reports how many requests hit path.
func (g *Gateway) Calls(path string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[path]
}

func (g *Gateway) begin(w http.ResponseWriter, r *http.Request) bool {
	g.mu.Lock()
	g.calls[r.URL.Path]++
	fail := g.fail
	g.mu.Unlock()

	if fail {
		httpx.WriteJSON(w, http.StatusOK, httpx.Envelope[any]{Error: 5000, ErrorMsg: "gateway down"})
		return false
	}
	return true
}

func (g *Gateway) read(w http.ResponseWriter, r *http.Request) {
	if !g.begin(w, r) {
		return
	}
	var req struct {
		Where domain.UserFilter `json:"where"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope[any]{Error: 1, ErrorMsg: err.Error()})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	items := []domain.User{}
	for _, u := range g.users {
		if matches(u, req.Where) {
			items = append(items, u)
			break
		}
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Envelope[any]{Data: map[string]any{"items": items}})
}

func (g *Gateway) create(w http.ResponseWriter, r *http.Request) {
	if !g.begin(w, r) {
		return
	}
	var nu domain.NewUser
	if err := json.NewDecoder(r.Body).Decode(&nu); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope[any]{Error: 1, ErrorMsg: err.Error()})
		return
	}

	g.mu.Lock()
	for _, u := range g.users {
		if u.Username == nu.Username || u.Email == nu.Email {
			g.mu.Unlock()
			httpx.WriteJSON(w, http.StatusOK, httpx.Envelope[any]{Error: 2, ErrorMsg: "duplicate"})
			return
		}
	}
	g.users = append(g.users, domain.User{
		ID:         g.nextID,
		Username:   nu.Username,
		FullName:   nu.FullName,
		SchoolName: nu.SchoolName,
		Email:      nu.Email,
		Password:   nu.Password,
	})
	g.nextID++
	g.mu.Unlock()

	httpx.WriteJSON(w, http.StatusOK, httpx.Envelope[any]{})
}

func (g *Gateway) update(w http.ResponseWriter, r *http.Request) {
	if !g.begin(w, r) {
		return
	}
	var req struct {
		UserID int64 `json:"user_id"`
		domain.UserUpdate
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope[any]{Error: 1, ErrorMsg: err.Error()})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.users {
		if g.users[i].ID != req.UserID {
			continue
		}
		if req.Email != nil {
			g.users[i].Email = *req.Email
		}
		if req.Password != nil {
			g.users[i].Password = *req.Password
		}
		httpx.WriteJSON(w, http.StatusOK, httpx.Envelope[any]{})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Envelope[any]{Error: 3, ErrorMsg: "no such user"})
}

func matches(u domain.User, f domain.UserFilter) bool {
	switch {
	case f.ID != nil:
		return u.ID == *f.ID
	case f.Username != nil:
		return u.Username == *f.Username
	case f.Email != nil:
		return u.Email == *f.Email
	}
	return false
}
