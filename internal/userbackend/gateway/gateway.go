// Package gateway talks to the database gateway that owns user records.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/pkg/httpx"
	"github.com/freecontest/userbackend/pkg/slogx"
)

const (
	pathUsersRead   = "/db/v2/users/read"
	pathUsersCreate = "/db/v2/users/create"
	pathUsersUpdate = "/db/v2/users/update"
)

// Users is the slice of the gateway the auth flows need.
type Users interface {
	// FindUser returns the first user matching filter, or nil when none does.
	FindUser(ctx context.Context, filter domain.UserFilter) (*domain.User, error)
	CreateUser(ctx context.Context, u domain.NewUser) error
	UpdateUser(ctx context.Context, id int64, u domain.UserUpdate) error
}

// Client is the HTTP implementation of Users.
type Client struct {
	http *httpx.EnvelopeClient
}

var _ Users = (*Client)(nil)

func NewClient(origin string, timeout time.Duration) *Client {
	return &Client{http: httpx.NewEnvelopeClient(origin, timeout)}
}

type readRequest struct {
	Where  domain.UserFilter `json:"where"`
	Offset int               `json:"offset"`
	Limit  int               `json:"limit"`
}

type readData struct {
	Total *int          `json:"total,omitempty"`
	Items []domain.User `json:"items"`
}

func (c *Client) FindUser(ctx context.Context, filter domain.UserFilter) (*domain.User, error) {
	env, err := c.http.Post(ctx, pathUsersRead, readRequest{Where: filter, Offset: 0, Limit: 1})
	if err != nil {
		return nil, upstream(ctx, "read user", err)
	}

	var data readData
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, upstream(ctx, "read user", &httpx.RemoteError{
			Op:       "POST " + pathUsersRead,
			Response: env,
			Err:      errors.New("missing data"),
		})
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, upstream(ctx, "read user", &httpx.RemoteError{
			Op:       "POST " + pathUsersRead,
			Response: env,
			Err:      fmt.Errorf("decode users: %w", err),
		})
	}

	if len(data.Items) == 0 {
		return nil, nil
	}
	u := data.Items[0]
	return &u, nil
}

func (c *Client) CreateUser(ctx context.Context, u domain.NewUser) error {
	if _, err := c.http.Post(ctx, pathUsersCreate, u); err != nil {
		return upstream(ctx, "create user", err)
	}
	return nil
}

type updateRequest struct {
	UserID int64 `json:"user_id"`
	domain.UserUpdate
}

func (c *Client) UpdateUser(ctx context.Context, id int64, u domain.UserUpdate) error {
	if _, err := c.http.Post(ctx, pathUsersUpdate, updateRequest{UserID: id, UserUpdate: u}); err != nil {
		return upstream(ctx, "update user", err)
	}
	return nil
}

// upstream classifies a failed gateway call. The raw response rides along as
// debug data; the HTTP layer decides whether to show it.
func upstream(ctx context.Context, op string, err error) error {
	var response any
	var re *httpx.RemoteError
	if errors.As(err, &re) {
		response = re.Response
	}

	slogx.FromContext(ctx).Error("gateway_call_failed",
		slog.String("op", op),
		slog.Any("response", response),
		slog.String("error", err.Error()),
	)

	return domain.Wrap(
		domain.KindUpstream,
		"Received non-zero code from Database Gateway when trying to "+op,
		err,
		map[string]any{"response": response},
	)
}
