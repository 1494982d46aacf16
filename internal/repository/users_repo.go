package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/baharkarakas/users-admin/internal/models"
	"github.com/baharkarakas/users-admin/internal/storage"
)

// UsersKey is the store key the collection is kept under.
const UsersKey = "users"

type usersRepo struct {
	store storage.Store
	seed  func() []models.User
}

// NewUsers stores the collection in s. seed, if non-nil, fills the key on the
// first Load that finds it absent.
func NewUsers(s storage.Store, seed func() []models.User) Users {
	return &usersRepo{store: s, seed: seed}
}

func (r *usersRepo) Load(ctx context.Context) (models.Collection, error) {
	e, err := r.store.Get(ctx, UsersKey)
	if errors.Is(err, storage.ErrNotFound) {
		return r.init(ctx)
	}
	if err != nil {
		return models.Collection{}, err
	}
	var users []models.User
	if err := json.Unmarshal(e.Value, &users); err != nil {
		return models.Collection{}, fmt.Errorf("decode %s: %w", UsersKey, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return models.Collection{Users: users, Version: e.Version}, nil
}

func (r *usersRepo) init(ctx context.Context) (models.Collection, error) {
	c := models.Collection{Users: []models.User{}}
	if r.seed != nil {
		c.Users = r.seed()
	}
	saved, err := r.Save(ctx, c)
	if errors.Is(err, storage.ErrStale) {
		// someone else seeded it between our Get and Set
		return r.Load(ctx)
	}
	if err != nil {
		return models.Collection{}, err
	}
	slog.Info("seeded user collection", "count", len(saved.Users))
	return saved, nil
}

func (r *usersRepo) Save(ctx context.Context, c models.Collection) (models.Collection, error) {
	users := c.Users
	if users == nil {
		users = []models.User{}
	}
	b, err := json.Marshal(users)
	if err != nil {
		return models.Collection{}, fmt.Errorf("encode %s: %w", UsersKey, err)
	}
	v, err := r.store.Set(ctx, UsersKey, b, c.Version)
	if err != nil {
		return models.Collection{}, err
	}
	return models.Collection{Users: users, Version: v}, nil
}
