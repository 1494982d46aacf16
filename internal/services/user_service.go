package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/baharkarakas/users-admin/internal/api/validate"
	"github.com/baharkarakas/users-admin/internal/metrics"
	"github.com/baharkarakas/users-admin/internal/models"
	repo "github.com/baharkarakas/users-admin/internal/repository"
	"github.com/baharkarakas/users-admin/internal/storage"
	"github.com/baharkarakas/users-admin/internal/worker"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrStaleCollection = errors.New("stale collection")
	ErrStore           = errors.New("store error")
)

// ConfirmFunc is asked before a delete goes ahead; false leaves the collection untouched.
type ConfirmFunc func(ctx context.Context, id string) bool

// UserService runs create/update/delete as read-modify-write of the whole
// collection. Writes go through a single-writer queue and are compare-and-set
// on the version that was read.
type UserService struct {
	r     repo.Users
	q     *worker.Pool
	newID func() string
}

func NewUserService(r repo.Users, q *worker.Pool) *UserService {
	return &UserService{r: r, q: q, newID: uuid.NewString}
}

func (s *UserService) List(ctx context.Context) (models.Collection, error) {
	defer metrics.Track("loading")()
	c, err := s.r.Load(ctx)
	if err != nil {
		return models.Collection{}, s.fail("list", err)
	}
	return c, nil
}

// Create validates values, appends them under a fresh id and returns the new collection.
// ifVersion != 0 must match the stored version.
func (s *UserService) Create(ctx context.Context, values models.User, ifVersion int64) (models.Collection, error) {
	values.Sanitize()
	if err := validate.Struct(values); err != nil {
		metrics.OperationsTotal.WithLabelValues("create", "invalid").Inc()
		return models.Collection{}, err
	}
	defer metrics.Track("saving")()

	var out models.Collection
	err := s.write(ctx, ifVersion, func(c models.Collection) (models.Collection, error) {
		values.ID = s.newID()
		c.Users = append(c.Users, values)
		return c, nil
	}, &out)
	if err != nil {
		return models.Collection{}, s.fail("create", err)
	}
	s.ok("create")
	return out, nil
}

// Update replaces the record with values.ID. An unknown id is ErrUserNotFound.
func (s *UserService) Update(ctx context.Context, values models.User, ifVersion int64) (models.Collection, error) {
	values.Sanitize()
	if err := validate.Struct(values); err != nil {
		metrics.OperationsTotal.WithLabelValues("update", "invalid").Inc()
		return models.Collection{}, err
	}
	defer metrics.Track("saving")()

	var out models.Collection
	err := s.write(ctx, ifVersion, func(c models.Collection) (models.Collection, error) {
		i := c.IndexOf(values.ID)
		if i < 0 {
			return c, ErrUserNotFound
		}
		c.Users[i] = values
		return c, nil
	}, &out)
	if err != nil {
		return models.Collection{}, s.fail("update", err)
	}
	s.ok("update")
	return out, nil
}

// Delete removes the record with id once confirm agrees. Without confirmation,
// or when id is not present, the current collection is returned and nothing is written.
func (s *UserService) Delete(ctx context.Context, id string, confirm ConfirmFunc, ifVersion int64) (models.Collection, error) {
	if confirm == nil || !confirm(ctx, id) {
		slog.Debug("delete not confirmed", "id", id)
		return s.List(ctx)
	}
	defer metrics.Track("deleting")()

	var out models.Collection
	err := s.write(ctx, ifVersion, func(c models.Collection) (models.Collection, error) {
		i := c.IndexOf(id)
		if i < 0 {
			return c, errNoChange
		}
		c.Users = append(c.Users[:i], c.Users[i+1:]...)
		return c, nil
	}, &out)
	if err != nil {
		return models.Collection{}, s.fail("delete", err)
	}
	s.ok("delete")
	return out, nil
}

var errNoChange = errors.New("no change")

// write loads, applies mutate to a private copy and saves, all inside the queue.
// Once queued the job ignores cancellation of ctx.
func (s *UserService) write(ctx context.Context, ifVersion int64, mutate func(models.Collection) (models.Collection, error), out *models.Collection) error {
	return s.q.Do(ctx, func() error {
		jobCtx := context.WithoutCancel(ctx)
		c, err := s.r.Load(jobCtx)
		if err != nil {
			return err
		}
		if ifVersion != 0 && ifVersion != c.Version {
			return ErrStaleCollection
		}
		next, err := mutate(c.Clone())
		if errors.Is(err, errNoChange) {
			*out = c
			return nil
		}
		if err != nil {
			return err
		}
		saved, err := s.r.Save(jobCtx, next)
		if err != nil {
			return err
		}
		*out = saved
		return nil
	})
}

func (s *UserService) ok(op string) {
	metrics.OperationsTotal.WithLabelValues(op, "ok").Inc()
}

// fail classifies err, counts it and returns what the caller should see.
func (s *UserService) fail(op string, err error) error {
	var (
		result string
		out    error
	)
	switch {
	case errors.Is(err, ErrUserNotFound):
		result, out = "not_found", ErrUserNotFound
	case errors.Is(err, ErrStaleCollection), errors.Is(err, storage.ErrStale):
		result, out = "stale", ErrStaleCollection
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		result, out = "cancelled", err
	default:
		result, out = "store_error", fmt.Errorf("%w: %s: %w", ErrStore, op, err)
		slog.Error("user operation failed", "op", op, "err", err)
	}
	metrics.OperationsTotal.WithLabelValues(op, result).Inc()
	return out
}
