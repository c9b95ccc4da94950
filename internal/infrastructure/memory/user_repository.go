package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. El email es único sin distinguir mayúsculas.
type UserRepo struct{ db *conn }

// NewUserRepository construye el repositorio.
func NewUserRepository(db *DB) *UserRepo { return &UserRepo{db: db.handle(false)} }

func (r *UserRepo) emailTaken(email string, except int64) bool {
	for id, u := range r.db.users {
		if id != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	defer r.db.lock()()
	if r.emailTaken(u.Email, 0) {
		return domain.ErrEmailAlreadyExists
	}
	now := r.db.now()
	u.ID = r.db.next("users")
	u.CreatedAt, u.UpdatedAt = now, now
	r.db.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	defer r.db.lock()()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.db.lock()()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	defer r.db.lock()()
	cur, ok := r.db.users[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return domain.ErrEmailAlreadyExists
	}
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = r.db.now()
	r.db.users[u.ID] = *u
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id int64) error {
	defer r.db.lock()()
	if _, ok := r.db.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.users, id)
	return nil
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, int, error) {
	defer r.db.lock()()
	out := make([]*entity.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset), len(out), nil
}

func (r *UserRepo) Stats(_ context.Context) (repository.UserStats, error) {
	defer r.db.lock()()
	var s repository.UserStats
	for _, u := range r.db.users {
		s.Total++
		if u.IsActive {
			s.Active++
		} else {
			s.Inactive++
		}
		if u.IsAdmin {
			s.Admins++
		}
	}
	return s, nil
}
