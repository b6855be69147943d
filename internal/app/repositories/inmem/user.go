package inmem

import (
	"context"
	"strings"

	"github.com/yigit/nbadocs/internal/app/models"
	"github.com/yigit/nbadocs/internal/pkg/apperrors"
)

type UserRepository struct {
	db *DB
}

// NewUserRepository returns a UserStore backed by db.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (repo *UserRepository) Create(_ context.Context, user *models.User) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, u := range repo.db.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}

	repo.db.userSeq++
	user.ID = repo.db.userSeq
	user.CreatedAt = repo.db.now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	repo.db.users[user.ID] = &cp
	return nil
}

func (repo *UserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if u, ok := repo.db.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (repo *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, u := range repo.db.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (repo *UserRepository) CountActive(_ context.Context) (int64, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var n int64
	for _, u := range repo.db.users {
		if u.IsActive {
			n++
		}
	}
	return n, nil
}
