package repository

import (
	"context"
	"fmt"
	"strings"

	"tenant-booking/internal/data/entity"
	"tenant-booking/pkg/database"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

type boltUserRepository struct {
	db  *bbolt.DB
	log *zap.Logger
}

func NewBoltUserRepository(db *bbolt.DB, log *zap.Logger) UserRepository {
	return &boltUserRepository{
		db:  db,
		log: log.With(zap.String("repository", "user"), zap.String("store", "bolt")),
	}
}

func (r *boltUserRepository) Create(ctx context.Context, user *entity.User) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		existing, err := boltScan(tx, database.BucketUsers, func(u *entity.User) bool {
			return strings.EqualFold(u.Email, user.Email)
		})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("email %s already registered", user.Email)
		}
		return boltPut(tx, database.BucketUsers, user.ID, user)
	})
	if err != nil {
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	r.log.Debug("User created", zap.String("user_id", user.ID))
	return nil
}

func (r *boltUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user *entity.User
	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		user, err = boltGet[entity.User](tx, database.BucketUsers, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find user by ID %s: %w", id, err)
	}
	return user, nil
}

func (r *boltUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var users []*entity.User
	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		users, err = boltScan(tx, database.BucketUsers, func(u *entity.User) bool {
			return strings.EqualFold(u.Email, email)
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}
