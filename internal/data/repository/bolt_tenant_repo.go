package repository

import (
	"context"
	"fmt"
	"sort"

	"tenant-booking/internal/data/entity"
	"tenant-booking/pkg/database"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

type boltTenantRepository struct {
	db  *bbolt.DB
	log *zap.Logger
}

func NewBoltTenantRepository(db *bbolt.DB, log *zap.Logger) TenantRepository {
	return &boltTenantRepository{
		db:  db,
		log: log.With(zap.String("repository", "tenant"), zap.String("store", "bolt")),
	}
}

func (r *boltTenantRepository) Create(ctx context.Context, tenant *entity.Tenant) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(database.BucketTenants).Get([]byte(tenant.ID)) != nil {
			return fmt.Errorf("tenant %s already exists", tenant.ID)
		}
		return boltPut(tx, database.BucketTenants, tenant.ID, tenant)
	})
	if err != nil {
		return fmt.Errorf("create tenant %s: %w", tenant.Name, err)
	}

	r.log.Debug("Tenant created", zap.String("tenant_id", tenant.ID))
	return nil
}

func (r *boltTenantRepository) FindByID(ctx context.Context, id string) (*entity.Tenant, error) {
	var tenant *entity.Tenant
	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		tenant, err = boltGet[entity.Tenant](tx, database.BucketTenants, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find tenant by ID %s: %w", id, err)
	}
	return tenant, nil
}

func (r *boltTenantRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	var tenants []*entity.Tenant
	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		tenants, err = boltScan[entity.Tenant](tx, database.BucketTenants, nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find tenants: %w", err)
	}

	sort.Slice(tenants, func(i, j int) bool {
		return tenants[i].CreatedAt.After(tenants[j].CreatedAt)
	})
	return page(tenants, limit, offset), nil
}

func (r *boltTenantRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.View(func(tx *bbolt.Tx) error {
		count = int64(tx.Bucket(database.BucketTenants).Stats().KeyN)
		return nil
	})
	return count, err
}

func (r *boltTenantRepository) Update(ctx context.Context, tenant *entity.Tenant) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(database.BucketTenants).Get([]byte(tenant.ID)) == nil {
			return fmt.Errorf("tenant %s not found", tenant.ID)
		}
		return boltPut(tx, database.BucketTenants, tenant.ID, tenant)
	})
	if err != nil {
		return fmt.Errorf("update tenant %s: %w", tenant.ID, err)
	}

	r.log.Debug("Tenant updated", zap.String("tenant_id", tenant.ID))
	return nil
}
