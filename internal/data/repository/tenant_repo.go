package repository

import (
	"context"
	"errors"
	"fmt"

	"tenant-booking/internal/data/entity"
	"tenant-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	FindByID(ctx context.Context, id string) (*entity.Tenant, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Tenant, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
}

type tenantRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTenantRepository(db database.PgxIface, log *zap.Logger) TenantRepository {
	return &tenantRepository{
		db:  db,
		log: log.With(zap.String("repository", "tenant")),
	}
}

const tenantColumns = `id, name, domain, schema_config, status, settings, created_at, updated_at`

func scanTenant(row pgx.Row) (*entity.Tenant, error) {
	var tenant entity.Tenant
	err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Domain,
		&tenant.SchemaConfig,
		&tenant.Status,
		&tenant.Settings,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepository) Create(ctx context.Context, tenant *entity.Tenant) error {
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Domain,
		tenant.SchemaConfig,
		tenant.Status,
		tenant.Settings,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create tenant %s: %w", tenant.ID, err)
	}

	r.log.Debug("Tenant created", zap.String("tenant_id", tenant.ID))
	return nil
}

func (r *tenantRepository) FindByID(ctx context.Context, id string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`

	tenant, err := scanTenant(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tenant by ID %s: %w", id, err)
	}

	return tenant, nil
}

func (r *tenantRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("find tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*entity.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant row: %w", err)
		}
		tenants = append(tenants, tenant)
	}

	return tenants, rows.Err()
}

func (r *tenantRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tenants: %w", err)
	}
	return count, nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *entity.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $2, domain = $3, schema_config = $4, status = $5, settings = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Domain,
		tenant.SchemaConfig,
		tenant.Status,
		tenant.Settings,
		tenant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tenant %s: %w", tenant.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tenant %s not found", tenant.ID)
	}

	r.log.Debug("Tenant updated", zap.String("tenant_id", tenant.ID))
	return nil
}
