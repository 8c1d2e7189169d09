package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"story_aggregator/internal/domain"
)

type TenantStore struct {
	db *sqlx.DB
}

func NewTenantStore(db *sqlx.DB) *TenantStore {
	return &TenantStore{db: db}
}

type tenantRow struct {
	domain.Tenant
	FeatureFlags pq.StringArray `db:"feature_flags"`
}

func (s *TenantStore) Find(ctx context.Context, id string) (*domain.Tenant, error) {
	var row tenantRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row,
		"SELECT id, domain, feature_flags, settings FROM tenants WHERE id = $1",
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tenant %s: %w", id, domain.ErrTenantNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find tenant: %w", err)
	}

	tenant := row.Tenant
	tenant.FeatureFlags = make([]domain.FeatureFlag, 0, len(row.FeatureFlags))
	for _, flag := range row.FeatureFlags {
		tenant.FeatureFlags = append(tenant.FeatureFlags, domain.FeatureFlag(flag))
	}
	return &tenant, nil
}
