package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"gorm.io/gorm"
)

type indexDefinition struct {
	name string
	sql  string
}

// indexes that both postgres and sqlite understand
var commonIndexes = []indexDefinition{
	{
		name: "idx_generation_processing",
		sql: `CREATE INDEX IF NOT EXISTS idx_generation_processing
			ON polaroidai_polaroid_generation (created_at)
			WHERE task_status = 'processing'`,
	},
	{
		name: "idx_generation_gallery",
		sql: `CREATE INDEX IF NOT EXISTS idx_generation_gallery
			ON polaroidai_polaroid_generation (input_type, created_at)
			WHERE task_status = 'completed' AND is_private = false`,
	},
	{
		name: "idx_generation_user_status",
		sql: `CREATE INDEX IF NOT EXISTS idx_generation_user_status
			ON polaroidai_polaroid_generation (user_id, task_status)`,
	},
	{
		name: "idx_billing_user_created",
		sql: `CREATE INDEX IF NOT EXISTS idx_billing_user_created
			ON polaroidai_user_billing (user_id, created_at)`,
	},
	{
		name: "idx_charge_product_locale_state",
		sql: `CREATE INDEX IF NOT EXISTS idx_charge_product_locale_state
			ON polaroidai_charge_product (locale, state, credit)`,
	},
}

// postgres-only indexes
var postgresIndexes = []indexDefinition{
	{
		name: "idx_credit_transaction_created_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_credit_transaction_created_brin
			ON polaroidai_user_credit_transaction USING BRIN (created_at)
			WITH (pages_per_range = 32)`,
	},
}

// IndexManager creates the indexes GORM tags cannot describe
type IndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		logger: logger,
	}
}

func (m *IndexManager) isPostgres() bool {
	return m.db.Dialector.Name() == "postgres"
}

// CreateIndexes creates the partial and composite indexes for the current dialect
func (m *IndexManager) CreateIndexes(ctx context.Context) error {
	m.logger.Info("Creating database indexes", map[string]any{
		"dialect": m.db.Dialector.Name(),
	})

	definitions := commonIndexes
	if m.isPostgres() {
		definitions = append(append([]indexDefinition{}, commonIndexes...), postgresIndexes...)
	}

	for _, def := range definitions {
		if err := m.db.WithContext(ctx).Exec(def.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": def.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Database indexes created successfully", map[string]any{
		"count": len(definitions),
	})
	return nil
}

// ApplyPerformanceTweaks tunes postgres storage for the hot generation table.
// Failures are logged and ignored.
func (m *IndexManager) ApplyPerformanceTweaks(ctx context.Context) {
	if !m.isPostgres() {
		return
	}

	tweaks := []string{
		`ALTER TABLE polaroidai_polaroid_generation SET (fillfactor = 90)`,
		`ALTER TABLE polaroidai_polaroid_generation ALTER COLUMN user_id SET STATISTICS 1000`,
	}
	for _, stmt := range tweaks {
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			m.logger.Warn("Failed to apply performance tweak", map[string]any{
				"statement": stmt,
				"error":     err.Error(),
			})
		}
	}
}
