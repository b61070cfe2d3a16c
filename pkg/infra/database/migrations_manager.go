package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	ID   string
	Name string
	Up   func(db *gorm.DB) error
	Down func(db *gorm.DB) error
}

var (
	registryMu         sync.Mutex
	migrationsRegistry = make(map[string]Migration)
)

// RegisterMigration is called from init functions. Duplicate IDs panic.
func RegisterMigration(m Migration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := migrationsRegistry[m.ID]; exists {
		panic(fmt.Sprintf("migration with ID %s already registered", m.ID))
	}
	migrationsRegistry[m.ID] = m
}

// Registered returns the known migrations ordered by ID.
func Registered() []Migration {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]Migration, 0, len(migrationsRegistry))
	for _, m := range migrationsRegistry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type MigrationsManager struct {
	db         *gorm.DB
	migrations []Migration
}

func NewMigrationsManager(db *gorm.DB) *MigrationsManager {
	return &MigrationsManager{db: db, migrations: Registered()}
}

// NewMigrationsManagerWith runs an explicit list instead of the registry.
func NewMigrationsManagerWith(db *gorm.DB, migrations []Migration) *MigrationsManager {
	sorted := append([]Migration(nil), migrations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &MigrationsManager{db: db, migrations: sorted}
}

func (m *MigrationsManager) ensureMigrationsTable(db *gorm.DB) error {
	const createTableSQL = `
CREATE TABLE IF NOT EXISTS public.migration_version (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
	return db.Exec(createTableSQL).Error
}

func (m *MigrationsManager) appliedMigrations(db *gorm.DB) (map[string]struct{}, error) {
	var ids []string
	if err := db.Raw("SELECT id FROM public.migration_version").Scan(&ids).Error; err != nil {
		return nil, err
	}
	applied := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		applied[id] = struct{}{}
	}
	return applied, nil
}

// ApplyPending runs every migration not yet recorded, each in its own
// transaction together with its version row. It returns how many ran.
func (m *MigrationsManager) ApplyPending(ctx context.Context) (int, error) {
	db := m.db.WithContext(ctx)
	if err := m.ensureMigrationsTable(db); err != nil {
		return 0, fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := m.appliedMigrations(db)
	if err != nil {
		return 0, fmt.Errorf("load applied migrations: %w", err)
	}

	count := 0
	for _, mig := range m.migrations {
		if _, ok := applied[mig.ID]; ok {
			continue
		}
		if mig.Up == nil {
			return count, fmt.Errorf("migration %s has no Up function", mig.ID)
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Exec(
				"INSERT INTO public.migration_version (id, name, applied_at) VALUES (?, ?, ?)",
				mig.ID, mig.Name, time.Now(),
			).Error
		})
		if err != nil {
			return count, fmt.Errorf("apply migration %s (%s): %w", mig.ID, mig.Name, err)
		}
		count++
	}
	return count, nil
}
