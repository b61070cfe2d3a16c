package migrations

import (
	"github.com/NeuralTrust/AuthShield/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20260601_create_identities_table",
		Name: "Create identities table with lockout columns",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS public.identities (
					id                     UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					key                    TEXT NOT NULL UNIQUE,
					role                   TEXT NOT NULL DEFAULT 'viewer',
					password_hash          TEXT NOT NULL DEFAULT '',
					failed_attempt_count   INTEGER NOT NULL DEFAULT 0,
					last_failed_attempt_at TIMESTAMPTZ,
					locked_until           TIMESTAMPTZ,
					lockout_reason         TEXT,
					is_manually_locked     BOOLEAN NOT NULL DEFAULT FALSE,
					created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			// stats and the expiry sweep filter on these two columns
			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_identities_lock_state
				ON public.identities (is_manually_locked, locked_until)
				WHERE locked_until IS NOT NULL OR is_manually_locked;
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS public.identities;`).Error
		},
	})
}
