package migrations

import (
	"github.com/NeuralTrust/AuthShield/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20260602_create_login_events_table",
		Name: "Create login_events table for behavioral baselines",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS public.login_events (
					id             UUID PRIMARY KEY,
					identity_key   TEXT NOT NULL,
					source_address TEXT NOT NULL DEFAULT '',
					user_agent     TEXT NOT NULL DEFAULT '',
					occurred_at    TIMESTAMPTZ NOT NULL
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_login_events_identity_time
				ON public.login_events (identity_key, occurred_at DESC);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_login_events_occurred_at
				ON public.login_events (occurred_at);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS public.login_events;`).Error
		},
	})
}
