package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jroosing/dyndns/internal/records"
)

// AppConfig is the app_config singleton row.
type AppConfig struct {
	BaseDomain              string // empty until first-time setup
	FirstTimeSetup          bool
	EnableWebRegistration   bool
	AuthTokenMaxAge         int
	AppVersion              string
	DeleteBaseDomainEnabled bool
	UpdatedAt               int64
}

// InitDefaults creates the app_config row when missing and refreshes the
// first-time-setup flag from the users table. Existing values are kept.
func (db *DB) InitDefaults(ctx context.Context) error {
	return db.Update(ctx, func(tx *Tx) error {
		now := tx.now()
		_, err := tx.q.ExecContext(ctx, `
			INSERT OR IGNORE INTO app_config (id, enable_web_registration, auth_token_max_age, base_domain, first_time_setup, updated_at)
			VALUES (1, 0, 15, NULL, 1, ?)
		`, now)
		if err != nil {
			return fmt.Errorf("failed to insert app config: %w", err)
		}

		_, err = tx.q.ExecContext(ctx, `
			UPDATE app_config
			SET first_time_setup = CASE WHEN EXISTS (SELECT 1 FROM users) THEN 0 ELSE 1 END
			WHERE id = 1
		`)
		if err != nil {
			return fmt.Errorf("failed to update first time setup: %w", err)
		}
		return nil
	})
}

// AppConfig reads the configuration singleton. It fails with
// records.ErrConfigurationMissing when the row does not exist.
func (s *Queries) AppConfig(ctx context.Context) (AppConfig, error) {
	var (
		cfg        AppConfig
		base       sql.NullString
		version    sql.NullString
		firstSetup int
		webReg     int
		delEnabled int
	)
	err := s.q.QueryRowContext(ctx, `
		SELECT base_domain, first_time_setup, enable_web_registration, auth_token_max_age,
		       app_version, delete_base_domain_enabled, updated_at
		FROM app_config WHERE id = 1
	`).Scan(&base, &firstSetup, &webReg, &cfg.AuthTokenMaxAge, &version, &delEnabled, &cfg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return AppConfig{}, records.ErrConfigurationMissing
	}
	if err != nil {
		return AppConfig{}, fmt.Errorf("failed to read app config: %w", err)
	}
	cfg.BaseDomain = base.String
	cfg.AppVersion = version.String
	cfg.FirstTimeSetup = firstSetup != 0
	cfg.EnableWebRegistration = webReg != 0
	cfg.DeleteBaseDomainEnabled = delEnabled != 0
	return cfg, nil
}

// BaseDomain returns the configured base domain, failing with
// records.ErrConfigurationMissing when none is set.
func (s *Queries) BaseDomain(ctx context.Context) (string, error) {
	cfg, err := s.AppConfig(ctx)
	if err != nil {
		return "", err
	}
	if cfg.BaseDomain == "" {
		return "", records.ErrConfigurationMissing
	}
	return cfg.BaseDomain, nil
}

// SetBaseDomain stores the base domain.
func (s *Queries) SetBaseDomain(ctx context.Context, name string) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE app_config SET base_domain = ?, updated_at = ? WHERE id = 1`, name, s.now())
	if err != nil {
		return fmt.Errorf("failed to set base domain: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return records.ErrConfigurationMissing
	}
	return nil
}

// SetDeleteBaseDomainEnabled toggles the destructive zone deletion flag.
func (s *Queries) SetDeleteBaseDomainEnabled(ctx context.Context, enabled bool) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE app_config SET delete_base_domain_enabled = ?, updated_at = ? WHERE id = 1`,
		boolInt(enabled), s.now())
	if err != nil {
		return fmt.Errorf("failed to set delete flag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return records.ErrConfigurationMissing
	}
	return nil
}

// SetAppVersion records the running version.
func (s *Queries) SetAppVersion(ctx context.Context, version string) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE app_config SET app_version = ?, updated_at = ? WHERE id = 1`, version, s.now())
	if err != nil {
		return fmt.Errorf("failed to set app version: %w", err)
	}
	return nil
}
