package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// User Setting Methods
// -----------------------------------------------------------------------------

// SetSetting stores value as JSON under name.
func (db *DB) SetSetting(ctx context.Context, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal setting %s: %w", name, err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO user_settings (setting_name, setting_value)
		 VALUES ($1, $2)
		 ON CONFLICT (setting_name) DO UPDATE SET setting_value = $2, updated_at = NOW()`,
		name, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", name, err)
	}
	return nil
}

// GetSetting decodes the setting stored under name into dst. It reports false
// when the setting does not exist, leaving dst untouched.
func (db *DB) GetSetting(ctx context.Context, name string, dst any) (bool, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT setting_value FROM user_settings WHERE setting_name = $1`, name,
	).Scan(&data)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to get setting %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode setting %s: %w", name, err)
	}
	return true, nil
}
