package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes beyond what AutoMigrate
// creates from struct tags. Only used on Postgres, where pg_indexes lets us
// probe for existing indexes before creating them.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"habits", "idx_habits_owner_active", "owner_id, is_active"},
		{"habits", "idx_habits_category", "category"},
		{"habit_completions", "idx_completions_owner_id", "owner_id"},
		{"journal_entries", "idx_journal_owner_created", "owner_id, created_at"},
		{"goals", "idx_goals_owner_status", "owner_id, status"},
		{"friendships", "idx_friendships_addressee_status", "addressee_id, status"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
