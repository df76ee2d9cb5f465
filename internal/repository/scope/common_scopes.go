package scope

import "gorm.io/gorm"

// OrderByRecentlyUpdated puts the most recently changed rows first, oldest
// creation breaking ties.
func OrderByRecentlyUpdated(db *gorm.DB) *gorm.DB {
	return db.Order("updated_at DESC").Order("created_at ASC")
}

func OrderBySessionId(db *gorm.DB) *gorm.DB {
	return db.Order("session_id ASC")
}
