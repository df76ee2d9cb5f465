package specification

import "gorm.io/gorm"

type BySessionId struct {
	SessionId string
}

func (s BySessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

type ByLegislativePeriod struct {
	Period int
}

func (s ByLegislativePeriod) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("legislative_period = ?", s.Period)
}
