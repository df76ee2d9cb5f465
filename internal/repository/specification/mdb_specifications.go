package specification

import "gorm.io/gorm"

// ByMdbNumber filters by the external master data id
type ByMdbNumber struct {
	MdbNumber string
}

func (s ByMdbNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("mdb_number = ?", s.MdbNumber)
}

// ByName filters by exact forename and surname
type ByName struct {
	Forename string
	Surname  string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("forename = ? AND surname = ?", s.Forename, s.Surname)
}
