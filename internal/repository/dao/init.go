package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&TeacherProfile{},
		&Laboratory{},
		&Reservation{},
		&AuxiliaryAssignment{},
		&ScheduleWindow{},
		&Task{},
		&Template{},
		&Logbook{},
		&LostItem{},
	)
}
