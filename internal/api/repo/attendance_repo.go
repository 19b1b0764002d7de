package repo

import (
	"time"

	"studio"
	"studio/internal/api/models"

	"gorm.io/gorm"
)

type AttendanceRepository struct {
	Db *gorm.DB
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{Db: studio.DB}
}

func (slf *AttendanceRepository) FindByUserAndDay(userID uint, day time.Time) (models.Attendance, error) {
	var attendance models.Attendance
	err := slf.Db.Where("user_id = ? AND day = ?", userID, day.Format("2006-01-02")).First(&attendance).Error
	return attendance, err
}

func (slf *AttendanceRepository) FindByDay(day time.Time) ([]models.Attendance, error) {
	var records []models.Attendance
	err := slf.Db.Preload("User").
		Where("day = ?", day.Format("2006-01-02")).
		Order("check_in").
		Find(&records).Error
	return records, err
}

func (slf *AttendanceRepository) FindByUser(userID uint, from, to time.Time) ([]models.Attendance, error) {
	var records []models.Attendance
	err := slf.Db.Where("user_id = ? AND day BETWEEN ? AND ?",
		userID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("day DESC").
		Find(&records).Error
	return records, err
}

func (slf *AttendanceRepository) Create(attendance *models.Attendance) error {
	return slf.Db.Create(attendance).Error
}

func (slf *AttendanceRepository) Update(attendance *models.Attendance) error {
	return slf.Db.Save(attendance).Error
}
