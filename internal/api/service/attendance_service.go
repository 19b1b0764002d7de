package service

import (
	"errors"
	"time"

	"studio"
	"studio/internal/api/models"
	"studio/internal/api/repo"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type AttendanceService struct {
	attendanceRepo *repo.AttendanceRepository
	config         studio.AppConfig
	logger         zerolog.Logger
}

func NewAttendanceService() *AttendanceService {
	return &AttendanceService{
		attendanceRepo: repo.NewAttendanceRepository(),
		config:         studio.GetConfig(),
		logger:         studio.Logger,
	}
}

// CheckIn records the first arrival of the day. A check-in after the
// configured late hour is flagged late; checking in twice the same day
// returns the existing record unchanged.
func (slf *AttendanceService) CheckIn(userID uint) (*models.Attendance, error) {
	now := time.Now()
	day := now.Truncate(24 * time.Hour)

	existing, err := slf.attendanceRepo.FindByUserAndDay(userID, day)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error looking up attendance")
		return nil, err
	}

	status := models.AttendancePresent
	if now.Hour() >= slf.config.AttendanceLateHour {
		status = models.AttendanceLate
	}

	attendance := models.Attendance{
		UserID:  userID,
		Day:     day,
		CheckIn: now,
		Status:  status,
	}
	if err := slf.attendanceRepo.Create(&attendance); err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error creating attendance record")
		return nil, err
	}

	slf.logger.Info().Uint("userId", userID).Str("status", string(status)).Msg("Checked in")
	return &attendance, nil
}

func (slf *AttendanceService) CheckOut(userID uint) (*models.Attendance, error) {
	now := time.Now()
	day := now.Truncate(24 * time.Hour)

	attendance, err := slf.attendanceRepo.FindByUserAndDay(userID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("no check-in found for today")
		}
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error looking up attendance")
		return nil, err
	}

	if attendance.CheckOut != nil {
		return &attendance, nil
	}

	attendance.CheckOut = &now
	if err := slf.attendanceRepo.Update(&attendance); err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error updating attendance record")
		return nil, err
	}
	return &attendance, nil
}

func (slf *AttendanceService) FindByDay(day time.Time) ([]models.Attendance, error) {
	records, err := slf.attendanceRepo.FindByDay(day)
	if err != nil {
		slf.logger.Error().Err(err).Str("day", day.Format("2006-01-02")).Msg("Error listing attendance for day")
		return nil, err
	}
	return records, nil
}

func (slf *AttendanceService) FindByUser(userID uint, from, to time.Time) ([]models.Attendance, error) {
	if to.Before(from) {
		return nil, errors.New("invalid date range")
	}
	records, err := slf.attendanceRepo.FindByUser(userID, from, to)
	if err != nil {
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error listing attendance for user")
		return nil, err
	}
	return records, nil
}
