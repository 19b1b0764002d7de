package models

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Attendance is one staff member's record for one day.
type Attendance struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index:idx_attendance_user_day,unique" json:"userId"`
	User      User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Day       time.Time        `gorm:"type:date;not null;index:idx_attendance_user_day,unique" json:"day"`
	CheckIn   time.Time        `json:"checkIn"`
	CheckOut  *time.Time       `json:"checkOut,omitempty"`
	Status    AttendanceStatus `gorm:"type:varchar(10);default:present" json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (Attendance) TableName() string {
	return "attendance"
}
