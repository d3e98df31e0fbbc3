package models

import "camstore-backend/schedule"

// Schedule is the visibility window shared by banners and offers. Dates are
// YYYY-MM-DD and times HH:MM in the store's reference zone; nil means unbounded.
type Schedule struct {
	IsActive  bool    `gorm:"not null;index" json:"is_active"`
	StartDate *string `gorm:"type:varchar(32)" json:"start_date"`
	EndDate   *string `gorm:"type:varchar(32)" json:"end_date"`
	StartTime *string `gorm:"type:varchar(8)" json:"start_time"`
	EndTime   *string `gorm:"type:varchar(8)" json:"end_time"`
}

func (s Schedule) ScheduleWindow() schedule.Window {
	return schedule.Window{
		IsActive:  s.IsActive,
		StartDate: deref(s.StartDate),
		EndDate:   deref(s.EndDate),
		StartTime: deref(s.StartTime),
		EndTime:   deref(s.EndTime),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
