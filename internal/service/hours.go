package service

import (
	"fmt"
	"time"
)

const (
	CodeBusinessHours = "BUSINESS_HOURS_VIOLATION"
	CodeConflict      = "SCHEDULING_CONFLICT"
)

// BookingError is a normal rejection of a requested booking, carrying a
// machine code and a human-readable reason.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CheckBusinessHours rejects intervals outside the 09:30-17:00 operating
// window. Both instants are evaluated as wall times in loc.
func CheckBusinessHours(start, end time.Time, loc *time.Location) *BookingError {
	s := start.In(loc)
	e := end.In(loc)
	startHour := float64(s.Hour()) + float64(s.Minute())/60
	endHour := float64(e.Hour()) + float64(e.Minute())/60
	if startHour < 9.5 {
		return &BookingError{Code: CodeBusinessHours, Message: "Start must be at or after 9:30 AM."}
	}
	if endHour > 17 {
		return &BookingError{Code: CodeBusinessHours, Message: "End must be at or before 5:00 PM."}
	}
	return nil
}
