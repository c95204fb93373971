package model

// AvailabilityWindow is a recurring weekly interval during which a doctor
// is nominally bookable. Day numbering follows the upstream registry:
// 0 = Monday .. 6 = Sunday. Windows are advisory; the booking path does
// not gate on them unless strict mode is configured.
type AvailabilityWindow struct {
	ID          int64     `db:"id" json:"id"`
	DoctorID    int64     `db:"doctor_id" json:"doctor_id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	StartTime   TimeOfDay `db:"start_time" json:"start_time"`
	EndTime     TimeOfDay `db:"end_time" json:"end_time"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
}

type CreateAvailabilityRequest struct {
	DayOfWeek   *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime   string `json:"start_time" binding:"required,timeofday"`
	EndTime     string `json:"end_time" binding:"required,timeofday"`
	IsAvailable *bool  `json:"is_available"`
}
