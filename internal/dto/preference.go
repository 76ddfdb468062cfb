package dto

// UpdatePreferenceRequest captures PUT /preferences payload.
type UpdatePreferenceRequest struct {
	DailyHours      float64 `json:"dailyHours" validate:"required,gt=0,max=12"`
	SessionDuration int     `json:"sessionDuration" validate:"required,oneof=25 45 60"`
	BreakDuration   int     `json:"breakDuration" validate:"required,oneof=5 10 15"`
	DayStart        string  `json:"dayStart" validate:"omitempty,datetime=15:04"`
}
