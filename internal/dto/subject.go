package dto

// CreateSubjectRequest captures POST /subjects payload.
type CreateSubjectRequest struct {
	Name         string  `json:"name" validate:"required,max=80"`
	WeeklyHours  float64 `json:"weeklyHours" validate:"required,min=1,max=40"`
	Difficulty   string  `json:"difficulty" validate:"required,oneof=easy medium hard"`
	ExamPriority int     `json:"examPriority" validate:"min=0,max=10"`
	Color        string  `json:"color" validate:"required,hexcolor"`
}

// UpdateSubjectRequest captures PUT /subjects/:id payload. Nil fields are left unchanged.
type UpdateSubjectRequest struct {
	Name         *string  `json:"name" validate:"omitempty,max=80"`
	WeeklyHours  *float64 `json:"weeklyHours" validate:"omitempty,min=1,max=40"`
	Difficulty   *string  `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	ExamPriority *int     `json:"examPriority" validate:"omitempty,min=0,max=10"`
	Color        *string  `json:"color" validate:"omitempty,hexcolor"`
	Active       *bool    `json:"active"`
}

// SubjectQuery binds list filters from the query string.
type SubjectQuery struct {
	IncludeInactive bool   `form:"includeInactive"`
	Search          string `form:"search"`
	Page            int    `form:"page"`
	PageSize        int    `form:"pageSize"`
	SortBy          string `form:"sortBy"`
	SortOrder       string `form:"sortOrder"`
}
