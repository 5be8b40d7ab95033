package validator

// RegisterRequest represents the request structure for account registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required,user_role"`
	Language string `json:"language" validate:"omitempty,supported_language"`
}

// LoginRequest represents the request structure for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LanguageUpdateRequest represents the request structure for changing the
// preferred interface language
type LanguageUpdateRequest struct {
	Language string `json:"language" validate:"required,supported_language"`
}

// CheckInRequest represents the request structure for a daily mood check-in
type CheckInRequest struct {
	Mood    string `json:"mood" validate:"required,mood_value"`
	Stress  int    `json:"stress" validate:"required,wellness_scale"`
	Energy  int    `json:"energy" validate:"required,wellness_scale"`
	Journal string `json:"journal" validate:"omitempty,max=2000"`
}

// LinkStudentRequest represents the request structure for linking a parent to
// a student account
type LinkStudentRequest struct {
	StudentEmail string `json:"student_email" validate:"required,email"`
}
