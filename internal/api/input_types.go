package api

type credentialsInput struct {
	Email    string `json:"email" form:"email" validate:"required,max=254"`
	Password string `json:"password" form:"password" validate:"required,max=256"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type deleteAccountInput struct {
	Password string `json:"password" validate:"required"`
}

type cycleCreateInput struct {
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     string  `json:"notes" validate:"max=2000"`
}

type cycleUpdateInput struct {
	StartDate    *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	ClearEndDate bool    `json:"clear_end_date"`
	Notes        *string `json:"notes" validate:"omitempty,max=2000"`
}

type dailyLogInput struct {
	Mood           *string  `json:"mood" validate:"omitempty,max=32"`
	Temperature    *float64 `json:"temperature" validate:"omitempty,gte=30,lte=45"`
	Weight         *float64 `json:"weight" validate:"omitempty,gt=0,lte=500"`
	SexualActivity bool     `json:"sexual_activity"`
	Notes          string   `json:"notes"`
}
