package models

type Goal struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	TargetDate  *int64  `json:"target_date"`
	Progress    float64 `json:"progress"`
	IsCompleted bool    `json:"is_completed"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

// ProgressCompletes reports whether progress marks a goal as done.
func ProgressCompletes(progress float64) bool {
	return progress >= 1.0
}
