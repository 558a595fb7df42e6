package models

// Priority is the rank of a task. It crosses the boundary as its integer value.
type Priority int

const (
	PriorityLow    Priority = 0
	PriorityMedium Priority = 1
	PriorityHigh   Priority = 2
)

// DefaultPriority is used for ranks outside {0,1,2}.
const DefaultPriority = PriorityMedium

// PriorityFromRank decodes an integer rank, falling back to DefaultPriority.
func PriorityFromRank(rank int64) Priority {
	if rank < int64(PriorityLow) || rank > int64(PriorityHigh) {
		return DefaultPriority
	}
	return Priority(rank)
}

type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Notes       *string  `json:"notes"`
	DueDate     *int64   `json:"due_date"`
	Priority    Priority `json:"priority"`
	IsCompleted bool     `json:"is_completed"`
	CreatedAt   int64    `json:"created_at"`
	UpdatedAt   int64    `json:"updated_at"`
}
