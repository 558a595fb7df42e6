package models

// StudySession is a completed block of study time for one subject.
// StartedAt is stamped when the session is recorded.
type StudySession struct {
	ID           string  `json:"id"`
	Subject      string  `json:"subject"`
	DurationSecs int64   `json:"duration_secs"`
	Notes        *string `json:"notes"`
	StartedAt    int64   `json:"started_at"`
	CreatedAt    int64   `json:"created_at"`
	UpdatedAt    int64   `json:"updated_at"`
}
