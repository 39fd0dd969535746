package domain

import "time"

// MCQSet is the generated question set kept as a session's last result
type MCQSet struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	SourceName string    `json:"source_name"`
	Format     Format    `json:"format"`
	CharCount  int       `json:"char_count"`
	Questions  string    `json:"questions"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProcessResult is what the MCQ service hands back for one upload
type ProcessResult struct {
	Set *MCQSet
	// Generated is false when the generator failed; Set.Questions then holds
	// the human-readable error text and the set is not stored.
	Generated bool
	Chunks    []string
}
