package dto

import "time"

const (
	StatusNoTest            = "NO_TEST"
	StatusPreTestNeeded     = "PRE_TEST_NEEDED"
	StatusPostTestLocked    = "POST_TEST_LOCKED"
	StatusPostTestAvailable = "POST_TEST_AVAILABLE"
	StatusCompleted         = "COMPLETED"

	TypePreTest  = "Pre-Test"
	TypePostTest = "Post-Test"
)

// SubmitTestRequest: jawaban per nomor soal, mis. {"1":"A","2":"C"}.
type SubmitTestRequest struct {
	Answers map[string]string `json:"answers"`
}

type TestStatus struct {
	Status    string     `json:"status"`
	Message   string     `json:"message,omitempty"`
	OpenAt    *time.Time `json:"open_at,omitempty"`
	PreScore  *int       `json:"pre_score,omitempty"`
	PostScore *int       `json:"post_score,omitempty"`
}

type QuestionOptions struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// QuestionView: soal untuk peserta, tanpa kunci jawaban.
type QuestionView struct {
	ID      uint            `json:"id"`
	Number  int             `json:"number"`
	Text    string          `json:"text"`
	Options QuestionOptions `json:"options"`
}

type SubmitResult struct {
	Score int    `json:"score"`
	Type  string `json:"type"`
}
