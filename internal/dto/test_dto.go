package dto

// QuestionViewDTO is the delivered form of a question. The correct answer
// index is stripped before anything leaves the server.
type QuestionViewDTO struct {
	ID           uint     `json:"id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
}

type PaginationDTO struct {
	CurrentPage    int `json:"currentPage"`
	TotalPages     int `json:"totalPages"`
	TotalQuestions int `json:"totalQuestions"`
}

// TestViewDTO is one shuffled, paginated page of a test plus the seed the
// client must echo to keep subsequent pages in the same order.
type TestViewDTO struct {
	ID         uint              `json:"id"`
	Subject    string            `json:"subject"`
	Duration   int               `json:"duration"`
	Questions  []QuestionViewDTO `json:"questions"`
	Pagination PaginationDTO     `json:"pagination"`
	TestSeed   string            `json:"testSeed"`
}

// SubmittedAnswerDTO carries one answer of a submission. SelectedOptionIndex
// is left untyped on purpose: a malformed value drops that single answer
// during grading instead of rejecting the whole submission.
type SubmittedAnswerDTO struct {
	QuestionID          uint `json:"questionId"`
	SelectedOptionIndex any  `json:"selectedOptionIndex"`
}

type SubmitTestRequest struct {
	TestID      uint                 `json:"testId" binding:"required"`
	UserAnswers []SubmittedAnswerDTO `json:"userAnswers" binding:"required"`
	TimeTaken   int                  `json:"timeTaken"`
}

type AnswerBreakdownDTO struct {
	QuestionID          uint     `json:"questionId"`
	SelectedOptionIndex int      `json:"selectedOptionIndex"`
	IsCorrect           bool     `json:"isCorrect"`
	CorrectAnswerIndex  int      `json:"correctAnswerIndex"`
	Options             []string `json:"options"`
}

type SubmissionResultDTO struct {
	Score          int                  `json:"score"`
	TotalQuestions int                  `json:"totalQuestions"`
	TimeTaken      int                  `json:"timeTaken"`
	Percentage     float64              `json:"percentage"`
	Answers        []AnswerBreakdownDTO `json:"answers"`
}
