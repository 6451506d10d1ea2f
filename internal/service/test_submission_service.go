package service

import (
	"errors"
	"math"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"textbook_backend/internal/apperr"
	"textbook_backend/internal/dto"
	"textbook_backend/internal/model"
	"textbook_backend/internal/repository"
)

// TestSubmissionService grades a submission against the server-held answer
// key and persists an immutable Result. Every successful call creates a new
// Result row; repeat submissions are allowed and kept separately.
type TestSubmissionService interface {
	SubmitTest(userID uint, req dto.SubmitTestRequest) (*dto.SubmissionResultDTO, error)
}

type testSubmissionService struct {
	testRepo   repository.TestRepository
	resultRepo repository.ResultRepository
}

func NewTestSubmissionService(testRepo repository.TestRepository, resultRepo repository.ResultRepository) TestSubmissionService {
	return &testSubmissionService{testRepo: testRepo, resultRepo: resultRepo}
}

func (s *testSubmissionService) SubmitTest(userID uint, req dto.SubmitTestRequest) (*dto.SubmissionResultDTO, error) {
	if req.UserAnswers == nil {
		return nil, apperr.New(apperr.InvalidInput, "Invalid request data. Test ID and user answers are required.")
	}

	test, err := s.testRepo.FindByIDWithQuestions(req.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "Test not found for submission.")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while processing your test submission.")
	}

	questionMap := make(map[uint]model.Question, len(test.Questions))
	for _, q := range test.Questions {
		questionMap[q.ID] = q
	}

	// Grade leniently: a malformed or unknown answer drops that single
	// answer, never the whole submission.
	score := 0
	breakdown := make([]dto.AnswerBreakdownDTO, 0, len(req.UserAnswers))
	resultAnswers := make([]model.ResultAnswer, 0, len(req.UserAnswers))
	for _, ua := range req.UserAnswers {
		question, ok := questionMap[ua.QuestionID]
		if !ok {
			log.Warn().Uint("questionID", ua.QuestionID).Uint("testID", test.ID).Msg("SubmitTest: answer references a question outside this test, skipping")
			continue
		}
		selected, ok := coerceOptionIndex(ua.SelectedOptionIndex)
		if !ok {
			log.Warn().Uint("questionID", ua.QuestionID).Interface("selected", ua.SelectedOptionIndex).Msg("SubmitTest: unusable selected option index, skipping")
			continue
		}

		isCorrect := selected == question.CorrectAnswerIndex
		if isCorrect {
			score++
		}
		breakdown = append(breakdown, dto.AnswerBreakdownDTO{
			QuestionID:          question.ID,
			SelectedOptionIndex: selected,
			IsCorrect:           isCorrect,
			CorrectAnswerIndex:  question.CorrectAnswerIndex,
			Options:             question.Options,
		})
		resultAnswers = append(resultAnswers, model.ResultAnswer{
			QuestionID:          question.ID,
			SelectedOptionIndex: selected,
			IsCorrect:           isCorrect,
			CorrectAnswerIndex:  question.CorrectAnswerIndex,
		})
	}

	totalQuestions := len(test.Questions)
	percentage := percentageOf(score, totalQuestions)

	result := model.Result{
		UserID:         userID,
		TestID:         test.ID,
		Answers:        resultAnswers,
		Score:          score,
		TotalQuestions: totalQuestions,
		TimeTaken:      req.TimeTaken,
		Percentage:     percentage,
	}
	if err := s.resultRepo.Create(&result); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while processing your test submission.")
	}

	log.Info().Uint("userID", userID).Uint("testID", test.ID).Int("score", score).Int("total", totalQuestions).Msg("Test submission graded")

	return &dto.SubmissionResultDTO{
		Score:          score,
		TotalQuestions: totalQuestions,
		TimeTaken:      result.TimeTaken,
		Percentage:     percentage,
		Answers:        breakdown,
	}, nil
}

// coerceOptionIndex converts a decoded JSON value to an option index in
// [0,3]. Numbers and numeric strings are accepted, anything else is not.
func coerceOptionIndex(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	idx := int(f)
	if idx < 0 || idx > 3 {
		return 0, false
	}
	return idx, true
}

// percentageOf is score/total*100 rounded to 2 decimal places, 0 for an
// empty test.
func percentageOf(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(score)/float64(total)*100*100) / 100
}
