package service

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"textbook_backend/internal/apperr"
	"textbook_backend/internal/dto"
	"textbook_backend/internal/model"
	"textbook_backend/internal/random"
	"textbook_backend/internal/repository"
)

const defaultPageSize = 20

// TestDeliveryService serves one shuffled, paginated page of a test's
// questions. The same seed always yields the same order, so a client that
// echoes the returned seed sees a stable sequence across pages.
type TestDeliveryService interface {
	GetTestBySubject(subject string, page, limit int, seed string) (*dto.TestViewDTO, error)
}

type testDeliveryService struct {
	testRepo repository.TestRepository
	src      random.Source
}

func NewTestDeliveryService(testRepo repository.TestRepository, src random.Source) TestDeliveryService {
	return &testDeliveryService{testRepo: testRepo, src: src}
}

func (s *testDeliveryService) GetTestBySubject(subject string, page, limit int, seed string) (*dto.TestViewDTO, error) {
	subject = strings.ToLower(strings.TrimSpace(subject))
	if subject == "" {
		return nil, apperr.New(apperr.InvalidInput, "Subject parameter is required")
	}

	test, err := s.testRepo.FindBySubjectWithQuestions(subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "Test with subject '%s' not found.", subject)
		}
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching test.")
	}
	if len(test.Questions) == 0 {
		return nil, apperr.New(apperr.NotFound, "No questions found for this test.")
	}

	if seed == "" {
		seed = random.NewSeed()
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	shuffled := random.Shuffle(test.Questions, seed, s.src)
	pageItems, totalPages := random.Paginate(shuffled, page, limit)

	log.Debug().Str("subject", subject).Int("page", page).Int("limit", limit).Str("seed", seed).Msg("Delivering test page")

	return &dto.TestViewDTO{
		ID:        test.ID,
		Subject:   test.Subject,
		Duration:  test.Duration,
		Questions: sanitizeQuestions(pageItems),
		Pagination: dto.PaginationDTO{
			CurrentPage:    page,
			TotalPages:     totalPages,
			TotalQuestions: len(test.Questions),
		},
		TestSeed: seed,
	}, nil
}

// sanitizeQuestions strips the answer key from the delivered view.
func sanitizeQuestions(questions []model.Question) []dto.QuestionViewDTO {
	views := make([]dto.QuestionViewDTO, 0, len(questions))
	for _, q := range questions {
		views = append(views, dto.QuestionViewDTO{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      q.Options,
		})
	}
	return views
}
