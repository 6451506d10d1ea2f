package service

import (
	"testing"

	"textbook_backend/internal/apperr"
	"textbook_backend/internal/random"
)

func deliveryFixture(questionCount int) TestDeliveryService {
	test := buildTest(1, "math")
	for i := 0; i < questionCount; i++ {
		test.Questions = append(test.Questions, buildQuestion(uint(i+1), 0))
	}
	return NewTestDeliveryService(newFakeTestRepo(test), random.NewSineSource())
}

func TestGetTestBySubjectSameSeedSameOrder(t *testing.T) {
	svc := deliveryFixture(10)

	first, err := svc.GetTestBySubject("math", 1, 10, "0.5")
	if err != nil {
		t.Fatalf("GetTestBySubject: %v", err)
	}
	second, err := svc.GetTestBySubject("math", 1, 10, "0.5")
	if err != nil {
		t.Fatalf("GetTestBySubject: %v", err)
	}
	for i := range first.Questions {
		if first.Questions[i].ID != second.Questions[i].ID {
			t.Fatalf("question order diverged at %d: %d vs %d", i, first.Questions[i].ID, second.Questions[i].ID)
		}
	}
}

func TestGetTestBySubjectPagesPartitionTheShuffle(t *testing.T) {
	svc := deliveryFixture(25)

	seen := map[uint]bool{}
	var total int
	for page := 1; page <= 3; page++ {
		view, err := svc.GetTestBySubject("math", page, 10, "0.42")
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if view.Pagination.CurrentPage != page {
			t.Errorf("currentPage = %d, want %d", view.Pagination.CurrentPage, page)
		}
		if view.Pagination.TotalPages != 3 {
			t.Errorf("totalPages = %d, want 3", view.Pagination.TotalPages)
		}
		if view.Pagination.TotalQuestions != 25 {
			t.Errorf("totalQuestions = %d, want 25", view.Pagination.TotalQuestions)
		}
		for _, q := range view.Questions {
			if seen[q.ID] {
				t.Errorf("question %d appeared on more than one page", q.ID)
			}
			seen[q.ID] = true
		}
		total += len(view.Questions)
	}
	if total != 25 {
		t.Errorf("pages delivered %d questions, want 25", total)
	}
}

func TestGetTestBySubjectGeneratesSeedWhenAbsent(t *testing.T) {
	svc := deliveryFixture(5)

	view, err := svc.GetTestBySubject("math", 1, 10, "")
	if err != nil {
		t.Fatalf("GetTestBySubject: %v", err)
	}
	if view.TestSeed == "" {
		t.Fatal("no seed returned")
	}

	// The returned seed must reproduce the same order when echoed back.
	again, err := svc.GetTestBySubject("math", 1, 10, view.TestSeed)
	if err != nil {
		t.Fatalf("GetTestBySubject: %v", err)
	}
	for i := range view.Questions {
		if view.Questions[i].ID != again.Questions[i].ID {
			t.Fatalf("echoed seed gave a different order at %d", i)
		}
	}
}

func TestGetTestBySubjectEchoesSeed(t *testing.T) {
	svc := deliveryFixture(5)

	view, err := svc.GetTestBySubject("math", 1, 10, "0.123456")
	if err != nil {
		t.Fatalf("GetTestBySubject: %v", err)
	}
	if view.TestSeed != "0.123456" {
		t.Errorf("testSeed = %q, want %q", view.TestSeed, "0.123456")
	}
}

func TestGetTestBySubjectNormalizesSubject(t *testing.T) {
	svc := deliveryFixture(5)

	if _, err := svc.GetTestBySubject("  MATH ", 1, 10, "0.5"); err != nil {
		t.Errorf("GetTestBySubject with mixed-case subject: %v", err)
	}
}

func TestGetTestBySubjectStripsAnswerKey(t *testing.T) {
	test := buildTest(1, "math", 2, 3)
	svc := NewTestDeliveryService(newFakeTestRepo(test), random.NewSineSource())

	view, err := svc.GetTestBySubject("math", 1, 10, "0.5")
	if err != nil {
		t.Fatalf("GetTestBySubject: %v", err)
	}
	for _, q := range view.Questions {
		if q.QuestionText == "" || len(q.Options) != 4 {
			t.Errorf("question %d missing text or options", q.ID)
		}
	}
}

func TestGetTestBySubjectPageBeyondEnd(t *testing.T) {
	svc := deliveryFixture(5)

	view, err := svc.GetTestBySubject("math", 9, 10, "0.5")
	if err != nil {
		t.Fatalf("GetTestBySubject: %v", err)
	}
	if len(view.Questions) != 0 {
		t.Errorf("page beyond end delivered %d questions, want 0", len(view.Questions))
	}
	if view.Pagination.TotalPages != 1 {
		t.Errorf("totalPages = %d, want 1", view.Pagination.TotalPages)
	}
}

func TestGetTestBySubjectUnknownSubject(t *testing.T) {
	svc := deliveryFixture(5)

	_, err := svc.GetTestBySubject("history", 1, 10, "")
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("kind = %v, want NotFound (err: %v)", apperr.KindOf(err), err)
	}
}

func TestGetTestBySubjectEmptyQuestionSet(t *testing.T) {
	svc := NewTestDeliveryService(newFakeTestRepo(buildTest(1, "math")), random.NewSineSource())

	_, err := svc.GetTestBySubject("math", 1, 10, "")
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("kind = %v, want NotFound (err: %v)", apperr.KindOf(err), err)
	}
}

func TestGetTestBySubjectBlankSubject(t *testing.T) {
	svc := deliveryFixture(5)

	_, err := svc.GetTestBySubject("   ", 1, 10, "")
	if apperr.KindOf(err) != apperr.InvalidInput {
		t.Errorf("kind = %v, want InvalidInput (err: %v)", apperr.KindOf(err), err)
	}
}
