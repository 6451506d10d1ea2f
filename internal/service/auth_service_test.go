package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"textbook_backend/config"
	"textbook_backend/internal/apperr"
	"textbook_backend/internal/dto"
)

func testTokenService() TokenService {
	return NewTokenService(&config.Config{
		Auth: config.Auth{
			JWTSecret:     "test-secret",
			UserTokenTTL:  time.Hour,
			AdminTokenTTL: time.Hour,
		},
	})
}

func authFixture() (AuthService, *fakeUserRepo, *fakeResultRepo) {
	userRepo := newFakeUserRepo()
	resultRepo := &fakeResultRepo{}
	return NewAuthService(userRepo, resultRepo, testTokenService()), userRepo, resultRepo
}

func TestRegisterIssuesTokenAndHashesPassword(t *testing.T) {
	svc, userRepo, _ := authFixture()

	res, err := svc.Register(dto.RegisterRequest{Name: "Ada", Email: "Ada@Example.com", Password: "secret-password"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.Token == "" {
		t.Error("no token issued")
	}
	if res.User.Email != "ada@example.com" {
		t.Errorf("email = %q, want lowercased", res.User.Email)
	}

	stored, err := userRepo.FindByEmail("ada@example.com")
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.Password == "secret-password" {
		t.Error("password stored in plain text")
	}
	if stored.LoginCount != 1 || stored.LastLogin == nil {
		t.Errorf("login counters not initialised: count=%d lastLogin=%v", stored.LoginCount, stored.LastLogin)
	}
}

func TestRegisterResponseOmitsPassword(t *testing.T) {
	svc, _, _ := authFixture()

	res, err := svc.Register(dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret-password"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	body, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(strings.ToLower(string(body)), "password") {
		t.Errorf("response leaks password field: %s", body)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := authFixture()

	req := dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret-password"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(req)
	if apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("kind = %v, want Conflict (err: %v)", apperr.KindOf(err), err)
	}
}

func TestLoginWithValidCredentials(t *testing.T) {
	svc, userRepo, _ := authFixture()

	if _, err := svc.Register(dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret-password"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := svc.Login(dto.LoginRequest{Email: "ADA@example.com", Password: "secret-password"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Error("no token issued")
	}

	stored, _ := userRepo.FindByEmail("ada@example.com")
	if stored.LoginCount != 2 {
		t.Errorf("loginCount = %d, want 2", stored.LoginCount)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := authFixture()

	if _, err := svc.Register(dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret-password"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Login(dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	if apperr.KindOf(err) != apperr.Unauthorized {
		t.Errorf("kind = %v, want Unauthorized (err: %v)", apperr.KindOf(err), err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := authFixture()

	_, err := svc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if apperr.KindOf(err) != apperr.Unauthorized {
		t.Errorf("kind = %v, want Unauthorized (err: %v)", apperr.KindOf(err), err)
	}
}

func TestProfileIncludesResultHistory(t *testing.T) {
	svc, _, resultRepo := authFixture()

	res, err := svc.Register(dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret-password"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	submission := NewTestSubmissionService(newFakeTestRepo(buildTest(1, "math", 0, 1)), resultRepo)
	if _, err := submission.SubmitTest(res.User.ID, dto.SubmitTestRequest{
		TestID:      1,
		UserAnswers: answers(float64(0), float64(1)),
	}); err != nil {
		t.Fatalf("SubmitTest: %v", err)
	}

	profile, err := svc.Profile(res.User.ID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if len(profile.Results) != 1 {
		t.Fatalf("history has %d entries, want 1", len(profile.Results))
	}
	if profile.Results[0].Score != 2 || profile.Results[0].Percentage != 100 {
		t.Errorf("history entry = %+v", profile.Results[0])
	}
}

func TestProfileUnknownUser(t *testing.T) {
	svc, _, _ := authFixture()

	_, err := svc.Profile(999)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("kind = %v, want NotFound (err: %v)", apperr.KindOf(err), err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := testTokenService()
	svc, userRepo, _ := authFixture()

	res, err := svc.Register(dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret-password"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	stored, _ := userRepo.FindByEmail("ada@example.com")

	principal, err := tokens.Parse(res.Token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if principal.ID != stored.ID || principal.Email != stored.Email || principal.Role != "student" {
		t.Errorf("principal = %+v", principal)
	}
}

func TestParseRejectsGarbageToken(t *testing.T) {
	_, err := testTokenService().Parse("not-a-token")
	if apperr.KindOf(err) != apperr.Unauthorized {
		t.Errorf("kind = %v, want Unauthorized (err: %v)", apperr.KindOf(err), err)
	}
}
