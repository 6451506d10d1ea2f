package service

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"textbook_backend/internal/model"
	"textbook_backend/internal/repository"
)

/* In-memory fakes satisfying the repository interfaces. */

type fakeTestRepo struct {
	tests map[uint]*model.Test
}

func newFakeTestRepo(tests ...*model.Test) *fakeTestRepo {
	m := map[uint]*model.Test{}
	for _, t := range tests {
		m[t.ID] = t
	}
	return &fakeTestRepo{tests: m}
}

func (r *fakeTestRepo) Create(test *model.Test) error {
	r.tests[test.ID] = test
	return nil
}

func (r *fakeTestRepo) Save(test *model.Test) error {
	r.tests[test.ID] = test
	return nil
}

func (r *fakeTestRepo) FindBySubject(subject string) (*model.Test, error) {
	for _, t := range r.tests {
		if t.Subject == subject {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTestRepo) FindBySubjectWithQuestions(subject string) (*model.Test, error) {
	return r.FindBySubject(subject)
}

func (r *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	t, ok := r.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

type fakeResultRepo struct {
	created []*model.Result
	nextID  uint
}

func (r *fakeResultRepo) Create(result *model.Result) error {
	r.nextID++
	result.ID = r.nextID
	result.SubmittedAt = time.Now()
	r.created = append(r.created, result)
	return nil
}

func (r *fakeResultRepo) FindByUserIDWithTest(userID uint) ([]model.Result, error) {
	var out []model.Result
	for _, res := range r.created {
		if res.UserID == userID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) CountAll() (int64, error) {
	return int64(len(r.created)), nil
}

func (r *fakeResultRepo) StatsByUser() ([]repository.UserResultStat, error) {
	byUser := map[uint]*repository.UserResultStat{}
	for _, res := range r.created {
		st, ok := byUser[res.UserID]
		if !ok {
			st = &repository.UserResultStat{UserID: res.UserID}
			byUser[res.UserID] = st
		}
		st.TestCount++
		st.AverageScore += res.Percentage
	}
	var out []repository.UserResultStat
	for _, st := range byUser {
		st.AverageScore /= float64(st.TestCount)
		out = append(out, *st)
	}
	return out, nil
}

func (r *fakeResultRepo) Recent(limit int) ([]model.Result, error) {
	var out []model.Result
	for i := len(r.created) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *r.created[i])
	}
	return out, nil
}

type fakeUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*model.User{}}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindAllActive() ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CountActive() (int64, error) {
	users, _ := r.FindAllActive()
	return int64(len(users)), nil
}

func (r *fakeUserRepo) CountActiveSince(t time.Time) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.IsActive && u.LastLogin != nil && !u.LastLogin.Before(t) {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) Deactivate(id uint) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsActive = false
	return nil
}

type fakeAdminRepo struct {
	admins map[uint]*model.Admin
	nextID uint
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[uint]*model.Admin{}}
}

func (r *fakeAdminRepo) Create(admin *model.Admin) error {
	for _, a := range r.admins {
		if a.Email == admin.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	admin.ID = r.nextID
	admin.CreatedAt = time.Now()
	r.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminRepo) FindByID(id uint) (*model.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeAdminRepo) FindByEmail(email string) (*model.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAdminRepo) FindAll() ([]model.Admin, error) {
	var out []model.Admin
	for _, a := range r.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAdminRepo) Delete(id uint) error {
	delete(r.admins, id)
	return nil
}

/* Builders */

func buildQuestion(id uint, correct int) model.Question {
	return model.Question{
		ID:                 id,
		QuestionText:       "question",
		Options:            datatypes.NewJSONSlice([]string{"a", "b", "c", "d"}),
		CorrectAnswerIndex: correct,
	}
}

func buildTest(id uint, subject string, correctAnswers ...int) *model.Test {
	test := &model.Test{ID: id, Subject: subject, Duration: 60}
	for i, correct := range correctAnswers {
		test.Questions = append(test.Questions, buildQuestion(uint(i+1), correct))
	}
	return test
}
