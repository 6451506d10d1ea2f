package service

import (
	"mime/multipart"
	"testing"

	"gorm.io/gorm"

	"textbook_backend/internal/apperr"
	"textbook_backend/internal/model"
)

type fakeNewsRepo struct {
	items  map[uint]*model.News
	nextID uint
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{items: map[uint]*model.News{}}
}

func (r *fakeNewsRepo) Create(news *model.News) error {
	r.nextID++
	news.ID = r.nextID
	r.items[news.ID] = news
	return nil
}

func (r *fakeNewsRepo) FindByID(id uint) (*model.News, error) {
	n, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (r *fakeNewsRepo) FindAll() ([]model.News, error) {
	var out []model.News
	for _, n := range r.items {
		out = append(out, *n)
	}
	return out, nil
}

func (r *fakeNewsRepo) Delete(id uint) error {
	delete(r.items, id)
	return nil
}

type fakeFileStorage struct {
	saved   int
	removed []string
}

func (s *fakeFileStorage) SaveImage(file *multipart.FileHeader, folder string) (string, error) {
	s.saved++
	return "http://files.local/uploads/" + folder + "/image.webp", nil
}

func (s *fakeFileStorage) Remove(url string) error {
	s.removed = append(s.removed, url)
	return nil
}

func TestNewsAddAndList(t *testing.T) {
	svc := NewNewsService(newFakeNewsRepo(), &fakeFileStorage{})

	added, err := svc.Add("Exam schedule", "Midterms start Monday.", nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.ID == 0 || added.Title != "Exam schedule" {
		t.Errorf("added = %+v", added)
	}
	if added.Image != "" {
		t.Errorf("image = %q, want empty without upload", added.Image)
	}

	items, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("list has %d items, want 1", len(items))
	}
}

func TestNewsAddWithImage(t *testing.T) {
	files := &fakeFileStorage{}
	svc := NewNewsService(newFakeNewsRepo(), files)

	added, err := svc.Add("Exam schedule", "Midterms start Monday.", &multipart.FileHeader{Filename: "p.jpg"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if files.saved != 1 {
		t.Errorf("saved %d images, want 1", files.saved)
	}
	if added.Image == "" {
		t.Error("image URL missing from response")
	}
}

func TestNewsAddRequiresTitleAndDesc(t *testing.T) {
	svc := NewNewsService(newFakeNewsRepo(), &fakeFileStorage{})

	for _, tc := range []struct{ title, desc string }{
		{"", "desc"},
		{"title", ""},
	} {
		_, err := svc.Add(tc.title, tc.desc, nil)
		if apperr.KindOf(err) != apperr.InvalidInput {
			t.Errorf("Add(%q, %q) kind = %v, want InvalidInput", tc.title, tc.desc, apperr.KindOf(err))
		}
	}
}

func TestNewsRemoveDeletesImageFile(t *testing.T) {
	files := &fakeFileStorage{}
	repo := newFakeNewsRepo()
	svc := NewNewsService(repo, files)

	added, err := svc.Add("Exam schedule", "Midterms start Monday.", &multipart.FileHeader{Filename: "p.jpg"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Remove(added.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(files.removed) != 1 {
		t.Errorf("removed %d files, want 1", len(files.removed))
	}
	if _, err := repo.FindByID(added.ID); err == nil {
		t.Error("news row still present after Remove")
	}
}

func TestNewsRemoveUnknownID(t *testing.T) {
	svc := NewNewsService(newFakeNewsRepo(), &fakeFileStorage{})

	err := svc.Remove(42)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("kind = %v, want NotFound (err: %v)", apperr.KindOf(err), err)
	}
}
