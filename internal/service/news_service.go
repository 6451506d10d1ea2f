package service

import (
	"errors"
	"mime/multipart"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"textbook_backend/internal/apperr"
	"textbook_backend/internal/dto"
	"textbook_backend/internal/model"
	"textbook_backend/internal/repository"
	"textbook_backend/internal/storage"
)

type NewsService interface {
	Add(title, desc string, image *multipart.FileHeader) (*dto.NewsDTO, error)
	List() ([]dto.NewsDTO, error)
	Remove(id uint) error
}

type newsService struct {
	newsRepo repository.NewsRepository
	files    storage.FileStorage
}

func NewNewsService(newsRepo repository.NewsRepository, files storage.FileStorage) NewsService {
	return &newsService{newsRepo: newsRepo, files: files}
}

func (s *newsService) Add(title, desc string, image *multipart.FileHeader) (*dto.NewsDTO, error) {
	if title == "" || desc == "" {
		return nil, apperr.New(apperr.InvalidInput, "Title and description are required")
	}

	var imageURL string
	if image != nil {
		url, err := s.files.SaveImage(image, "news")
		if err != nil {
			return nil, apperr.Wrap(apperr.InvalidInput, err, "Failed to store news image")
		}
		imageURL = url
	}

	news := model.News{Title: title, Desc: desc, Image: imageURL}
	if err := s.newsRepo.Create(&news); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to add news")
	}

	var out dto.NewsDTO
	if err := copier.Copy(&out, &news); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to add news")
	}
	return &out, nil
}

func (s *newsService) List() ([]dto.NewsDTO, error) {
	items, err := s.newsRepo.FindAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to fetch news")
	}
	out := make([]dto.NewsDTO, 0, len(items))
	for _, n := range items {
		var d dto.NewsDTO
		if err := copier.Copy(&d, &n); err != nil {
			return nil, apperr.Wrap(apperr.Internal, err, "Failed to fetch news")
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *newsService) Remove(id uint) error {
	news, err := s.newsRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "News not found")
		}
		return apperr.Wrap(apperr.Internal, err, "Failed to delete news")
	}

	// Image removal is best effort; the news row is deleted regardless.
	if news.Image != "" {
		if err := s.files.Remove(news.Image); err != nil {
			log.Warn().Err(err).Str("url", news.Image).Msg("Failed to remove news image file")
		}
	}

	if err := s.newsRepo.Delete(id); err != nil {
		return apperr.Wrap(apperr.Internal, err, "Failed to delete news")
	}
	return nil
}
