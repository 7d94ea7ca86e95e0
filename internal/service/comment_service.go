package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rockymountnc/licensetracker/internal/models"
	"github.com/rockymountnc/licensetracker/internal/repository"
)

type CommentService struct {
	repo repository.Repository
}

func NewCommentService(repo repository.Repository) *CommentService {
	return &CommentService{repo: repo}
}

func (s *CommentService) List(ctx context.Context) ([]*models.Comment, error) {
	return s.repo.ListComments(ctx)
}

func (s *CommentService) ListBySoftware(ctx context.Context, softwareID int64) ([]*models.Comment, error) {
	return s.repo.ListCommentsBySoftware(ctx, softwareID)
}

func (s *CommentService) Get(ctx context.Context, id int64) (*models.Comment, error) {
	return s.repo.GetComment(ctx, id)
}

// Create records a comment authored by the given user. The software must
// exist and the satisfaction rate must be within range.
func (s *CommentService) Create(ctx context.Context, author *models.User, req *models.CommentRequest) (*models.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, NewValidationError(CodeValidationFailed, "content is required")
	}
	if err := validateSatisfactionRate(req.SatisfactionRate); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetSoftware(ctx, req.SoftwareID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &models.Comment{
		UserID:           author.ID,
		Username:         author.Username,
		SoftwareID:       req.SoftwareID,
		Content:          req.Content,
		SatisfactionRate: req.SatisfactionRate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, id int64, req *models.CommentRequest) (*models.Comment, error) {
	comment, err := s.repo.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, NewValidationError(CodeValidationFailed, "content is required")
	}
	if err := validateSatisfactionRate(req.SatisfactionRate); err != nil {
		return nil, err
	}

	comment.SoftwareID = req.SoftwareID
	comment.Content = req.Content
	comment.SatisfactionRate = req.SatisfactionRate
	comment.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Patch updates only the fields present in the request.
func (s *CommentService) Patch(ctx context.Context, id int64, req *models.CommentPatchRequest) (*models.Comment, error) {
	comment, err := s.repo.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, NewValidationError(CodeValidationFailed, "content must not be empty")
		}
		comment.Content = *req.Content
	}
	comment.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteComment(ctx, id)
}

func validateSatisfactionRate(rate int) error {
	if rate < models.MinSatisfactionRate || rate > models.MaxSatisfactionRate {
		return NewValidationError(CodeValidationFailed, fmt.Sprintf(
			"satisfaction_rate must be between %d and %d",
			models.MinSatisfactionRate, models.MaxSatisfactionRate))
	}
	return nil
}
