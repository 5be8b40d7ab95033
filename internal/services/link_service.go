package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/wellness-service/internal/models"
	"github.com/SAP-F-2025/wellness-service/internal/repositories"
	"github.com/SAP-F-2025/wellness-service/internal/validator"
)

// ===== SERVICE INTERFACE =====

type LinkService interface {
	// Link connects a parent to the student account registered under the
	// given email. The student's contact card is returned on success.
	Link(ctx context.Context, parentID uint, req *validator.LinkStudentRequest) (*models.LinkedStudent, error)

	ListStudents(ctx context.Context, parentID uint) ([]models.LinkedStudent, error)

	// Unlink removes the edge. It is deliberately not idempotent: unlinking
	// an absent edge reports ErrNotFound so clients notice stale state.
	Unlink(ctx context.Context, parentID, studentID uint) error
}

// ===== SERVICE IMPLEMENTATION =====

type linkService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewLinkService(repo repositories.Repository, logger *slog.Logger, v *validator.BusinessValidator) LinkService {
	return &linkService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *linkService) Link(ctx context.Context, parentID uint, req *validator.LinkStudentRequest) (*models.LinkedStudent, error) {
	s.logger.Info("Linking student", "parent_id", parentID)

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	email := strings.ToLower(strings.TrimSpace(req.StudentEmail))

	student, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, fmt.Errorf("%w: no student account with that email", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}
	if student.Role != models.RoleStudent {
		return nil, fmt.Errorf("%w: no student account with that email", ErrNotFound)
	}

	exists, err := s.repo.Link().Exists(ctx, parentID, student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check link: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: student already linked", ErrAlreadyExists)
	}

	link := &models.LinkedAccount{ParentID: parentID, StudentID: student.ID}
	if err := s.repo.Link().Create(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	s.logger.Info("Student linked", "parent_id", parentID, "student_id", student.ID)
	return &models.LinkedStudent{
		ID:    student.ID,
		Name:  student.Name,
		Email: student.Email,
	}, nil
}

func (s *linkService) ListStudents(ctx context.Context, parentID uint) ([]models.LinkedStudent, error) {
	students, err := s.repo.Link().ListStudents(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list linked students: %w", err)
	}
	return students, nil
}

func (s *linkService) Unlink(ctx context.Context, parentID, studentID uint) error {
	s.logger.Info("Unlinking student", "parent_id", parentID, "student_id", studentID)

	deleted, err := s.repo.Link().Delete(ctx, parentID, studentID)
	if err != nil {
		return fmt.Errorf("failed to unlink student: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: link not found", ErrNotFound)
	}
	return nil
}
