package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/wellness-service/internal/models"
	"github.com/SAP-F-2025/wellness-service/internal/validator"
)

func TestLinkStudent(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewLinkService(repo, testLogger(), testValidator())
	ctx := context.Background()

	parent := seedUser(t, repo, "Ravi", "ravi@example.com", models.RoleParent)
	student := seedUser(t, repo, "Asha", "asha@example.com", models.RoleStudent)

	card, err := svc.Link(ctx, parent.ID, &validator.LinkStudentRequest{StudentEmail: "asha@example.com"})
	if err != nil {
		t.Fatalf("link error: %v", err)
	}
	if card.ID != student.ID || card.Name != "Asha" || card.Email != "asha@example.com" {
		t.Fatalf("unexpected student card: %+v", card)
	}

	students, err := svc.ListStudents(ctx, parent.ID)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(students) != 1 || students[0].ID != student.ID {
		t.Fatalf("unexpected linked students: %+v", students)
	}
}

func TestLinkUnknownEmail(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewLinkService(repo, testLogger(), testValidator())

	parent := seedUser(t, repo, "Ravi", "ravi@example.com", models.RoleParent)

	_, err := svc.Link(context.Background(), parent.ID, &validator.LinkStudentRequest{StudentEmail: "nobody@example.com"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLinkRejectsNonStudentAccount(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewLinkService(repo, testLogger(), testValidator())

	parent := seedUser(t, repo, "Ravi", "ravi@example.com", models.RoleParent)
	seedUser(t, repo, "Mina", "mina@example.com", models.RoleParent)

	// A parent email resolves to a user but not a student account.
	_, err := svc.Link(context.Background(), parent.ID, &validator.LinkStudentRequest{StudentEmail: "mina@example.com"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-student account, got %v", err)
	}
}

func TestLinkDuplicate(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewLinkService(repo, testLogger(), testValidator())
	ctx := context.Background()

	parent := seedUser(t, repo, "Ravi", "ravi@example.com", models.RoleParent)
	seedUser(t, repo, "Asha", "asha@example.com", models.RoleStudent)

	req := &validator.LinkStudentRequest{StudentEmail: "asha@example.com"}
	if _, err := svc.Link(ctx, parent.ID, req); err != nil {
		t.Fatalf("link error: %v", err)
	}

	_, err := svc.Link(ctx, parent.ID, req)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUnlink(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewLinkService(repo, testLogger(), testValidator())
	ctx := context.Background()

	parent := seedUser(t, repo, "Ravi", "ravi@example.com", models.RoleParent)
	student := seedUser(t, repo, "Asha", "asha@example.com", models.RoleStudent)

	// Unlinking before a link exists is an error, not a no-op.
	if err := svc.Unlink(ctx, parent.ID, student.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := svc.Link(ctx, parent.ID, &validator.LinkStudentRequest{StudentEmail: "asha@example.com"}); err != nil {
		t.Fatalf("link error: %v", err)
	}

	if err := svc.Unlink(ctx, parent.ID, student.ID); err != nil {
		t.Fatalf("unlink error: %v", err)
	}

	students, err := svc.ListStudents(ctx, parent.ID)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(students) != 0 {
		t.Fatalf("expected no linked students, got %+v", students)
	}
}
