package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

type stubReminderRepo struct {
	reminders map[string]*domain.Reminder
}

func newStubReminderRepo() *stubReminderRepo {
	return &stubReminderRepo{reminders: make(map[string]*domain.Reminder)}
}

func (r *stubReminderRepo) Create(_ context.Context, rem *domain.Reminder) (*domain.Reminder, error) {
	clone := *rem
	clone.ID = primitive.NewObjectID().Hex()
	r.reminders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubReminderRepo) FindByID(_ context.Context, id string) (*domain.Reminder, error) {
	if rem, ok := r.reminders[id]; ok {
		clone := *rem
		return &clone, nil
	}
	return nil, domain.ErrReminderNotFound
}

func (r *stubReminderRepo) FindByUser(_ context.Context, userID string) ([]domain.Reminder, error) {
	var out []domain.Reminder
	for _, rem := range r.reminders {
		if rem.UserID == userID {
			out = append(out, *rem)
		}
	}
	return out, nil
}

func (r *stubReminderRepo) Update(_ context.Context, rem *domain.Reminder) (*domain.Reminder, error) {
	if _, ok := r.reminders[rem.ID]; !ok {
		return nil, domain.ErrReminderNotFound
	}
	clone := *rem
	r.reminders[rem.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubReminderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.reminders[id]; !ok {
		return domain.ErrReminderNotFound
	}
	delete(r.reminders, id)
	return nil
}

func TestReminderService_Create_StampsUser(t *testing.T) {
	svc := NewReminderService(newStubReminderRepo(), zerolog.Nop())

	userID := primitive.NewObjectID().Hex()
	created, err := svc.Create(context.Background(), userID, &domain.Reminder{
		UserID:     "someone-else",
		AnimalName: "Rex",
		Message:    "rabies shot",
		Date:       time.Now().UTC().AddDate(0, 0, 3),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.UserID != userID {
		t.Fatalf("UserID = %q, want %q", created.UserID, userID)
	}
	if !created.Planned || created.CreatedAt.IsZero() {
		t.Fatalf("unexpected reminder: %+v", created)
	}
}

func TestReminderService_ForeignReminder(t *testing.T) {
	repo := newStubReminderRepo()
	svc := NewReminderService(repo, zerolog.Nop())

	owner := primitive.NewObjectID().Hex()
	created, err := svc.Create(context.Background(), owner, &domain.Reminder{Message: "deworming"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	intruder := primitive.NewObjectID().Hex()
	if _, err := svc.Update(context.Background(), intruder, created.ID, &domain.Reminder{Message: "changed"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("update err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), intruder, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("delete err = %v, want ErrForbidden", err)
	}

	if err := svc.Delete(context.Background(), owner, created.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.Delete(context.Background(), owner, created.ID); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Fatalf("second delete err = %v, want ErrReminderNotFound", err)
	}
}

func TestReminderService_Update_PreservesIdentity(t *testing.T) {
	repo := newStubReminderRepo()
	svc := NewReminderService(repo, zerolog.Nop())

	owner := primitive.NewObjectID().Hex()
	created, err := svc.Create(context.Background(), owner, &domain.Reminder{Message: "checkup"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(context.Background(), owner, created.ID, &domain.Reminder{
		ID:      "forged-id",
		UserID:  "forged-user",
		Message: "checkup moved",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != created.ID || updated.UserID != owner {
		t.Fatalf("identity not preserved: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("CreatedAt changed: %v != %v", updated.CreatedAt, created.CreatedAt)
	}
	if updated.Message != "checkup moved" {
		t.Fatalf("Message = %q", updated.Message)
	}
}
