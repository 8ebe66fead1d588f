package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careslot/careslot/internal/platform/auth"
)

func TestSweeperRunOnce(t *testing.T) {
	svc, repo, doc := newTestService(t)
	ctx := context.Background()
	patient := uuid.New()
	owner := auth.Actor{ID: patient, Role: auth.RolePatient}

	past, err := svc.Book(ctx, bookingFor(doc, patient, "2025-01-12", "9:00 AM"))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if _, err := svc.AttestPayment(ctx, past.ID, owner, PaymentInput{PaymentID: "pay_1", Method: "card", Amount: 120}); err != nil {
		t.Fatalf("AttestPayment: %v", err)
	}
	stale, err := svc.Book(ctx, bookingFor(doc, patient, "2025-01-12", "10:30 AM"))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if _, err := svc.Cancel(ctx, stale.ID, owner); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	// 40 days on: the confirmed visit auto-completes and, being terminal and
	// past retention, both rows become purge candidates on the next pass.
	svc.now = func() time.Time { return fixedNow.AddDate(0, 0, 40) }

	sw := NewSweeper(svc, zerolog.Nop(), time.Hour, 30)
	sw.RunOnce(ctx)

	if _, err := repo.GetByID(ctx, stale.ID); err != ErrNotFound {
		t.Errorf("cancelled row should be purged, got err %v", err)
	}

	got, err := repo.GetByID(ctx, past.ID)
	if err != nil {
		// The completion and the purge may land in the same pass; either the
		// row is completed or already gone.
		if err != ErrNotFound {
			t.Fatalf("GetByID: %v", err)
		}
		return
	}
	if got.Status != StatusCompleted {
		t.Errorf("status = %s, want %s", got.Status, StatusCompleted)
	}

	sw.RunOnce(ctx)
	if _, err := repo.GetByID(ctx, past.ID); err != ErrNotFound {
		t.Errorf("completed row should be purged on the second pass, got err %v", err)
	}
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	svc, _, _ := newTestService(t)
	sw := NewSweeper(svc, zerolog.Nop(), time.Minute, 30)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
