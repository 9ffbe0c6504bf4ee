package store

import (
	"fmt"
	"testing"
	"time"

	"bankcore/internal/models"
)

func TestAttemptStoreCap(t *testing.T) {
	s := NewAttemptStore()
	now := time.Now()
	for i := 0; i < maxAttemptEntries+20; i++ {
		s.Append(models.LoginAttempt{
			Identifier: fmt.Sprintf("user%d", i),
			Status:     models.AttemptStatusFailed,
			Timestamp:  now.Add(time.Duration(i) * time.Second),
		})
	}
	list := s.List()
	if len(list) != maxAttemptEntries {
		t.Fatalf("expected %d retained entries, got %d", maxAttemptEntries, len(list))
	}
	if list[0].Identifier != "user20" {
		t.Fatalf("expected oldest entries evicted, first retained is %s", list[0].Identifier)
	}
}

func TestAttemptStoreAssignsID(t *testing.T) {
	s := NewAttemptStore()
	s.Append(models.LoginAttempt{Identifier: "alice", Status: models.AttemptStatusSuccess, Timestamp: time.Now()})
	if s.List()[0].ID == "" {
		t.Fatal("expected generated attempt id")
	}
}

func TestAttemptStoreCountFailedSince(t *testing.T) {
	s := NewAttemptStore()
	now := time.Now()
	s.Append(models.LoginAttempt{Identifier: "a", Status: models.AttemptStatusFailed, Timestamp: now.Add(-2 * time.Hour)})
	s.Append(models.LoginAttempt{Identifier: "b", Status: models.AttemptStatusFailed, Timestamp: now.Add(-10 * time.Minute)})
	s.Append(models.LoginAttempt{Identifier: "c", Status: models.AttemptStatusSuccess, Timestamp: now.Add(-5 * time.Minute)})

	if n := s.CountFailedSince(now.Add(-time.Hour)); n != 1 {
		t.Fatalf("expected 1 recent failure, got %d", n)
	}
}
