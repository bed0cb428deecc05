package store

import (
	"testing"
	"time"

	"choreboard/internal/model"
)

func setupSessionFixture(t *testing.T) (*SessionStore, *model.User) {
	t.Helper()
	db := setupTestDB(t)
	us := NewUserStore(db)
	u, err := us.Create("alice", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewSessionStore(db), u
}

func TestSessionCreate(t *testing.T) {
	ss, u := setupSessionFixture(t)

	sess, err := ss.Create(u.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(sess.Token))
	}
	if sess.UserID != u.ID {
		t.Errorf("user id = %d, want %d", sess.UserID, u.ID)
	}
	if !sess.ExpiresAt.After(time.Now()) {
		t.Error("expected expiry in the future")
	}
}

func TestSessionGetByToken(t *testing.T) {
	ss, u := setupSessionFixture(t)

	created, err := ss.Create(u.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess == nil {
		t.Fatal("expected session, got nil")
	}
	if sess.ID != created.ID {
		t.Errorf("id = %d, want %d", sess.ID, created.ID)
	}
}

func TestSessionGetByTokenUnknown(t *testing.T) {
	ss, _ := setupSessionFixture(t)

	sess, err := ss.GetByToken("no-such-token")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess != nil {
		t.Error("expected nil for unknown token")
	}
}

func TestSessionDelete(t *testing.T) {
	ss, u := setupSessionFixture(t)

	created, err := ss.Create(u.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if err := ss.Delete(created.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if sess != nil {
		t.Error("expected nil after delete")
	}
}

func TestSessionDeleteByUserID(t *testing.T) {
	ss, u := setupSessionFixture(t)

	s1, err := ss.Create(u.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	s2, err := ss.Create(u.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if err := ss.DeleteByUserID(u.ID); err != nil {
		t.Fatalf("delete by user: %v", err)
	}

	for _, token := range []string{s1.Token, s2.Token} {
		sess, err := ss.GetByToken(token)
		if err != nil {
			t.Fatalf("get after delete: %v", err)
		}
		if sess != nil {
			t.Error("expected nil after delete by user")
		}
	}
}
