package store

import (
	"testing"

	"choreboard/internal/model"
)

type statusFixture struct {
	users    *UserStore
	chores   *ChoreStore
	statuses *StatusStore
	user     *model.User
	chore    *model.Chore
}

func setupStatusFixture(t *testing.T) *statusFixture {
	t.Helper()
	db := setupTestDB(t)
	f := &statusFixture{
		users:    NewUserStore(db),
		chores:   NewChoreStore(db),
		statuses: NewStatusStore(db),
	}

	var err error
	f.user, err = f.users.Create("alice", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	f.chore, err = f.chores.Create("Dishes", 2.5)
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}
	return f
}

func TestStatusGetDayMissing(t *testing.T) {
	f := setupStatusFixture(t)

	st, err := f.statuses.GetDay(f.user.ID, f.chore.ID, "2026-08-26")
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if st != nil {
		t.Error("expected nil for missing status row")
	}
}

func TestStatusUpsertCreatesLazily(t *testing.T) {
	f := setupStatusFixture(t)

	err := f.statuses.UpsertDay(f.user.ID, "2026-08-26", []StatusUpdate{
		{ChoreID: f.chore.ID, Prepared: true, Verified: false, Completed: true},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	st, err := f.statuses.GetDay(f.user.ID, f.chore.ID, "2026-08-26")
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if st == nil {
		t.Fatal("expected status row after upsert")
	}
	if !st.Prepared || st.Verified || !st.Completed {
		t.Errorf("flags = %v/%v/%v, want true/false/true", st.Prepared, st.Verified, st.Completed)
	}
}

func TestStatusUpsertOverwritesSameDay(t *testing.T) {
	f := setupStatusFixture(t)

	err := f.statuses.UpsertDay(f.user.ID, "2026-08-26", []StatusUpdate{
		{ChoreID: f.chore.ID, Prepared: true, Verified: true, Completed: true},
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	err = f.statuses.UpsertDay(f.user.ID, "2026-08-26", []StatusUpdate{
		{ChoreID: f.chore.ID},
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	statuses, err := f.statuses.ListForUserOnDate(f.user.ID, "2026-08-26")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected exactly 1 row, got %d", len(statuses))
	}
	st := statuses[0]
	if st.Prepared || st.Verified || st.Completed {
		t.Errorf("flags = %v/%v/%v, want all false", st.Prepared, st.Verified, st.Completed)
	}
}

func TestStatusSeparateDays(t *testing.T) {
	f := setupStatusFixture(t)

	for _, date := range []string{"2026-08-25", "2026-08-26"} {
		err := f.statuses.UpsertDay(f.user.ID, date, []StatusUpdate{
			{ChoreID: f.chore.ID, Completed: true},
		})
		if err != nil {
			t.Fatalf("upsert %s: %v", date, err)
		}
	}

	for _, date := range []string{"2026-08-25", "2026-08-26"} {
		statuses, err := f.statuses.ListForUserOnDate(f.user.ID, date)
		if err != nil {
			t.Fatalf("list %s: %v", date, err)
		}
		if len(statuses) != 1 {
			t.Errorf("%s: expected 1 row, got %d", date, len(statuses))
		}
	}
}

func TestStatusDaySummary(t *testing.T) {
	f := setupStatusFixture(t)

	vacuum, err := f.chores.Create("Vacuum", 4)
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	err = f.statuses.UpsertDay(f.user.ID, "2026-08-26", []StatusUpdate{
		{ChoreID: f.chore.ID, Completed: true},
		{ChoreID: vacuum.ID, Prepared: true}, // not completed, no points
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	points, completed, err := f.statuses.DaySummary(f.user.ID, "2026-08-26")
	if err != nil {
		t.Fatalf("day summary: %v", err)
	}
	if completed != 1 {
		t.Errorf("completed = %d, want 1", completed)
	}
	if points != 2.5 {
		t.Errorf("points = %g, want 2.5", points)
	}
}

func TestStatusDaySummaryEmpty(t *testing.T) {
	f := setupStatusFixture(t)

	points, completed, err := f.statuses.DaySummary(f.user.ID, "2026-08-26")
	if err != nil {
		t.Fatalf("day summary: %v", err)
	}
	if points != 0 || completed != 0 {
		t.Errorf("points/completed = %g/%d, want 0/0", points, completed)
	}
}

func TestStatusDigest(t *testing.T) {
	f := setupStatusFixture(t)

	bob, err := f.users.Create("bob", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	err = f.statuses.UpsertDay(f.user.ID, "2026-08-26", []StatusUpdate{
		{ChoreID: f.chore.ID, Completed: true},
	})
	if err != nil {
		t.Fatalf("upsert alice: %v", err)
	}
	err = f.statuses.UpsertDay(bob.ID, "2026-08-26", []StatusUpdate{
		{ChoreID: f.chore.ID, Prepared: true},
	})
	if err != nil {
		t.Fatalf("upsert bob: %v", err)
	}

	digest, err := f.statuses.Digest("2026-08-26")
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if len(digest) != 1 {
		t.Fatalf("expected 1 digest row, got %d", len(digest))
	}
	if digest[0].Username != "alice" || digest[0].Completed != 1 || digest[0].Points != 2.5 {
		t.Errorf("digest = %+v, want alice/1/2.5", digest[0])
	}
}

func TestStatusUserDeleteCascades(t *testing.T) {
	f := setupStatusFixture(t)

	err := f.statuses.UpsertDay(f.user.ID, "2026-08-26", []StatusUpdate{
		{ChoreID: f.chore.ID, Completed: true},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := f.users.Delete(f.user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	statuses, err := f.statuses.ListForUserOnDate(f.user.ID, "2026-08-26")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(statuses) != 0 {
		t.Errorf("expected 0 statuses after user delete, got %d", len(statuses))
	}
}
