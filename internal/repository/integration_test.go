package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sports-facility-reservation/internal/model"
)

// openTestDB connects to the database named by TEST_DATABASE_DSN, e.g.
//
//	TEST_DATABASE_DSN="root:pass@tcp(127.0.0.1:3306)/reservations_test?parseTime=true"
//
// Tests in this file are skipped when the variable is unset. The schema
// is expected to be migrated already.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type fixture struct {
	users        *UserRepo
	branches     *BranchRepo
	sports       *SportRepo
	sessions     *SessionRepo
	reservations *ReservationRepo
}

func newFixture(db *sql.DB) fixture {
	return fixture{
		users:        NewUserRepo(db),
		branches:     NewBranchRepo(db),
		sports:       NewSportRepo(db),
		sessions:     NewSessionRepo(db),
		reservations: NewReservationRepo(db),
	}
}

func (f fixture) makeUser(t *testing.T, ctx context.Context) *model.User {
	t.Helper()
	u := &model.User{
		FullName:     "Integration Tester",
		Email:        fmt.Sprintf("it-%d@example.com", time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         model.RoleCustomer,
	}
	require.NoError(t, f.users.Add(ctx, u))
	return u
}

func (f fixture) makeSession(t *testing.T, ctx context.Context, quota uint32) *model.Session {
	t.Helper()
	b := &model.Branch{Name: fmt.Sprintf("it-branch-%d", time.Now().UnixNano())}
	require.NoError(t, f.branches.Add(ctx, b))
	sp := &model.Sport{Name: fmt.Sprintf("it-sport-%d", time.Now().UnixNano()), IsActive: true}
	require.NoError(t, f.sports.Add(ctx, sp))
	s := &model.Session{
		BranchID:        b.ID,
		SportID:         sp.ID,
		StartTime:       time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second),
		DurationMinutes: 60,
		Quota:           quota,
		Price:           100,
	}
	require.NoError(t, f.sessions.Add(ctx, s))
	return s
}

func (f fixture) book(ctx context.Context, userID, sessionID uint64) error {
	tx, err := f.reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := f.reservations.AdmitTx(ctx, tx, f.sessions, f.users, AdmitParams{
		UserID:    userID,
		SessionID: sessionID,
	}); err != nil {
		return err
	}
	res := &model.Reservation{UserID: userID, SessionID: sessionID}
	if err := f.reservations.AddQ(ctx, tx, res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Two concurrent bookings racing for a single remaining spot: exactly
// one must commit and the other must observe a full session.
func TestConcurrentAdmissionLastSpot(t *testing.T) {
	db := openTestDB(t)
	f := newFixture(db)
	ctx := context.Background()

	sess := f.makeSession(t, ctx, 1)
	u1 := f.makeUser(t, ctx)
	u2 := f.makeUser(t, ctx)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, u := range []*model.User{u1, u2} {
		wg.Add(1)
		go func(i int, userID uint64) {
			defer wg.Done()
			errs[i] = f.book(ctx, userID, sess.ID)
		}(i, u.ID)
	}
	wg.Wait()

	var admitted, full int
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case err == ErrQuotaFull:
			full++
		default:
			t.Fatalf("unexpected booking error: %v", err)
		}
	}
	require.Equal(t, 1, admitted)
	require.Equal(t, 1, full)

	taken, err := f.reservations.CountWhere(ctx, "session_id = ?", sess.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, taken)
}

func TestDuplicateBookingRejected(t *testing.T) {
	db := openTestDB(t)
	f := newFixture(db)
	ctx := context.Background()

	sess := f.makeSession(t, ctx, 5)
	u := f.makeUser(t, ctx)

	require.NoError(t, f.book(ctx, u.ID, sess.ID))
	require.ErrorIs(t, f.book(ctx, u.ID, sess.ID), ErrAlreadyReserved)
}

// Cancelling a reservation frees its spot without erasing the row.
func TestSoftDeleteFreesSpot(t *testing.T) {
	db := openTestDB(t)
	f := newFixture(db)
	ctx := context.Background()

	sess := f.makeSession(t, ctx, 1)
	u1 := f.makeUser(t, ctx)
	u2 := f.makeUser(t, ctx)

	require.NoError(t, f.book(ctx, u1.ID, sess.ID))
	require.ErrorIs(t, f.book(ctx, u2.ID, sess.ID), ErrQuotaFull)

	res, err := f.reservations.Where(ctx, "user_id = ? AND session_id = ?", u1.ID, sess.ID)
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.NoError(t, f.reservations.Remove(ctx, res[0]))

	// The tombstoned row is gone from reads but the spot is free again.
	_, err = f.reservations.GetByID(ctx, res[0].ID)
	require.ErrorIs(t, err, ErrReservationNotFound)
	require.NoError(t, f.book(ctx, u2.ID, sess.ID))
}

// Soft-deleting a branch must not cascade: its sessions stay readable,
// keep referencing the branch id, and the detail join still resolves the
// tombstoned branch's name.
func TestBranchSoftDeleteKeepsSessions(t *testing.T) {
	db := openTestDB(t)
	f := newFixture(db)
	ctx := context.Background()

	sess := f.makeSession(t, ctx, 5)

	branch, err := f.branches.GetByID(ctx, sess.BranchID)
	require.NoError(t, err)
	require.NoError(t, f.branches.Remove(ctx, branch))

	// The branch is gone from reads.
	_, err = f.branches.GetByID(ctx, sess.BranchID)
	require.ErrorIs(t, err, ErrBranchNotFound)

	// Its session is not.
	got, err := f.sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, sess.BranchID, got.BranchID)

	detail, err := f.sessions.GetDetail(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, branch.Name, detail.BranchName)

	// The session remains bookable.
	u := f.makeUser(t, ctx)
	require.NoError(t, f.book(ctx, u.ID, sess.ID))
}

// Moving a reservation between sessions must not count the moved row
// against the target quota twice, and moving within the same session is
// a no-op that passes admission.
func TestMoveReservation(t *testing.T) {
	db := openTestDB(t)
	f := newFixture(db)
	ctx := context.Background()

	sessA := f.makeSession(t, ctx, 1)
	sessB := f.makeSession(t, ctx, 1)
	u := f.makeUser(t, ctx)

	require.NoError(t, f.book(ctx, u.ID, sessA.ID))
	res, err := f.reservations.Where(ctx, "user_id = ? AND session_id = ?", u.ID, sessA.ID)
	require.NoError(t, err)
	require.Len(t, res, 1)

	move := func(target uint64) error {
		tx, err := f.reservations.DB().BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		committed := false
		defer func() {
			if !committed {
				_ = tx.Rollback()
			}
		}()
		if _, err := f.reservations.AdmitTx(ctx, tx, f.sessions, f.users, AdmitParams{
			UserID:               u.ID,
			SessionID:            target,
			ExcludeReservationID: res[0].ID,
		}); err != nil {
			return err
		}
		res[0].SessionID = target
		if err := f.reservations.UpdateQ(ctx, tx, res[0]); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		committed = true
		return nil
	}

	// Re-admitting into the currently held session must succeed even at
	// quota 1: the held spot is excluded from the count.
	require.NoError(t, move(sessA.ID))
	require.NoError(t, move(sessB.ID))

	taken, err := f.reservations.CountWhere(ctx, "session_id = ?", sessA.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, taken)
	taken, err = f.reservations.CountWhere(ctx, "session_id = ?", sessB.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, taken)
}
