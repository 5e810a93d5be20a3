package catalog

import (
	"context"
	"database/sql"
	"testing"

	"catalog-backend/internal/components/db"
	"catalog-backend/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func openStore(t testing.TB) (Store, *sql.DB) {
	database, err := db.Config{File: ":memory:"}.OpenDB()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewStore(database, telemetry.NewRecorder()), database
}

func TestStoreUpsertIsIdempotent(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()

	courses := []Course{
		{Subject: "CIS", Code: "CIS*1300", Title: "Programming", Credits: 0.5},
		{Subject: "MATH", Code: "MATH*1200", Title: "Calculus I", Credits: 0.5},
	}
	require.NoError(t, store.UpsertCourses(ctx, courses))
	require.NoError(t, store.UpsertCourses(ctx, courses))

	all, err := store.Courses(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	courses[0].Description = "Evaluation: Midterm: 30%"
	require.NoError(t, store.UpsertCourses(ctx, courses[:1]))

	course, err := store.Course(ctx, "CIS*1300")
	require.NoError(t, err)
	require.Equal(t, courses[0], course)
}

func TestStoreQueries(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertCourses(ctx, []Course{
		{Subject: "CIS", Code: "CIS*2500", Credits: 0.5},
		{Subject: "CIS", Code: "CIS*1300", Credits: 0.5},
		{Subject: "MATH", Code: "MATH*1200", Credits: 0.5},
	}))

	cis, err := store.Courses(ctx, "CIS")
	require.NoError(t, err)
	require.Len(t, cis, 2)
	require.Equal(t, "CIS*1300", cis[0].Code)

	codes, err := store.Codes(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"CIS*1300", "CIS*2500", "MATH*1200"}, codes)

	_, err = store.Course(ctx, "HIST*1010")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreFailedBatchRollsBack(t *testing.T) {
	store, database := openStore(t)
	ctx := context.Background()

	_, err := database.Exec(`create trigger reject_bad before insert on courses
		when new.code = 'BAD*0000'
		begin select raise(abort, 'rejected'); end`)
	require.NoError(t, err)

	err = store.UpsertCourses(ctx, []Course{
		{Subject: "CIS", Code: "CIS*1300"},
		{Subject: "BAD", Code: "BAD*0000"},
	})
	require.Error(t, err)

	codes, err := store.Codes(ctx)
	require.NoError(t, err)
	require.Empty(t, codes)
}
