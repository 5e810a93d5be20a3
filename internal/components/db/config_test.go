package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckWriteCredential(t *testing.T) {
	table := []struct {
		name    string
		config  Config
		missing bool
	}{
		{name: "empty", config: Config{}, missing: true},
		{name: "remote without token", config: Config{Url: "libsql://catalog.turso.io"}, missing: true},
		{name: "remote with token", config: Config{Url: "libsql://catalog.turso.io", AuthToken: "secret"}},
		{name: "local file", config: Config{File: "catalog.db"}},
		{name: "remote wins over file", config: Config{File: "catalog.db", Url: "https://catalog.turso.io"}, missing: true},
	}

	for _, row := range table {
		err := row.config.CheckWriteCredential()
		if row.missing {
			require.True(t, errors.Is(err, ErrMissingCredential), row.name)
			continue
		}
		require.NoError(t, err, row.name)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvUrl:       "libsql://catalog.turso.io",
		EnvAuthToken: "secret",
	}
	cfg := Config{File: "catalog.db", AuthToken: "from-file"}
	cfg.ApplyEnv(func(key string) string { return env[key] })

	require.Equal(t, Config{
		File:      "catalog.db",
		Url:       "libsql://catalog.turso.io",
		AuthToken: "secret",
	}, cfg)
}

func TestUpsertCourse(t *testing.T) {
	database, err := Config{File: ":memory:"}.OpenDB()
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	qry := New(database)

	err = qry.UpsertCourse(ctx, UpsertCourseParams{
		Subject: "CIS",
		Code:    "CIS*1300",
		Title:   "Programming",
		Credits: 0.5,
	})
	require.NoError(t, err)
	err = qry.UpsertCourse(ctx, UpsertCourseParams{
		Subject:     "CIS",
		Code:        "CIS*1300",
		Title:       "Intro to Programming",
		Description: "Evaluation: Midterm: 30%",
		Credits:     0.75,
	})
	require.NoError(t, err)

	count, err := qry.CountCourses(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	course, err := qry.GetCourse(ctx, "CIS*1300")
	require.NoError(t, err)
	require.Equal(t, "Intro to Programming", course.Title)
	require.Equal(t, 0.75, course.Credits)
}
