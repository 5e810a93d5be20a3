package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog-backend/internal/components/assert"
	"catalog-backend/internal/components/db"
	"catalog-backend/internal/components/telemetry"
)

const (
	report_db_query = "db.query"
)

var ErrNotFound = errors.New("course not found")

// Store is the courses table.
type Store struct {
	qry    *db.Queries
	makeTx db.MakeTx
	tel    telemetry.API
}

func NewStore(database *sql.DB, tel telemetry.API) Store {
	assert.NotNil(database)
	assert.NotNil(tel)

	return Store{
		qry:    db.New(database),
		makeTx: db.NewMakeTx(database),
		tel:    telemetry.NewScopedAPI("catalog", tel),
	}
}

// UpsertCourses writes all courses in a single transaction, rows with an
// existing code are overwritten.
func (s Store) UpsertCourses(ctx context.Context, courses []Course) error {
	tx, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		s.tel.ReportBroken(report_db_query, fmt.Errorf("make tx: %w", err))
		return err
	}
	defer discard()

	for _, c := range courses {
		err = tx.UpsertCourse(ctx, db.UpsertCourseParams{
			Subject:     c.Subject,
			Code:        c.Code,
			Title:       c.Title,
			Description: c.Description,
			Credits:     c.Credits,
			Url:         c.Url,
		})
		if err != nil {
			s.tel.ReportBroken(report_db_query, err, "UpsertCourse", c.Code)
			return err
		}
	}

	return commit()
}

func courseFromRow(row db.Course) Course {
	return Course{
		Subject:     row.Subject,
		Code:        row.Code,
		Title:       row.Title,
		Description: row.Description,
		Credits:     row.Credits,
		Url:         row.Url,
	}
}

func (s Store) Course(ctx context.Context, code string) (Course, error) {
	row, err := s.qry.GetCourse(ctx, code)
	if errors.Is(err, sql.ErrNoRows) {
		return Course{}, ErrNotFound
	}
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "GetCourse", code)
		return Course{}, err
	}
	return courseFromRow(row), nil
}

// Courses lists courses ordered by code, an empty subject lists every course.
func (s Store) Courses(ctx context.Context, subject string) ([]Course, error) {
	var rows []db.Course
	var err error
	if subject == "" {
		rows, err = s.qry.GetAllCourses(ctx)
	} else {
		rows, err = s.qry.GetSubjectCourses(ctx, subject)
	}
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "GetCourses", subject)
		return nil, err
	}

	out := make([]Course, len(rows))
	for i, r := range rows {
		out[i] = courseFromRow(r)
	}
	return out, nil
}

func (s Store) Codes(ctx context.Context) ([]string, error) {
	codes, err := s.qry.GetCourseCodes(ctx)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "GetCourseCodes")
		return nil, err
	}
	return codes, nil
}
