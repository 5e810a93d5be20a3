package db

import (
	"context"
)

const upsertCourse = `-- name: UpsertCourse :exec
insert into courses (subject, code, title, description, credits, url)
values (?, ?, ?, ?, ?, ?)
on conflict (code) do update set
    subject = excluded.subject,
    title = excluded.title,
    description = excluded.description,
    credits = excluded.credits,
    url = excluded.url
`

type UpsertCourseParams struct {
	Subject     string
	Code        string
	Title       string
	Description string
	Credits     float64
	Url         string
}

func (q *Queries) UpsertCourse(ctx context.Context, arg UpsertCourseParams) error {
	_, err := q.db.ExecContext(ctx, upsertCourse,
		arg.Subject,
		arg.Code,
		arg.Title,
		arg.Description,
		arg.Credits,
		arg.Url,
	)
	return err
}

const getCourse = `-- name: GetCourse :one
select id, subject, code, title, description, credits, url from courses
where code = ?
`

func (q *Queries) GetCourse(ctx context.Context, code string) (Course, error) {
	row := q.db.QueryRowContext(ctx, getCourse, code)
	var i Course
	err := row.Scan(
		&i.ID,
		&i.Subject,
		&i.Code,
		&i.Title,
		&i.Description,
		&i.Credits,
		&i.Url,
	)
	return i, err
}

const getAllCourses = `-- name: GetAllCourses :many
select id, subject, code, title, description, credits, url from courses
order by code
`

func (q *Queries) GetAllCourses(ctx context.Context) ([]Course, error) {
	rows, err := q.db.QueryContext(ctx, getAllCourses)
	if err != nil {
		return nil, err
	}
	return scanCourses(rows)
}

const getSubjectCourses = `-- name: GetSubjectCourses :many
select id, subject, code, title, description, credits, url from courses
where subject = ?
order by code
`

func (q *Queries) GetSubjectCourses(ctx context.Context, subject string) ([]Course, error) {
	rows, err := q.db.QueryContext(ctx, getSubjectCourses, subject)
	if err != nil {
		return nil, err
	}
	return scanCourses(rows)
}

const getCourseCodes = `-- name: GetCourseCodes :many
select code from courses
order by code
`

func (q *Queries) GetCourseCodes(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, getCourseCodes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		items = append(items, code)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countCourses = `-- name: CountCourses :one
select count(*) from courses
`

func (q *Queries) CountCourses(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countCourses)
	var count int64
	err := row.Scan(&count)
	return count, err
}
