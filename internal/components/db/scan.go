package db

import "database/sql"

func scanCourses(rows *sql.Rows) ([]Course, error) {
	defer rows.Close()
	var items []Course
	for rows.Next() {
		var i Course
		if err := rows.Scan(
			&i.ID,
			&i.Subject,
			&i.Code,
			&i.Title,
			&i.Description,
			&i.Credits,
			&i.Url,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
