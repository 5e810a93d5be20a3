package db

type Course struct {
	ID          int64
	Subject     string
	Code        string
	Title       string
	Description string
	Credits     float64
	Url         string
}
