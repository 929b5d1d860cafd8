package models

// Department represents an academic department. Departments are seeded once
// and treated as immutable afterwards.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
