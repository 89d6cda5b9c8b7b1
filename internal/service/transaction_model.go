package service

// SortOrder selects how Apply orders transactions by date.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortAscending
	SortDescending
)

// Query describes the filters a user picked in the menu. Zero values
// disable the matching step, except State which is always applied.
type Query struct {
	State             string
	Sort              SortOrder
	ReferenceOnly     bool
	DescriptionFilter string
}
