package domain

const (
	SortAsc  = 1
	SortDesc = -1
)

// ListOptions shape a collection read: which fields to return, how many
// documents and in which order. Zero values mean "no constraint".
type ListOptions struct {
	Fields    []string
	Limit     int64
	SortField string
	SortOrder int
}
