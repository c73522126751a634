package protocol

// SortOrder is the ordering applied to list and search queries.
type SortOrder string

// The two orderings understood by the API.
const (
	Ascending  SortOrder = "ASC"
	Descending SortOrder = "DESC"
)

func (s SortOrder) String() string {
	return string(s)
}
