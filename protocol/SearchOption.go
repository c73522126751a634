package protocol

// SearchOption describes one searchable field of an itemtype, as returned by the
// listSearchOptions endpoint. Options are keyed by a numeric id which is the Field
// value used in SearchCriterion.
type SearchOption struct {
	Name      string `json:"name"`
	Table     string `json:"table"`
	Field     string `json:"field"`
	LinkField string `json:"linkfield"`
	DataType  string `json:"datatype"`
	// UID is the dotted unique identifier, e.g. "Computer.name".
	UID string `json:"uid"`
	// AvailableSearchTypes lists the comparison operators valid for this option.
	AvailableSearchTypes []string `json:"available_searchtypes,omitempty"`
	// NoDisplay marks options that cannot be used as result columns.
	NoDisplay bool `json:"nodisplay,omitempty"`
}

// SearchOptions maps search-option id to its description. Non-numeric keys of the raw
// response (group captions) are dropped during decoding.
type SearchOptions map[int]SearchOption
