package protocol

import (
	"fmt"
	"net/url"
	"strconv"
)

// Search criterion comparison operators.
const (
	SearchContains  = "contains"
	SearchEquals    = "equals"
	SearchNotEquals = "notequals"
	SearchLessThan  = "lessthan"
	SearchMoreThan  = "morethan"
	SearchUnder     = "under"
	SearchNotUnder  = "notunder"
)

// Logical links between criteria.
const (
	LinkAnd    = "AND"
	LinkOr     = "OR"
	LinkAndNot = "AND NOT"
)

// SearchCriterion is one filter of a search query. A criterion either compares a
// search-option field against a value, or groups nested criteria (the equivalent of a
// parenthesized sub expression).
type SearchCriterion struct {
	// Link is the logical operator tying this criterion to the previous one. It is
	// required on every criterion but the first.
	Link string
	// Field is the numeric id of the search option to compare. Ids for an itemtype are
	// listed by GetSearchOptions.
	Field int
	// SearchType is one of the Search* comparison constants.
	SearchType string
	// Value is the right-hand side of the comparison.
	Value string
	// Meta marks this criterion as targeting another itemtype.
	Meta bool
	// ItemType names the target itemtype of a meta criterion.
	ItemType string
	// Criteria, when set, makes this a nested group and the comparison fields above
	// (except Link) are ignored.
	Criteria []SearchCriterion
}

// SearchRequest shapes a query against the GLPI search engine.
type SearchRequest struct {
	// Criteria is the filter list. Leaving it empty returns every item of the type.
	Criteria []SearchCriterion
	// SortByID is the search-option id to sort on. Zero means unsorted.
	SortByID int
	// Order applies to SortByID.
	Order SortOrder
	// Range bounds the query. Nil means the server default (0-50).
	Range *ItemRange
	// ForceDisplay lists the search-option ids of the columns to return. The id
	// column (1) is always present.
	ForceDisplay []int
	// RawData asks the server to include query debug information in the response.
	RawData bool
	// WithIndexes keys the data rows by item id instead of returning a list.
	WithIndexes bool
	// UIDCols replaces numeric column keys with their search-option uid.
	UIDCols bool
	// GiveItems adds portal links for each returned item in a data_html field.
	GiveItems bool
}

// EncodeParams writes the query into v using the API's bracketed parameter names.
func (s SearchRequest) EncodeParams(v url.Values) {
	encodeCriteria(v, "criteria", s.Criteria)
	if s.SortByID != 0 {
		v.Set("sort", strconv.Itoa(s.SortByID))
	}
	if s.Order != "" {
		v.Set("order", s.Order.String())
	}
	if s.Range != nil {
		v.Set("range", s.Range.String())
	}
	for _, id := range s.ForceDisplay {
		v.Add("forcedisplay[]", strconv.Itoa(id))
	}
	if s.RawData {
		v.Set("rawdata", "1")
	}
	if s.WithIndexes {
		v.Set("withindexes", "1")
	}
	if s.UIDCols {
		v.Set("uid_cols", "1")
	}
	if s.GiveItems {
		v.Set("giveItems", "1")
	}
}

// encodeCriteria flattens criteria into prefix[i][key] parameters, recursing into
// nested groups as prefix[i][criteria][j][key].
func encodeCriteria(v url.Values, prefix string, criteria []SearchCriterion) {
	for i, c := range criteria {
		p := fmt.Sprintf("%s[%d]", prefix, i)
		if c.Link != "" {
			v.Set(p+"[link]", c.Link)
		}
		if len(c.Criteria) > 0 {
			encodeCriteria(v, p+"[criteria]", c.Criteria)
			continue
		}
		v.Set(p+"[field]", strconv.Itoa(c.Field))
		v.Set(p+"[searchtype]", c.SearchType)
		v.Set(p+"[value]", c.Value)
		if c.Meta {
			v.Set(p+"[meta]", "1")
			v.Set(p+"[itemtype]", c.ItemType)
		}
	}
}
