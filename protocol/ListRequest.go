package protocol

import (
	"fmt"
	"net/url"
)

// ListRequest holds the options shared by calls that return several items, such as
// listing an itemtype or the sub items of an object.
type ListRequest struct {
	// ExpandDropdowns replaces dropdown ids with their names in the response.
	ExpandDropdowns bool
	// OnlyID restricts the returned fields to id and links.
	OnlyID bool
	// Range bounds the query to [Start, End]. Zero value means the server default (0-50).
	Range *ItemRange
	// SortBy is the field name to sort on.
	SortBy string
	// Order applies to SortBy. Empty means the server default (ascending).
	Order SortOrder
	// FilterBy adds searchText[field]=value filters to the query.
	FilterBy map[string]string
	// IsDeleted includes items sitting in the trash.
	IsDeleted bool
	// AddKeyNames lists id fields whose friendly names should be added to the response.
	AddKeyNames []string
}

// ItemRange is an inclusive pagination window.
type ItemRange struct {
	Start int
	End   int
}

func (r ItemRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// EncodeParams writes the non-default options into v using the API's parameter names.
func (l ListRequest) EncodeParams(v url.Values) {
	if l.ExpandDropdowns {
		v.Set("expand_dropdowns", "true")
	}
	if l.OnlyID {
		v.Set("only_id", "true")
	}
	if l.Range != nil {
		v.Set("range", l.Range.String())
	}
	if l.SortBy != "" {
		v.Set("sort", l.SortBy)
	}
	if l.Order != "" {
		v.Set("order", l.Order.String())
	}
	if l.IsDeleted {
		v.Set("is_deleted", "1")
	}
	for _, name := range l.AddKeyNames {
		v.Add("add_keys_names[]", name)
	}
	for field, value := range l.FilterBy {
		v.Set(fmt.Sprintf("searchText[%s]", field), value)
	}
}
