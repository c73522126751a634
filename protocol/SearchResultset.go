package protocol

import "encoding/json"

// SearchResultset is the return of a search query. Data rows are maps keyed by
// search-option id (or by uid when UIDCols was requested).
type SearchResultset struct {
	// TotalCount is the number of items matching the query, across all pages.
	TotalCount FlexInt `json:"totalcount"`
	// Count is the number of items in this page.
	Count FlexInt `json:"count"`
	// Sort echoes the requested sort option.
	Sort json.RawMessage `json:"sort,omitempty"`
	// Order echoes the requested sort order.
	Order json.RawMessage `json:"order,omitempty"`
	// Data holds the result rows.
	Data []map[string]interface{} `json:"data"`
	// DataHTML holds portal links for each row when GiveItems was requested.
	DataHTML []map[string]interface{} `json:"data_html,omitempty"`
	// RawData holds query debug information when RawData was requested.
	RawData json.RawMessage `json:"rawdata,omitempty"`
}
