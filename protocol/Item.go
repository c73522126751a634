package protocol

import (
	"fmt"
	"strconv"
)

// Item is a single GLPI object of any itemtype. The API returns a different field set
// per itemtype, so the item is kept as a dynamic map with typed accessors.
type Item map[string]interface{}

// ID returns the item's id field, or 0 when absent.
func (i Item) ID() int {
	n, _ := i.Int("id")
	return n
}

// Name returns the item's name field, or the empty string when absent.
func (i Item) Name() string {
	s, _ := i.String("name")
	return s
}

// Int returns the named field coerced to an int. The API serializes numeric columns
// either as JSON numbers or as decimal strings depending on the itemtype.
func (i Item) Int(field string) (int, bool) {
	v, ok := i[field]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

// String returns the named field rendered as a string.
func (i Item) String(field string) (string, bool) {
	v, ok := i[field]
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return fmt.Sprintf("%v", v), true
}

// Bool returns the named field as a bool. GLPI encodes flags as 0/1 columns.
func (i Item) Bool(field string) (bool, bool) {
	n, ok := i.Int(field)
	if !ok {
		return false, false
	}
	return n != 0, true
}
