package protocol

import (
	"bytes"
	"encoding/json"
)

// ItemResult is the per-item outcome of an add, update or delete call. ID is zero when
// the server rejected the item; Message carries the server's explanation, if any.
type ItemResult struct {
	ID      int
	OK      bool
	Message string
}

// UnmarshalJSON handles the API's loose encoding: the id field is an integer on
// success and false on failure, and delete/update results key the outcome by the item
// id instead of an "id" field.
func (r *ItemResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, val := range raw {
		switch key {
		case "message":
			json.Unmarshal(val, &r.Message)
		case "id":
			if bytes.Equal(val, []byte("false")) {
				r.OK = false
				continue
			}
			var f FlexInt
			if err := json.Unmarshal(val, &f); err != nil {
				return err
			}
			r.ID = f.Int()
			r.OK = true
		default:
			// {"42": true, "message": ""} form: key is the item id.
			var f FlexInt
			if err := json.Unmarshal([]byte(key), &f); err != nil {
				continue
			}
			r.ID = f.Int()
			r.OK = !bytes.Equal(val, []byte("false"))
		}
	}
	return nil
}

// ItemResults collects the outcome of a bulk operation.
type ItemResults []ItemResult

// AllOK reports whether every item in the batch succeeded.
func (rs ItemResults) AllOK() bool {
	for _, r := range rs {
		if !r.OK {
			return false
		}
	}
	return len(rs) > 0
}
