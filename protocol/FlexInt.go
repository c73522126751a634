package protocol

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexInt is an int that unmarshals from either a JSON number or a quoted decimal
// string. Several GLPI endpoints switch between the two representations.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if string(data) == "null" || len(data) == 0 {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f))
}

// Int returns the plain int value.
func (f FlexInt) Int() int {
	return int(f)
}
