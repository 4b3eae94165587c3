package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// IntOrString decodes 42 and "42" alike.
type IntOrString int

func (i *IntOrString) UnmarshalJSON(b []byte) error {
	var asInt int
	if err := json.Unmarshal(b, &asInt); err == nil {
		*i = IntOrString(asInt)
		return nil
	}

	var asStr string
	if err := json.Unmarshal(b, &asStr); err == nil {
		parsed, err := strconv.Atoi(asStr)
		if err != nil {
			return err
		}
		*i = IntOrString(parsed)
		return nil
	}

	return errors.New("invalid int or string")
}

func (i IntOrString) Int() int {
	return int(i)
}

// NumericString keeps a numeric form field as text. Clients send 50, "50" or "50%"
// and the value is parsed where it is used.
type NumericString string

func (n *NumericString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(b, &asNumber); err == nil {
		*n = NumericString(asNumber.String())
		return nil
	}

	var asStr string
	if err := json.Unmarshal(b, &asStr); err == nil {
		*n = NumericString(asStr)
		return nil
	}

	return errors.New("invalid numeric value")
}

func (n NumericString) String() string {
	return string(n)
}
