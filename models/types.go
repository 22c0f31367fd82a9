package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice persists a list of strings as one JSON column. Plans use
// it for the venue and activity candidate lists, which are opaque to
// the store and only ever read or replaced whole.
type StringSlice []string

func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}

// Scan accepts both []byte and string because the MySQL and sqlite
// drivers disagree on how they hand back JSON columns.
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ss)
	case string:
		return json.Unmarshal([]byte(v), ss)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

func (StringSlice) GormDataType() string {
	return "json"
}

// MarshalJSON renders a nil slice as [] so API clients never see null
// where a list belongs.
func (ss StringSlice) MarshalJSON() ([]byte, error) {
	if ss == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(ss))
}

func (ss *StringSlice) UnmarshalJSON(data []byte) error {
	var slice []string
	if err := json.Unmarshal(data, &slice); err != nil {
		return err
	}
	*ss = StringSlice(slice)
	return nil
}
