package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AnswerMap holds a participant's submitted answers keyed by question ID.
// It is stored as a JSONB column; values are string-encoded the same way
// Question.CorrectAnswer is, so scoring is a per-type string comparison.
type AnswerMap map[uint]string

func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*m = AnswerMap{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported answer map column type %T", value)
	}
	if len(raw) == 0 {
		*m = AnswerMap{}
		return nil
	}
	return json.Unmarshal(raw, m)
}

func (AnswerMap) GormDataType() string {
	return "jsonb"
}
