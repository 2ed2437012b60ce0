package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ParamMap is a PostgreSQL JSONB column holding named distribution parameters
type ParamMap map[string]float64

// Value implements driver.Valuer interface
func (p ParamMap) Value() (driver.Value, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner interface
func (p *ParamMap) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*p = ParamMap{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ParamMap", value)
	}

	if len(raw) == 0 {
		*p = ParamMap{}
		return nil
	}
	result := ParamMap{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*p = result
	return nil
}

// EvaluationRecord is one recorded evaluation in the history
type EvaluationRecord struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Kind        string    `db:"kind" json:"kind"`
	Mode        string    `db:"mode" json:"mode,omitempty"`
	Params      ParamMap  `db:"params" json:"params"`
	Probability float64   `db:"probability" json:"probability"`
	Headline    string    `db:"headline" json:"headline"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
