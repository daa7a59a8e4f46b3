package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// MovementType represents the direction of a stock movement
type MovementType string

const (
	MovementTypeIn  MovementType = "in"
	MovementTypeOut MovementType = "out"
)

// Valid reports whether the value is a known movement direction
func (t MovementType) Valid() bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

func (t MovementType) String() string {
	return string(t)
}

func (t MovementType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *MovementType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = MovementType(str)
	return nil
}

func (t MovementType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *MovementType) Scan(value interface{}) error {
	if value == nil {
		*t = MovementTypeIn
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = MovementType(v)
	case []byte:
		*t = MovementType(string(v))
	}
	return nil
}

// Common stock movement reasons
const (
	MovementReasonSale         = "venda"
	MovementReasonCancellation = "cancelamento"
	MovementReasonRestock      = "reposicao"
	MovementReasonAdjustment   = "ajuste"
	MovementReasonLoss         = "perda"
)
