package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ClientType distinguishes individual (CPF) from company (CNPJ) clients
type ClientType string

const (
	ClientTypeIndividual ClientType = "fisica"
	ClientTypeCompany    ClientType = "juridica"
)

// Valid reports whether the value is a known client type
func (t ClientType) Valid() bool {
	return t == ClientTypeIndividual || t == ClientTypeCompany
}

func (t ClientType) String() string {
	return string(t)
}

func (t ClientType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *ClientType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = ClientType(str)
	return nil
}

func (t ClientType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *ClientType) Scan(value interface{}) error {
	if value == nil {
		*t = ClientTypeIndividual
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = ClientType(v)
	case []byte:
		*t = ClientType(string(v))
	}
	return nil
}
