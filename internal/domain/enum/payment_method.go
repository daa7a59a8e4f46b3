package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "dinheiro"
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodCreditCard PaymentMethod = "cartao_credito"
	PaymentMethodDebitCard  PaymentMethod = "cartao_debito"
	PaymentMethodBankSlip   PaymentMethod = "boleto"
)

// Valid reports whether the value is part of the fixed payment vocabulary
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodPix, PaymentMethodCreditCard,
		PaymentMethodDebitCard, PaymentMethodBankSlip:
		return true
	}
	return false
}

// AllowsInstallments reports whether the method supports installment counts
func (m PaymentMethod) AllowsInstallments() bool {
	return m == PaymentMethodCreditCard || m == PaymentMethodBankSlip
}

func (m PaymentMethod) String() string {
	return string(m)
}

// Label returns the display name printed on receipts
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCash:
		return "Dinheiro"
	case PaymentMethodPix:
		return "Pix"
	case PaymentMethodCreditCard:
		return "Cartao de Credito"
	case PaymentMethodDebitCard:
		return "Cartao de Debito"
	case PaymentMethodBankSlip:
		return "Boleto"
	}
	return string(m)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(string(v))
	}
	return nil
}
