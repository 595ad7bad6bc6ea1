package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how an advance payment was made
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCheque   PaymentMethod = "cheque"
	PaymentMethodCard     PaymentMethod = "card"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid reports whether the value is one of the known payment methods
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodCheque, PaymentMethodCard:
		return true
	}
	return false
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
		*m = PaymentMethodCash
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
