package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CouponType represents how a coupon's value is interpreted
type CouponType string

const (
	// CouponTypePercentage discounts a percentage of the subtotal
	CouponTypePercentage CouponType = "percentage"
	// CouponTypeFixed discounts a fixed amount in cents
	CouponTypeFixed CouponType = "fixed"
)

// Valid reports whether the value is a known coupon type
func (t CouponType) Valid() bool {
	return t == CouponTypePercentage || t == CouponTypeFixed
}

func (t CouponType) String() string {
	return string(t)
}

func (t CouponType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *CouponType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = CouponType(str)
	return nil
}

func (t CouponType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *CouponType) Scan(value interface{}) error {
	if value == nil {
		*t = CouponTypePercentage
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = CouponType(v)
	case []byte:
		*t = CouponType(string(v))
	}
	return nil
}
