package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// BusinessCategory represents the vertical a tenant operates in
type BusinessCategory string

const (
	BusinessCategoryPharmacy   BusinessCategory = "farmacia"
	BusinessCategoryPetShop    BusinessCategory = "petshop"
	BusinessCategoryClinic     BusinessCategory = "medico"
	BusinessCategoryRestaurant BusinessCategory = "alimenticio"
	BusinessCategoryRetail     BusinessCategory = "vendas"
	BusinessCategoryDesign     BusinessCategory = "design"
	BusinessCategoryWebDev     BusinessCategory = "sites"
)

// Valid reports whether the value is a known business category
func (c BusinessCategory) Valid() bool {
	switch c {
	case BusinessCategoryPharmacy, BusinessCategoryPetShop, BusinessCategoryClinic,
		BusinessCategoryRestaurant, BusinessCategoryRetail, BusinessCategoryDesign,
		BusinessCategoryWebDev:
		return true
	}
	return false
}

func (c BusinessCategory) String() string {
	return string(c)
}

func (c BusinessCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

func (c *BusinessCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*c = BusinessCategory(str)
	return nil
}

func (c BusinessCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *BusinessCategory) Scan(value interface{}) error {
	if value == nil {
		*c = BusinessCategoryRetail
		return nil
	}
	switch v := value.(type) {
	case string:
		*c = BusinessCategory(v)
	case []byte:
		*c = BusinessCategory(string(v))
	}
	return nil
}
