package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProductCategory splits the catalog into bulk feeds and packaged supplements.
// The two categories track stock differently, see entity.Product.
type ProductCategory string

const (
	CategoryFeeds       ProductCategory = "feeds"
	CategorySupplements ProductCategory = "supplements"
)

func (c ProductCategory) String() string {
	return string(c)
}

func (c ProductCategory) IsValid() bool {
	return c == CategoryFeeds || c == CategorySupplements
}

func (c ProductCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

func (c *ProductCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*c = ProductCategory(str)
	return nil
}

func (c ProductCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *ProductCategory) Scan(value interface{}) error {
	if value == nil {
		*c = CategoryFeeds
		return nil
	}
	switch v := value.(type) {
	case string:
		*c = ProductCategory(v)
	case []byte:
		*c = ProductCategory(string(v))
	}
	return nil
}
