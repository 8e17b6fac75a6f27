package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AnimalType is the animal a product is sold for
type AnimalType string

const (
	AnimalTypeChicken AnimalType = "chicken"
	AnimalTypePig     AnimalType = "pig"
)

func (t AnimalType) String() string {
	return string(t)
}

func (t AnimalType) IsValid() bool {
	return t == AnimalTypeChicken || t == AnimalTypePig
}

func (t AnimalType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *AnimalType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = AnimalType(str)
	return nil
}

func (t AnimalType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *AnimalType) Scan(value interface{}) error {
	if value == nil {
		*t = AnimalTypeChicken
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = AnimalType(v)
	case []byte:
		*t = AnimalType(string(v))
	}
	return nil
}
