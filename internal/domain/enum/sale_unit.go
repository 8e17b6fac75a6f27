package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleUnit is the unit a quantity was sold in
type SaleUnit string

const (
	UnitSack     SaleUnit = "sack"
	UnitKilo     SaleUnit = "kilo"
	UnitHalfKilo SaleUnit = "half_kilo"
	UnitPiece    SaleUnit = "piece"
)

func (u SaleUnit) String() string {
	return string(u)
}

func (u SaleUnit) IsValid() bool {
	switch u {
	case UnitSack, UnitKilo, UnitHalfKilo, UnitPiece:
		return true
	}
	return false
}

func (u SaleUnit) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(u))
}

func (u *SaleUnit) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*u = SaleUnit(str)
	return nil
}

func (u SaleUnit) Value() (driver.Value, error) {
	return string(u), nil
}

func (u *SaleUnit) Scan(value interface{}) error {
	if value == nil {
		*u = UnitPiece
		return nil
	}
	switch v := value.(type) {
	case string:
		*u = SaleUnit(v)
	case []byte:
		*u = SaleUnit(string(v))
	}
	return nil
}
