package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AccountStatus tracks the lifecycle of a user account. Invited staff start
// as pending and become active on first login.
type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "active"
	AccountStatusPending AccountStatus = "pending"
	AccountStatusPaused  AccountStatus = "paused"
)

func (s AccountStatus) String() string {
	return string(s)
}

func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusPending, AccountStatusPaused:
		return true
	}
	return false
}

func (s AccountStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *AccountStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = AccountStatus(str)
	return nil
}

func (s AccountStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *AccountStatus) Scan(value interface{}) error {
	if value == nil {
		*s = AccountStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = AccountStatus(v)
	case []byte:
		*s = AccountStatus(string(v))
	}
	return nil
}
