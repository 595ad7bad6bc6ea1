package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProgramType represents the kind of travel program
type ProgramType string

const (
	ProgramTypeHajj    ProgramType = "hajj"
	ProgramTypeUmrah   ProgramType = "umrah"
	ProgramTypeTourism ProgramType = "tourism"
	ProgramTypeRamadan ProgramType = "ramadan"
)

func (t ProgramType) String() string {
	return string(t)
}

// IsValid reports whether the value is one of the known program types
func (t ProgramType) IsValid() bool {
	switch t {
	case ProgramTypeHajj, ProgramTypeUmrah, ProgramTypeTourism, ProgramTypeRamadan:
		return true
	}
	return false
}

func (t ProgramType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *ProgramType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = ProgramType(str)
	return nil
}

func (t ProgramType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *ProgramType) Scan(value interface{}) error {
	if value == nil {
		*t = ProgramTypeUmrah
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = ProgramType(v)
	case []byte:
		*t = ProgramType(string(v))
	}
	return nil
}
