package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// RoomType represents a hotel room occupancy class
type RoomType string

const (
	RoomTypeDouble    RoomType = "double"
	RoomTypeTriple    RoomType = "triple"
	RoomTypeQuad      RoomType = "quad"
	RoomTypeQuintuple RoomType = "quintuple"
)

func (t RoomType) String() string {
	return string(t)
}

// IsValid checks if the room type is valid
func (t RoomType) IsValid() bool {
	switch t {
	case RoomTypeDouble, RoomTypeTriple, RoomTypeQuad, RoomTypeQuintuple:
		return true
	}
	return false
}

// DefaultGuests returns the standard occupant count for a room type.
// Used when a program's price row carries no explicit guest count.
// Unknown types return 0, which voids the per-guest cost split.
func (t RoomType) DefaultGuests() int {
	switch t {
	case RoomTypeDouble:
		return 2
	case RoomTypeTriple:
		return 3
	case RoomTypeQuad:
		return 4
	case RoomTypeQuintuple:
		return 5
	}
	return 0
}

func (t RoomType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *RoomType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = RoomType(str)
	return nil
}

func (t RoomType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *RoomType) Scan(value interface{}) error {
	if value == nil {
		*t = RoomTypeDouble
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = RoomType(v)
	case []byte:
		*t = RoomType(string(v))
	}
	return nil
}
