package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Program represents a travel program: an ordered itinerary of cities and
// the packages (hotel bundles) an agency sells for it.
type Program struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TenantID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name         string           `gorm:"size:255;not null" json:"name"`
	Type         enum.ProgramType `gorm:"size:50;not null" json:"type"`
	DurationDays int              `gorm:"default:0" json:"duration_days"`
	Cities       []ProgramCity    `gorm:"type:jsonb;serializer:json" json:"cities"`
	Packages     []ProgramPackage `gorm:"type:jsonb;serializer:json" json:"packages"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Pricing *PricingTable `gorm:"foreignKey:ProgramID" json:"pricing,omitempty"`
	Cost    *ProgramCost  `gorm:"foreignKey:ProgramID" json:"cost,omitempty"`
}

// ProgramCity is one stop of the itinerary. Order in the slice is the
// itinerary order and also the order hotel names are joined into
// combination keys.
type ProgramCity struct {
	Name   string `json:"name"`
	Nights int    `json:"nights"`
}

// ProgramPackage is a sellable hotel bundle: per city the hotels the
// customer may choose from, and the priced hotel combinations.
type ProgramPackage struct {
	Name string `json:"name"`
	// Hotels maps a city name to the hotel choices offered in that city.
	Hotels map[string][]string `json:"hotels"`
	Prices []PriceRow          `json:"prices"`
}

// PriceRow describes the room types available for one specific combination
// of hotels across the program's cities.
type PriceRow struct {
	HotelCombination string             `json:"hotel_combination"`
	RoomTypes        []RoomTypeCapacity `json:"room_types"`
}

// RoomTypeCapacity pairs a room type with the guest count the nightly rate
// is split across.
type RoomTypeCapacity struct {
	Type   enum.RoomType `json:"type"`
	Guests int           `json:"guests"`
}

// BeforeCreate generates a UUID before creating a new program
func (p *Program) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Program model
func (Program) TableName() string {
	return "programs"
}

// Package returns the package with the given name, or nil.
func (p *Program) Package(name string) *ProgramPackage {
	for i := range p.Packages {
		if p.Packages[i].Name == name {
			return &p.Packages[i]
		}
	}
	return nil
}

// City returns the itinerary city with the given name, or nil.
func (p *Program) City(name string) *ProgramCity {
	for i := range p.Cities {
		if p.Cities[i].Name == name {
			return &p.Cities[i]
		}
	}
	return nil
}

// CombinationKey joins hotel names into the key price rows are stored
// under. Hotels must be given in itinerary city order.
func CombinationKey(hotels []string) string {
	return strings.Join(hotels, " - ")
}

// PriceRowFor returns the price row matching a hotel combination key, or nil.
func (pkg *ProgramPackage) PriceRowFor(combination string) *PriceRow {
	for i := range pkg.Prices {
		if pkg.Prices[i].HotelCombination == combination {
			return &pkg.Prices[i]
		}
	}
	return nil
}

// Guests returns the guest count for a room type within this price row
// and whether an explicit entry exists.
func (r *PriceRow) Guests(roomType enum.RoomType) (int, bool) {
	for _, rt := range r.RoomTypes {
		if rt.Type == roomType {
			return rt.Guests, true
		}
	}
	return 0, false
}
