// Package costing holds the pure pricing and ledger arithmetic of the
// system. Nothing in here touches the database; services feed it current
// entities and persist what comes back.
package costing

import (
	"math"

	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
)

// ComputeBaseCost derives a booking's base cost from the program catalog
// and its pricing table.
//
// When the program's flat-cost override is enabled the negotiated total is
// returned as-is and the detailed computation is skipped entirely.
// Otherwise every selected city contributes
// (nightly rate × nights) / guests-per-room, guests coming from the
// package's price row for the selected hotel combination with the room
// type's standard occupancy as fallback. Cities with no matching rate, a
// missing room-type price, or a non-positive guest count contribute 0:
// operators price programs incrementally and a partially priced program
// must still produce a (possibly understated) cost.
func ComputeBaseCost(program *entity.Program, pricing *entity.PricingTable, packageName string, selection []entity.CityChoice, override *entity.ProgramCost) float64 {
	if override != nil && override.IsEnabled {
		return override.TotalCost
	}
	if pricing == nil {
		return 0
	}

	var priceRow *entity.PriceRow
	if pkg := program.Package(packageName); pkg != nil {
		priceRow = pkg.PriceRowFor(entity.CombinationKey(selectedHotels(selection)))
	}

	total := pricing.FlatFees()
	for _, choice := range selection {
		total += cityContribution(program, pricing, priceRow, choice)
	}
	return math.Round(total)
}

func cityContribution(program *entity.Program, pricing *entity.PricingTable, priceRow *entity.PriceRow, choice entity.CityChoice) float64 {
	rate := pricing.RateFor(choice.Hotel, choice.City)
	if rate == nil {
		return 0
	}

	nightly, ok := rate.PricePerNight[choice.RoomType]
	if !ok {
		return 0
	}

	nights := rate.Nights
	if nights <= 0 {
		if city := program.City(choice.City); city != nil {
			nights = city.Nights
		}
	}

	guests := guestsPerRoom(priceRow, choice.RoomType)
	if guests <= 0 || nights <= 0 {
		return 0
	}

	return nightly * float64(nights) / float64(guests)
}

// guestsPerRoom prefers the combination-specific room-type table and falls
// back to the room type's standard occupancy.
func guestsPerRoom(priceRow *entity.PriceRow, roomType enum.RoomType) int {
	if priceRow != nil {
		if guests, ok := priceRow.Guests(roomType); ok {
			return guests
		}
	}
	return roomType.DefaultGuests()
}

func selectedHotels(selection []entity.CityChoice) []string {
	hotels := make([]string, len(selection))
	for i, choice := range selection {
		hotels[i] = choice.Hotel
	}
	return hotels
}
