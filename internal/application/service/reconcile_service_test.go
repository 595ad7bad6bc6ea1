package service

import (
	"testing"

	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
)

func TestPricingChangeSweepsBookings(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)
	booking := env.seedBooking(t, program.ID, 2500)

	if _, err := env.bookings.AddPayment(env.ctx, booking.ID, &PaymentInput{
		Amount: 1000,
		Method: enum.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	// Raise the Makkah double rate: 800 + 430*5/2 + 150*4/2 = 2175.
	_, err := env.pricing.UpsertPricing(env.ctx, &UpsertPricingInput{
		ProgramID:     program.ID,
		TicketAirline: 500,
		VisaFees:      200,
		GuideFees:     100,
		Hotels: []entity.HotelRate{
			{
				Name:   "Hilton Makkah",
				City:   "Makkah",
				Nights: 5,
				PricePerNight: map[enum.RoomType]float64{
					enum.RoomTypeDouble: 430,
				},
			},
			{
				Name:   "Oberoi Madinah",
				City:   "Madinah",
				Nights: 4,
				PricePerNight: map[enum.RoomType]float64{
					enum.RoomTypeDouble: 150,
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("UpsertPricing() error = %v", err)
	}

	reloaded, err := env.bookings.GetBooking(env.ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBooking() error = %v", err)
	}
	if reloaded.BasePrice != 2175 {
		t.Errorf("BasePrice = %v, want 2175", reloaded.BasePrice)
	}
	if reloaded.Profit != 325 {
		t.Errorf("Profit = %v, want 325", reloaded.Profit)
	}
	// Payments and selling price are untouched by the sweep.
	if reloaded.SellingPrice != 2500 || reloaded.TotalPaid != 1000 || reloaded.RemainingBalance != 1500 {
		t.Errorf("ledger = selling %v paid %v remaining %v",
			reloaded.SellingPrice, reloaded.TotalPaid, reloaded.RemainingBalance)
	}
}

func TestCatalogChangeSweepsBookings(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)
	booking := env.seedBooking(t, program.ID, 2500)

	// Drop Makkah to 3 nights. The rate rows still say 5 nights, so shrink
	// them too: 800 + 400*3/2 + 150*4/2 = 1700.
	_, err := env.programs.UpdateProgram(env.ctx, &UpdateProgramInput{
		ID: program.ID,
		Cities: []entity.ProgramCity{
			{Name: "Makkah", Nights: 3},
			{Name: "Madinah", Nights: 4},
		},
	})
	if err != nil {
		t.Fatalf("UpdateProgram() error = %v", err)
	}
	_, err = env.pricing.UpsertPricing(env.ctx, &UpsertPricingInput{
		ProgramID:     program.ID,
		TicketAirline: 500,
		VisaFees:      200,
		GuideFees:     100,
		Hotels: []entity.HotelRate{
			{
				Name:   "Hilton Makkah",
				City:   "Makkah",
				Nights: 3,
				PricePerNight: map[enum.RoomType]float64{
					enum.RoomTypeDouble: 400,
				},
			},
			{
				Name:   "Oberoi Madinah",
				City:   "Madinah",
				Nights: 4,
				PricePerNight: map[enum.RoomType]float64{
					enum.RoomTypeDouble: 150,
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("UpsertPricing() error = %v", err)
	}

	reloaded, err := env.bookings.GetBooking(env.ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBooking() error = %v", err)
	}
	if reloaded.BasePrice != 1700 {
		t.Errorf("BasePrice = %v, want 1700", reloaded.BasePrice)
	}
}

func TestFlatCostToggleRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)
	booking := env.seedBooking(t, program.ID, 6000)

	// Storing a disabled breakdown does not touch bookings.
	cost, err := env.costs.UpsertCost(env.ctx, &UpsertCostInput{
		ProgramID:     program.ID,
		FlightTickets: 2000,
		Visa:          500,
		Transport:     500,
		Hotels:        []entity.CostItem{{Name: "Hilton Makkah", Amount: 1500}},
		Custom:        []entity.CostItem{{Name: "Catering", Amount: 500}},
	})
	if err != nil {
		t.Fatalf("UpsertCost() error = %v", err)
	}
	if cost.TotalCost != 5000 {
		t.Fatalf("TotalCost = %v, want 5000", cost.TotalCost)
	}
	if cost.IsEnabled {
		t.Fatal("a new override must start disabled")
	}

	reloaded, err := env.bookings.GetBooking(env.ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBooking() error = %v", err)
	}
	if reloaded.BasePrice != 2100 {
		t.Errorf("BasePrice = %v, want 2100 while override disabled", reloaded.BasePrice)
	}

	// Enabling stamps the negotiated total on every booking.
	if _, err := env.costs.ToggleCost(env.ctx, program.ID, true); err != nil {
		t.Fatalf("ToggleCost(true) error = %v", err)
	}
	reloaded, err = env.bookings.GetBooking(env.ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBooking() error = %v", err)
	}
	if reloaded.BasePrice != 5000 {
		t.Errorf("BasePrice = %v, want 5000 while override enabled", reloaded.BasePrice)
	}
	if reloaded.Profit != 1000 {
		t.Errorf("Profit = %v, want 1000", reloaded.Profit)
	}

	// Disabling reverts to the detailed computation.
	if _, err := env.costs.ToggleCost(env.ctx, program.ID, false); err != nil {
		t.Fatalf("ToggleCost(false) error = %v", err)
	}
	reloaded, err = env.bookings.GetBooking(env.ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBooking() error = %v", err)
	}
	if reloaded.BasePrice != 2100 {
		t.Errorf("BasePrice = %v, want 2100 after disabling", reloaded.BasePrice)
	}
	if reloaded.Profit != 3900 {
		t.Errorf("Profit = %v, want 3900", reloaded.Profit)
	}
}

func TestEditingEnabledOverrideSweepsImmediately(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)
	booking := env.seedBooking(t, program.ID, 6000)

	if _, err := env.costs.UpsertCost(env.ctx, &UpsertCostInput{
		ProgramID:     program.ID,
		FlightTickets: 5000,
	}); err != nil {
		t.Fatalf("UpsertCost() error = %v", err)
	}
	if _, err := env.costs.ToggleCost(env.ctx, program.ID, true); err != nil {
		t.Fatalf("ToggleCost() error = %v", err)
	}

	// Editing the breakdown while enabled restamps bookings right away.
	if _, err := env.costs.UpsertCost(env.ctx, &UpsertCostInput{
		ProgramID:     program.ID,
		FlightTickets: 4500,
	}); err != nil {
		t.Fatalf("UpsertCost() error = %v", err)
	}

	reloaded, err := env.bookings.GetBooking(env.ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBooking() error = %v", err)
	}
	if reloaded.BasePrice != 4500 {
		t.Errorf("BasePrice = %v, want 4500", reloaded.BasePrice)
	}
}

func TestDeleteProgramBlockedByBookings(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)
	env.seedBooking(t, program.ID, 2500)

	if err := env.programs.DeleteProgram(env.ctx, program.ID); err == nil {
		t.Fatal("expected delete to be blocked while bookings exist")
	}
}
