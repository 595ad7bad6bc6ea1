package workbook

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Umrah Express", "Umrah_Express"},
		{"Hilton - Makkah", "Hilton___Makkah"},
		{"A&B (Deluxe)", "A_B__Deluxe_"},
		{"  trimmed  ", "trimmed"},
		{"", "L_"},
		{"2024 Season", "L_2024_Season"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// The SUBSTITUTE chain must replace exactly the characters SanitizeName
// replaces, or registered names and dropdown formulas drift apart.
func TestFormulaSanitizeMirrorsSanitizeName(t *testing.T) {
	formula := FormulaSanitize("$D$2")
	for _, ch := range []string{" ", "/", "-", "&", "(", ")"} {
		if !strings.Contains(formula, `"`+ch+`"`) {
			t.Errorf("FormulaSanitize missing SUBSTITUTE for %q: %s", ch, formula)
		}
	}
	if !strings.Contains(formula, "$D$2") {
		t.Errorf("FormulaSanitize lost the cell reference: %s", formula)
	}
}

func templatePrograms() []entity.Program {
	return []entity.Program{
		{
			Name: "Umrah Express",
			Type: enum.ProgramTypeUmrah,
			Cities: []entity.ProgramCity{
				{Name: "Makkah", Nights: 5},
				{Name: "Madinah", Nights: 4},
			},
			Packages: []entity.ProgramPackage{
				{
					Name: "Gold",
					Hotels: map[string][]string{
						"Makkah":  {"Hilton Makkah", "Swissotel"},
						"Madinah": {"Oberoi Madinah"},
					},
					Prices: []entity.PriceRow{
						{
							HotelCombination: "Hilton Makkah - Oberoi Madinah",
							RoomTypes: []entity.RoomTypeCapacity{
								{Type: enum.RoomTypeDouble, Guests: 2},
							},
						},
					},
				},
			},
		},
	}
}

func TestBuildTemplateHeaders(t *testing.T) {
	f, err := BuildTemplate(templatePrograms())
	if err != nil {
		t.Fatalf("BuildTemplate() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(BookingSheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("template has no header row")
	}
	want := Headers()
	if len(rows[0]) != len(want) {
		t.Fatalf("header row has %d columns, want %d", len(rows[0]), len(want))
	}
	for i, h := range want {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
}

func TestBuildTemplateDefinedNames(t *testing.T) {
	f, err := BuildTemplate(templatePrograms())
	if err != nil {
		t.Fatalf("BuildTemplate() error = %v", err)
	}
	defer f.Close()

	names := make(map[string]bool)
	for _, dn := range f.GetDefinedName() {
		names[dn.Name] = true
	}

	for _, want := range []string{
		"Programs",
		"Umrah_Express",
		"Umrah_Express_Gold_Makkah",
		"Umrah_Express_Gold_Madinah",
		"Umrah_Express_Gold_Hilton_Makkah_Oberoi_Madinah",
	} {
		if !names[want] {
			t.Errorf("defined name %q missing; have %v", want, names)
		}
	}
}

func TestBuildTemplateHidesListSheet(t *testing.T) {
	f, err := BuildTemplate(templatePrograms())
	if err != nil {
		t.Fatalf("BuildTemplate() error = %v", err)
	}
	defer f.Close()

	visible, err := f.GetSheetVisible(listSheet)
	if err != nil {
		t.Fatalf("GetSheetVisible() error = %v", err)
	}
	if visible {
		t.Error("list sheet must be hidden")
	}
}

func TestParseRowsRoundTrip(t *testing.T) {
	f, err := BuildTemplate(templatePrograms())
	if err != nil {
		t.Fatalf("BuildTemplate() error = %v", err)
	}
	defer f.Close()

	set := func(col string, row int, value string) {
		if err := f.SetCellValue(BookingSheet, col+string(rune('0'+row)), value); err != nil {
			t.Fatalf("SetCellValue() error = %v", err)
		}
	}
	set("A", 2, "Ahmed Ali")
	set("B", 2, "P1234567")
	set("C", 2, "+20100000000")
	set("D", 2, "Umrah Express")
	set("E", 2, "Gold")
	set("F", 2, "Hilton Makkah")
	set("G", 2, "Oberoi Madinah")
	set("H", 2, "double")
	set("I", 2, "2500")

	// Row 3 stays empty, row 4 is partial.
	set("A", 4, "Sara Mahmoud")

	rows, err := ParseRows(f)
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2 (empty row dropped)", len(rows))
	}

	first := rows[0]
	if first.Line != 2 {
		t.Errorf("Line = %d, want 2", first.Line)
	}
	if first.CustomerName != "Ahmed Ali" || first.PassportNumber != "P1234567" {
		t.Errorf("unexpected identity fields: %+v", first)
	}
	if first.Program != "Umrah Express" || first.Package != "Gold" {
		t.Errorf("unexpected catalog fields: %+v", first)
	}
	if first.Hotels["Makkah"] != "Hilton Makkah" || first.Hotels["Madinah"] != "Oberoi Madinah" {
		t.Errorf("unexpected hotels: %v", first.Hotels)
	}
	if first.RoomType != "double" || first.SellingPrice != "2500" {
		t.Errorf("unexpected room/price: %+v", first)
	}

	if rows[1].Line != 4 || rows[1].CustomerName != "Sara Mahmoud" {
		t.Errorf("partial row mishandled: %+v", rows[1])
	}
}

func TestParseRowsMissingColumn(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), BookingSheet); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(BookingSheet, "A1", HeaderCustomerName); err != nil {
		t.Fatal(err)
	}

	if _, err := ParseRows(f); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestParseRowsWrongSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := ParseRows(f); err == nil {
		t.Fatal("expected error when booking sheet is absent")
	}
}
