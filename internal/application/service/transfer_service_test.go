package service

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rihlahq/rihla-api/internal/domain/repository"
	"github.com/rihlahq/rihla-api/pkg/pagination"
	"github.com/rihlahq/rihla-api/pkg/workbook"
)

// importFile builds a workbook shaped like the export template, filled with
// the given data rows in header order.
func importFile(t *testing.T, rows [][]string) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), workbook.BookingSheet); err != nil {
		t.Fatalf("SetSheetName() error = %v", err)
	}
	for i, h := range workbook.Headers() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetCellValue(workbook.BookingSheet, cell, h); err != nil {
			t.Fatal(err)
		}
	}
	for ri, row := range rows {
		for ci, v := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(workbook.BookingSheet, cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	return f
}

func TestExportTemplate(t *testing.T) {
	env := newTestEnv(t)
	env.seedProgram(t)

	f, err := env.transfer.ExportTemplate(env.ctx)
	if err != nil {
		t.Fatalf("ExportTemplate() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(workbook.BookingSheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) == 0 || len(rows[0]) != len(workbook.Headers()) {
		t.Fatalf("unexpected header row: %v", rows)
	}

	names := make(map[string]bool)
	for _, dn := range f.GetDefinedName() {
		names[dn.Name] = true
	}
	if !names["Programs"] || !names["Umrah_Express"] {
		t.Errorf("catalog names missing from template: %v", names)
	}
}

func TestImportCreatesAndSkips(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)

	// An existing booking whose passport must dedupe against the file.
	_, err := env.bookings.CreateBooking(env.ctx, &CreateBookingInput{
		ProgramID:      program.ID,
		CustomerName:   "Existing Customer",
		PassportNumber: "P-EXISTS",
		PackageName:    "Gold",
		Selection:      env.standardSelection(),
		SellingPrice:   2500,
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	f := importFile(t, [][]string{
		{"Ahmed Ali", "P1111111", "+20100000001", "Umrah Express", "Gold", "Hilton Makkah", "Oberoi Madinah", "double", "2500"},
		{"Dup In File", "P1111111", "", "Umrah Express", "Gold", "Hilton Makkah", "Oberoi Madinah", "double", "2500"},
		{"Dup In DB", "P-EXISTS", "", "Umrah Express", "Gold", "Hilton Makkah", "Oberoi Madinah", "double", "2500"},
		{"No Passport", "", "", "Umrah Express", "Gold", "Hilton Makkah", "Oberoi Madinah", "double", "2500"},
		{"Bad Program", "P2222222", "", "Grand Tour", "Gold", "Hilton Makkah", "Oberoi Madinah", "double", "2500"},
		{"Bad Package", "P3333333", "", "Umrah Express", "Platinum", "Hilton Makkah", "Oberoi Madinah", "double", "2500"},
		{"Unpriced Combo", "P4444444", "", "Umrah Express", "Gold", "Swissotel", "Oberoi Madinah", "double", "2500"},
		{"Bad Price", "P5555555", "", "Umrah Express", "Gold", "Hilton Makkah", "Oberoi Madinah", "double", "abc"},
		{"Sara Mahmoud", "P6666666", "+20100000002", "Umrah Express", "Gold", "Hilton Makkah", "Oberoi Madinah", "Quad", "1,600"},
	})
	defer f.Close()

	summary, err := env.transfer.Import(env.ctx, f)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if summary.Imported != 2 {
		t.Errorf("Imported = %d, want 2", summary.Imported)
	}

	wantSkips := map[int]string{
		3: "duplicate passport number",
		4: "duplicate passport number",
		5: "missing passport number",
		6: "unknown program",
		7: "unknown package",
		8: "unpriced hotel combination",
		9: "invalid selling price",
	}
	if len(summary.Skipped) != len(wantSkips) {
		t.Fatalf("Skipped = %+v, want %d entries", summary.Skipped, len(wantSkips))
	}
	for _, skip := range summary.Skipped {
		if want, ok := wantSkips[skip.Row]; !ok || skip.Reason != want {
			t.Errorf("row %d skipped with %q, want %q", skip.Row, skip.Reason, want)
		}
	}

	// Imported rows go through the same cost computation as interactive
	// creation: room type and thousands separators are normalized.
	result, err := env.bookings.ListBookings(env.ctx, &repository.BookingFilterParams{
		Pagination: pagination.DefaultPagination(),
	})
	if err != nil {
		t.Fatalf("ListBookings() error = %v", err)
	}
	byPassport := make(map[string]float64)
	for _, b := range result.Items {
		byPassport[b.PassportNumber] = b.BasePrice
	}
	if len(byPassport) != 3 {
		t.Fatalf("have %d bookings, want 3 (existing + 2 imported)", len(byPassport))
	}
	if byPassport["P1111111"] != 2100 {
		t.Errorf("P1111111 base price = %v, want 2100", byPassport["P1111111"])
	}
	// Quad in Makkah (600*5/4) with no quad rate in Madinah: 800 + 750.
	if byPassport["P6666666"] != 1550 {
		t.Errorf("P6666666 base price = %v, want 1550", byPassport["P6666666"])
	}
}

func TestImportEmptySheet(t *testing.T) {
	env := newTestEnv(t)
	env.seedProgram(t)

	f := importFile(t, nil)
	defer f.Close()

	summary, err := env.transfer.Import(env.ctx, f)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if summary.Imported != 0 || len(summary.Skipped) != 0 {
		t.Errorf("summary = %+v, want empty", summary)
	}
}

func TestImportMissingColumns(t *testing.T) {
	env := newTestEnv(t)
	env.seedProgram(t)

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), workbook.BookingSheet); err != nil {
		t.Fatal(err)
	}

	if _, err := env.transfer.Import(env.ctx, f); err == nil {
		t.Fatal("expected error for a workbook without the template columns")
	}
}
