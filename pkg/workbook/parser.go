package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one data row of the booking sheet, untouched beyond trimming.
// Resolution against the catalog and price parsing happen upstream.
type Row struct {
	// Line is the 1-based worksheet row number, for skip reporting.
	Line           int
	CustomerName   string
	PassportNumber string
	Phone          string
	Program        string
	Package        string
	// Hotels maps a template city to the hotel cell for that city.
	Hotels       map[string]string
	RoomType     string
	SellingPrice string
}

// ParseRows reads the booking sheet of an uploaded workbook. Columns are
// located by header name, not position. Rows that are entirely empty are
// dropped; everything else is returned for the caller to validate.
func ParseRows(f *excelize.File) ([]Row, error) {
	rows, err := f.GetRows(BookingSheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", BookingSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", BookingSheet)
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}
	for _, required := range Headers() {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	cell := func(row []string, header string) string {
		i := index[header]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]Row, 0, len(rows)-1)
	for n, raw := range rows[1:] {
		r := Row{
			Line:           n + 2,
			CustomerName:   cell(raw, HeaderCustomerName),
			PassportNumber: cell(raw, HeaderPassportNumber),
			Phone:          cell(raw, HeaderPhone),
			Program:        cell(raw, HeaderProgram),
			Package:        cell(raw, HeaderPackage),
			Hotels:         make(map[string]string, len(TemplateCities)),
			RoomType:       cell(raw, HeaderRoomType),
			SellingPrice:   cell(raw, HeaderSellingPrice),
		}
		for _, city := range TemplateCities {
			r.Hotels[city] = cell(raw, HotelHeader(city))
		}
		if r.isEmpty() {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (r Row) isEmpty() bool {
	if r.CustomerName != "" || r.PassportNumber != "" || r.Phone != "" ||
		r.Program != "" || r.Package != "" || r.RoomType != "" || r.SellingPrice != "" {
		return false
	}
	for _, h := range r.Hotels {
		if h != "" {
			return false
		}
	}
	return true
}
