package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
)

// Sheet and layout constants. Header text is a compatibility contract
// between export and import: the parser maps columns by header name.
const (
	BookingSheet = "Bookings"
	listSheet    = "Lists"

	// First and last data row covered by the dropdown validations.
	firstDataRow = 2
	lastDataRow  = 101
)

// Bilingual column headers on the visible sheet.
const (
	HeaderCustomerName   = "Customer Name / اسم العميل"
	HeaderPassportNumber = "Passport Number / رقم الجواز"
	HeaderPhone          = "Phone / الهاتف"
	HeaderProgram        = "Program / البرنامج"
	HeaderPackage        = "Package / الباقة"
	HeaderRoomType       = "Room Type / نوع الغرفة"
	HeaderSellingPrice   = "Selling Price / سعر البيع"
)

// TemplateCities are the fixed city columns of the template, in itinerary
// order. Programs visiting other cities are not representable in the sheet.
var TemplateCities = []string{"Makkah", "Madinah"}

// HotelHeader returns the bilingual header of a city's hotel column.
func HotelHeader(city string) string {
	switch city {
	case "Makkah":
		return "Makkah Hotel / فندق مكة"
	case "Madinah":
		return "Madinah Hotel / فندق المدينة"
	}
	return city + " Hotel"
}

// Headers returns the visible sheet's header row in column order.
func Headers() []string {
	cols := []string{
		HeaderCustomerName,
		HeaderPassportNumber,
		HeaderPhone,
		HeaderProgram,
		HeaderPackage,
	}
	for _, city := range TemplateCities {
		cols = append(cols, HotelHeader(city))
	}
	return append(cols, HeaderRoomType, HeaderSellingPrice)
}

// BuildTemplate produces the booking import workbook: a visible sheet with
// bilingual headers and cascading dropdowns, and a hidden list sheet holding
// the validation ranges. Dropdowns chain program -> package -> per-city
// hotel -> room type via INDIRECT over defined names; every name and every
// formula goes through the same sanitizer so the chain resolves.
func BuildTemplate(programs []entity.Program) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), BookingSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(listSheet); err != nil {
		return nil, err
	}

	b := &templateBuilder{f: f, names: make(map[string]bool)}

	if err := b.writeHeaders(); err != nil {
		return nil, err
	}
	if err := b.writeLists(programs); err != nil {
		return nil, err
	}
	if err := b.addValidations(); err != nil {
		return nil, err
	}

	if err := f.SetSheetVisible(listSheet, false); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

type templateBuilder struct {
	f *excelize.File

	// nextCol is the next free column on the list sheet.
	nextCol int
	// names guards against registering the same defined name twice
	// when two catalog strings sanitize to the same identifier.
	names map[string]bool
}

func (b *templateBuilder) writeHeaders() error {
	headers := Headers()

	style, err := b.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := b.f.SetCellValue(BookingSheet, cell, h); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := b.f.SetCellStyle(BookingSheet, "A1", lastCol+"1", style); err != nil {
		return err
	}
	return b.f.SetColWidth(BookingSheet, "A", lastCol, 24)
}

// writeLists fills the hidden sheet and registers the defined names the
// dropdown formulas resolve against.
func (b *templateBuilder) writeLists(programs []entity.Program) error {
	programNames := make([]string, 0, len(programs))
	for _, p := range programs {
		programNames = append(programNames, p.Name)
	}
	if err := b.addList("Programs", programNames); err != nil {
		return err
	}

	for i := range programs {
		if err := b.writeProgramLists(&programs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (b *templateBuilder) writeProgramLists(p *entity.Program) error {
	progName := SanitizeName(p.Name)

	packageNames := make([]string, 0, len(p.Packages))
	for _, pkg := range p.Packages {
		packageNames = append(packageNames, pkg.Name)
	}
	if err := b.addList(progName, packageNames); err != nil {
		return err
	}

	for pi := range p.Packages {
		pkg := &p.Packages[pi]
		pkgName := progName + "_" + SanitizeName(pkg.Name)

		for _, city := range TemplateCities {
			hotels := pkg.Hotels[city]
			if len(hotels) == 0 {
				continue
			}
			if err := b.addList(pkgName+"_"+city, hotels); err != nil {
				return err
			}
		}

		for ri := range pkg.Prices {
			row := &pkg.Prices[ri]
			name := pkgName + "_" + combinationName(p, pkg, row.HotelCombination)
			if err := b.addList(name, roomTypeNames(row)); err != nil {
				return err
			}
		}
	}
	return nil
}

// combinationName rebuilds, from a stored combination key, the exact
// identifier fragment the room-type formula concatenates out of the hotel
// cells: one sanitized hotel per template city, empty when the package has
// no hotels there.
func combinationName(p *entity.Program, pkg *entity.ProgramPackage, combination string) string {
	hotels := strings.Split(combination, " - ")

	byCity := make(map[string]string)
	idx := 0
	for _, city := range p.Cities {
		if len(pkg.Hotels[city.Name]) == 0 {
			continue
		}
		if idx < len(hotels) {
			byCity[city.Name] = hotels[idx]
			idx++
		}
	}

	parts := make([]string, 0, len(TemplateCities))
	for _, city := range TemplateCities {
		if hotel, ok := byCity[city]; ok {
			parts = append(parts, SanitizeName(hotel))
		} else {
			parts = append(parts, "")
		}
	}
	return strings.Join(parts, "_")
}

func roomTypeNames(row *entity.PriceRow) []string {
	if len(row.RoomTypes) == 0 {
		return []string{
			enum.RoomTypeDouble.String(),
			enum.RoomTypeTriple.String(),
			enum.RoomTypeQuad.String(),
			enum.RoomTypeQuintuple.String(),
		}
	}
	names := make([]string, 0, len(row.RoomTypes))
	for _, rt := range row.RoomTypes {
		names = append(names, rt.Type.String())
	}
	return names
}

// addList writes values into the next free column of the hidden sheet and
// registers a workbook-scoped defined name over them.
func (b *templateBuilder) addList(name string, values []string) error {
	if len(values) == 0 || b.names[name] {
		return nil
	}
	b.names[name] = true
	b.nextCol++

	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(b.nextCol, i+1)
		if err != nil {
			return err
		}
		if err := b.f.SetCellValue(listSheet, cell, v); err != nil {
			return err
		}
	}

	col, err := excelize.ColumnNumberToName(b.nextCol)
	if err != nil {
		return err
	}
	return b.f.SetDefinedName(&excelize.DefinedName{
		Name:     name,
		RefersTo: fmt.Sprintf("%s!$%s$1:$%s$%d", listSheet, col, col, len(values)),
		Scope:    "Workbook",
	})
}

// addValidations wires the cascading dropdowns onto the data rows. Cell
// references are relative to the first data row and shift per row.
func (b *templateBuilder) addValidations() error {
	headers := Headers()
	colOf := func(header string) string {
		for i, h := range headers {
			if h == header {
				name, _ := excelize.ColumnNumberToName(i + 1)
				return name
			}
		}
		return ""
	}

	progCol := colOf(HeaderProgram)
	pkgCol := colOf(HeaderPackage)

	progRef := FormulaSanitize(fmt.Sprintf("$%s%d", progCol, firstDataRow))
	pkgRef := FormulaSanitize(fmt.Sprintf("$%s%d", pkgCol, firstDataRow))

	if err := b.addDropdown(progCol, "Programs"); err != nil {
		return err
	}
	if err := b.addDropdown(pkgCol, fmt.Sprintf("INDIRECT(%s)", progRef)); err != nil {
		return err
	}

	hotelRefs := make([]string, 0, len(TemplateCities))
	for _, city := range TemplateCities {
		col := colOf(HotelHeader(city))
		formula := fmt.Sprintf(`INDIRECT(%s&"_"&%s&"_%s")`, progRef, pkgRef, city)
		if err := b.addDropdown(col, formula); err != nil {
			return err
		}
		hotelRefs = append(hotelRefs, FormulaSanitize(fmt.Sprintf("$%s%d", col, firstDataRow)))
	}

	roomFormula := fmt.Sprintf(`INDIRECT(%s&"_"&%s&"_"&%s)`,
		progRef, pkgRef, strings.Join(hotelRefs, `&"_"&`))
	return b.addDropdown(colOf(HeaderRoomType), roomFormula)
}

func (b *templateBuilder) addDropdown(col, formula string) error {
	dv := excelize.NewDataValidation(true)
	dv.Sqref = fmt.Sprintf("%s%d:%s%d", col, firstDataRow, col, lastDataRow)
	dv.SetSqrefDropList(formula)
	return b.f.AddDataValidation(BookingSheet, dv)
}
