// Package spreadsheet converts contacts to and from a single-sheet workbook
// with one row per contact:
//
//	Full Name | Is Favorite | Method 1 Type | Method 1 Value | Method 2 Type | ...
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"rhystmorgan/abook/internal/models"
)

const (
	SheetName      = "Contacts"
	ExportFileName = "address_book.xlsx"

	ColumnFullName   = "Full Name"
	ColumnIsFavorite = "Is Favorite"

	favoriteYes = "Yes"
	favoriteNo  = "No"
)

var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Row maps column headers to cell text. Empty cells are absent.
type Row map[string]string

func MethodTypeColumn(n int) string {
	return fmt.Sprintf("Method %d Type", n)
}

func MethodValueColumn(n int) string {
	return fmt.Sprintf("Method %d Value", n)
}

func columns(contact models.Contact) []string {
	cols := []string{ColumnFullName, ColumnIsFavorite}
	for i := range contact.Methods {
		cols = append(cols, MethodTypeColumn(i+1), MethodValueColumn(i+1))
	}
	return cols
}

func ToRow(contact models.Contact) Row {
	favorite := favoriteNo
	if contact.IsFav {
		favorite = favoriteYes
	}

	row := Row{
		ColumnFullName:   contact.Name,
		ColumnIsFavorite: favorite,
	}
	for i, method := range contact.Methods {
		row[MethodTypeColumn(i+1)] = string(method.Type)
		row[MethodValueColumn(i+1)] = method.Val
	}
	return row
}

func Rows(contacts []models.Contact) []Row {
	rows := make([]Row, 0, len(contacts))
	for _, contact := range contacts {
		rows = append(rows, ToRow(contact))
	}
	return rows
}

// Header is the union of every contact's columns in first-seen order.
func Header(contacts []models.Contact) []string {
	header := []string{ColumnFullName, ColumnIsFavorite}
	seen := map[string]bool{ColumnFullName: true, ColumnIsFavorite: true}

	for _, contact := range contacts {
		for _, col := range columns(contact) {
			if !seen[col] {
				seen[col] = true
				header = append(header, col)
			}
		}
	}
	return header
}

// ParseRow rebuilds a contact from an imported row. Methods are read from
// Method 1 onwards until a type column is missing or blank; a missing value
// becomes "". The result has no id.
func ParseRow(row Row) models.Contact {
	contact := models.Contact{
		Name:    row[ColumnFullName],
		IsFav:   row[ColumnIsFavorite] == favoriteYes,
		Methods: []models.ContactMethod{},
	}

	for n := 1; ; n++ {
		methodType, ok := row[MethodTypeColumn(n)]
		if !ok || methodType == "" {
			break
		}
		contact.Methods = append(contact.Methods, models.ContactMethod{
			Type: models.MethodType(methodType),
			Val:  row[MethodValueColumn(n)],
		})
	}

	return contact
}

func CheckExtension(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return nil
	default:
		return fmt.Errorf("%w: %q (expected .xlsx or .xls)", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// Write encodes contacts as an .xlsx workbook with a single "Contacts" sheet.
func Write(w io.Writer, contacts []models.Contact) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := Header(contacts)
	headerCells := make([]interface{}, len(header))
	for i, col := range header {
		headerCells[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, contact := range contacts {
		row := ToRow(contact)
		for j, col := range header {
			value, ok := row[col]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellStr(SheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}

func WriteFile(path string, contacts []models.Contact) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Write(file, contacts); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// ReadRows returns the rows of the first sheet keyed by its header row.
// Blank rows are dropped.
func ReadRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(cells) == 0 {
		return nil, nil
	}

	header := cells[0]
	rows := make([]Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := Row{}
		for j, value := range line {
			if j >= len(header) || header[j] == "" || value == "" {
				continue
			}
			if _, exists := row[header[j]]; !exists {
				row[header[j]] = value
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func Read(r io.Reader) ([]models.Contact, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}

	contacts := make([]models.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, ParseRow(row))
	}
	return contacts, nil
}

func ReadFile(path string) ([]models.Contact, error) {
	if err := CheckExtension(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Read(file)
}
