// Package importer reads part lists from CSV and Excel files. It supports
// automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition in English and Portuguese.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cutlistpro/cutlist/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Parts    []model.Part
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name      int
	Length    int
	Width     int
	Thickness int
	Quantity  int
	Material  int
	Rotatable int
}

// headerAliases maps canonical column names to their accepted aliases
// (all lowercase). Portuguese aliases match the part lists produced by
// the original CutList Pro planner.
var headerAliases = map[string][]string{
	"name":      {"name", "label", "part", "part name", "description", "piece", "item", "nome", "peca", "peça"},
	"length":    {"length", "len", "l", "x", "comprimento"},
	"width":     {"width", "w", "y", "largura"},
	"thickness": {"thickness", "thick", "t", "espessura"},
	"quantity":  {"quantity", "qty", "count", "num", "amount", "pcs", "pieces", "quantidade", "qtd"},
	"material":  {"material", "mat", "material ref", "stock"},
	"rotatable": {"rotatable", "rotate", "rotation", "grain", "grain direction", "rotacao", "rotação"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter by trying
// comma, semicolon, tab, and pipe. The delimiter producing the most
// consistent multi-column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// performs case-insensitive matching against the known aliases. Returns
// the mapping and true if a header was detected, or a positional mapping
// (name, length, width, thickness, quantity) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name:      -1,
		Length:    -1,
		Width:     -1,
		Thickness: -1,
		Quantity:  -1,
		Material:  -1,
		Rotatable: -1,
	}

	assign := func(role string, idx int) {
		switch role {
		case "name":
			if mapping.Name == -1 {
				mapping.Name = idx
			}
		case "length":
			if mapping.Length == -1 {
				mapping.Length = idx
			}
		case "width":
			if mapping.Width == -1 {
				mapping.Width = idx
			}
		case "thickness":
			if mapping.Thickness == -1 {
				mapping.Thickness = idx
			}
		case "quantity":
			if mapping.Quantity == -1 {
				mapping.Quantity = idx
			}
		case "material":
			if mapping.Material == -1 {
				mapping.Material = idx
			}
		case "rotatable":
			if mapping.Rotatable == -1 {
				mapping.Rotatable = idx
			}
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					assign(role, i)
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Name:      0,
			Length:    1,
			Width:     2,
			Thickness: 3,
			Quantity:  4,
			Material:  -1,
			Rotatable: -1,
		}, false
	}

	return mapping, true
}

// parseRotatable interprets a rotation/grain cell. Part lists flag
// grain-locked pieces either way around, so both vocabularies are
// accepted. The boolean result is the Rotatable value; ok is false for
// unrecognized input.
func parseRotatable(s string) (rotatable, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yes", "y", "true", "1", "free", "none", "-":
		return true, true
	case "no", "n", "false", "0", "fixed", "locked", "length", "width":
		return false, true
	default:
		return true, false
	}
}

// getCell safely retrieves a trimmed cell value by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Part from a row using the given column mapping.
// Returns the part, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, partCount int) (model.Part, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Part %d", partCount+1)
	}

	length, errMsg := parseDimension(row, mapping.Length, rowLabel, "length")
	if errMsg != "" {
		return model.Part{}, errMsg, ""
	}
	width, errMsg := parseDimension(row, mapping.Width, rowLabel, "width")
	if errMsg != "" {
		return model.Part{}, errMsg, ""
	}

	var warning string

	thickness := model.DefaultSettings().Thickness
	if thicknessStr := getCell(row, mapping.Thickness); thicknessStr != "" {
		t, err := strconv.ParseFloat(thicknessStr, 64)
		if err != nil {
			return model.Part{}, fmt.Sprintf("%s: Invalid thickness '%s'", rowLabel, thicknessStr), ""
		}
		thickness = t
	} else if mapping.Thickness >= 0 {
		warning = fmt.Sprintf("%s: Missing thickness, using %.0fmm", rowLabel, thickness)
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return model.Part{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), ""
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.Part{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
	}

	if length <= 0 || width <= 0 || thickness <= 0 || qty <= 0 {
		return model.Part{}, fmt.Sprintf("%s: Length, width, thickness, and quantity must be positive", rowLabel), ""
	}

	part := model.NewPart(name, length, width, thickness, qty)
	part.MaterialRef = getCell(row, mapping.Material)

	if rotStr := getCell(row, mapping.Rotatable); rotStr != "" {
		rotatable, ok := parseRotatable(rotStr)
		if ok {
			part.Rotatable = rotatable
		} else {
			warning = fmt.Sprintf("%s: Unknown rotation flag '%s', allowing rotation", rowLabel, rotStr)
		}
	}

	return part, "", warning
}

func parseDimension(row []string, idx int, rowLabel, field string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, field)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, s)
	}
	return v, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports parts from a CSV file. It automatically detects the
// delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports parts from a CSV reader with a known
// delimiter. Useful for testing or pre-detected input.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports parts from an Excel (.xlsx) file. Reads the first
// sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile picks the importer by file extension.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "Quantity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			// First column after the name is not numeric: treat the row as
			// an unrecognized header, keep the positional mapping.
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		part, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Parts))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Parts = append(result.Parts, part)
	}

	return result
}
