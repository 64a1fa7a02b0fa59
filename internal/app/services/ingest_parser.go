package services

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/collegepredictor/internal/app/models"
)

// Spreadsheet headers after normalisation
const (
	colCode            = "CODE"
	colCollegeNameLoc  = "COLLEGE_NAME"
	colCollegeDistrict = "COLLEGE_DISTRICT"
	colAggrMark        = "AGGRMARK"
	colCollegeName     = "COLLEGENAME"
	colBranchName      = "BRANCHNAME"
	colBranchCode      = "BRANCHCODE"
	colCollegeCode     = "COLLEGECODE"
	colCommunity       = "COMMUNITY"
	colDistrict        = "DISTRICT"
)

// SheetKind classifies a worksheet by its headers
type SheetKind string

const (
	SheetLocations SheetKind = "locations"
	SheetOfferings SheetKind = "offerings"
	SheetIgnored   SheetKind = "ignored"
)

// ParsedSheet is the content extracted from one worksheet
type ParsedSheet struct {
	Name      string
	Kind      SheetKind
	Offerings []models.Offering
	Locations []models.CollegeLocation
	// Skipped counts offering rows dropped for an invalid cutoff
	Skipped int
}

// normalizeHeader upper-cases, turns spaces into underscores and drops newlines
func normalizeHeader(h string) string {
	h = strings.ToUpper(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "\r", "")
	return strings.ReplaceAll(h, "\n", "")
}

// parseCutoff accepts finite non-negative numbers only
func parseCutoff(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}

// ParseWorkbook reads every worksheet of an xlsx document
func ParseWorkbook(r io.Reader) ([]ParsedSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var sheets []ParsedSheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		sheet := parseRows(rows)
		sheet.Name = name
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// parseRows classifies a sheet and converts its data rows.
// The first row holds the headers; trailing empty cells may be missing from a row.
func parseRows(rows [][]string) ParsedSheet {
	if len(rows) == 0 {
		return ParsedSheet{Kind: SheetIgnored}
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		if n := normalizeHeader(h); n != "" {
			if _, dup := index[n]; !dup {
				index[n] = i
			}
		}
	}
	has := func(cols ...string) bool {
		for _, c := range cols {
			if _, ok := index[c]; !ok {
				return false
			}
		}
		return true
	}

	switch {
	case has(colCode, colCollegeNameLoc, colCollegeDistrict):
		return parseLocations(rows[1:], index)
	case has(colAggrMark):
		return parseOfferings(rows[1:], index)
	default:
		return ParsedSheet{Kind: SheetIgnored}
	}
}

func cell(row []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseLocations(rows [][]string, index map[string]int) ParsedSheet {
	sheet := ParsedSheet{Kind: SheetLocations}
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		sheet.Locations = append(sheet.Locations, models.CollegeLocation{
			Code:            cell(row, index, colCode),
			CollegeName:     cell(row, index, colCollegeNameLoc),
			CollegeDistrict: cell(row, index, colCollegeDistrict),
		})
	}
	return sheet
}

func parseOfferings(rows [][]string, index map[string]int) ParsedSheet {
	sheet := ParsedSheet{Kind: SheetOfferings}
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		cutoff, ok := parseCutoff(cell(row, index, colAggrMark))
		if !ok {
			sheet.Skipped++
			continue
		}

		branchName := cell(row, index, colBranchName)
		if branchName == "" {
			branchName = cell(row, index, colBranchCode)
		}
		district := cell(row, index, colDistrict)
		if district == "" {
			district = models.UnknownDistrict
		}

		sheet.Offerings = append(sheet.Offerings, models.Offering{
			CollegeName:   cell(row, index, colCollegeName),
			BranchName:    branchName,
			BranchCode:    cell(row, index, colBranchCode),
			CollegeCode:   cell(row, index, colCollegeCode),
			Community:     cell(row, index, colCommunity),
			District:      district,
			AverageCutoff: cutoff,
		})
	}
	return sheet
}
