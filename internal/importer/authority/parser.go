package authority

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/jmulders/veridose/internal/encoding"
)

// MappingRow is one licence-substance mapping parsed from a regulator export.
// The substance name is the regulator's free text, not yet resolved to a
// canonical code.
type MappingRow struct {
	LicenceNumber     string
	RawSubstanceName  string
	EffectiveDate     time.Time
	ExpiryDate        *time.Time
	MaxPerTransaction *decimal.Decimal
	MaxPerPeriod      *decimal.Decimal
	Period            string
	Authority         string
}

// Parser reads regulator licence-substance mapping exports. It auto-detects
// which regulator format (IGJ, FAGG) is being used by matching column headers
// against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]MappingRow, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching regulator format found: expected columns for IGJ or FAGG")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts mapping rows using the matched profile. headerRowNum is
// the 0-based index of the header in the original file (for error messages).
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]MappingRow, error) {
	var mappings []MappingRow

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		number := cellValue(row, cols[p.LicenceCol])
		if number == "" {
			// Footer or blank separator row.
			continue
		}

		name := cellValue(row, cols[p.SubstanceCol])
		if name == "" {
			return nil, fmt.Errorf("row %d: missing substance name", rowNum)
		}

		effective, ok := parseDate(p, row, cols[p.EffectiveCol])
		if !ok {
			return nil, fmt.Errorf("row %d: missing or invalid effective date", rowNum)
		}

		m := MappingRow{
			LicenceNumber:    number,
			RawSubstanceName: name,
			EffectiveDate:    effective,
			Authority:        p.AuthorityName,
		}

		if idx, found := cols[p.ExpiryCol]; found && p.ExpiryCol != "" {
			if expiry, ok := parseDate(p, row, idx); ok {
				m.ExpiryDate = &expiry
			}
		}

		if idx, found := cols[p.MaxTxCol]; found && p.MaxTxCol != "" {
			m.MaxPerTransaction = parseQuantity(row, idx)
		}

		if idx, found := cols[p.MaxPeriodCol]; found && p.MaxPeriodCol != "" {
			m.MaxPerPeriod = parseQuantity(row, idx)
		}

		if idx, found := cols[p.PeriodCol]; found && p.PeriodCol != "" {
			m.Period = strings.ToLower(cellValue(row, idx))
		}

		mappings = append(mappings, m)
	}

	return mappings, nil
}

// parseDate tries to parse a date from the given cell index using the
// profile's date format. Returns false for empty cells.
func parseDate(p *Profile, row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(p.DateFormat, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// parseQuantity parses a European-formatted quantity ("1.234,56"). Empty or
// malformed cells mean no cap.
func parseQuantity(row []string, idx int) *decimal.Decimal {
	s := cellValue(row, idx)
	if s == "" {
		return nil
	}

	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return nil
	}

	return &d
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
