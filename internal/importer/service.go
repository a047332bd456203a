package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jmulders/veridose/internal/importer/authority"
	"github.com/jmulders/veridose/internal/licence"
	"github.com/jmulders/veridose/internal/substance"
)

// Parser turns a regulator export into mapping rows.
type Parser interface {
	Parse(r io.Reader) ([]authority.MappingRow, error)
}

// AliasResolver maps regulator substance names to canonical codes.
// Implemented by matching.Service.
type AliasResolver interface {
	Resolve(ctx context.Context, rawName string) (string, error)
}

// SubstanceLookup verifies substance codes against the catalogue.
type SubstanceLookup interface {
	GetBySubstanceCode(ctx context.Context, code string) (*substance.Substance, error)
}

// LicenceLookup finds licences by regulator number.
type LicenceLookup interface {
	GetByNumber(ctx context.Context, number string) (*licence.Licence, error)
}

// MappingWriter attaches substance windows to licences. Implemented by
// licence.CoverageService.
type MappingWriter interface {
	AddMapping(ctx context.Context, params licence.MappingParams) (*licence.SubstanceMapping, error)
}

// Summary reports what one import run did. Skipped rows are reported, not
// fatal: regulator files routinely contain substances and licences we do not
// track.
type Summary struct {
	Imported          int
	Duplicates        int
	UnknownSubstances []string
	UnknownLicences   []string
}

type Service struct {
	parser     Parser
	aliases    AliasResolver
	substances SubstanceLookup
	licences   LicenceLookup
	mappings   MappingWriter
}

func NewService(aliases AliasResolver, substances SubstanceLookup, licences LicenceLookup, mappings MappingWriter) *Service {
	return &Service{
		parser:     authority.NewParser(),
		aliases:    aliases,
		substances: substances,
		licences:   licences,
		mappings:   mappings,
	}
}

// Import parses a regulator licence-substance export and creates the
// mappings it describes. Rows referencing unknown substances or licences are
// skipped and listed in the summary; duplicate mappings are counted.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Summary, error) {
	rows, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}

	for _, row := range rows {
		code, err := s.resolveSubstance(ctx, row.RawSubstanceName)
		if err != nil {
			return nil, err
		}

		if code == "" {
			summary.UnknownSubstances = append(summary.UnknownSubstances, row.RawSubstanceName)
			continue
		}

		lic, err := s.licences.GetByNumber(ctx, row.LicenceNumber)
		if err != nil {
			if errors.Is(err, licence.ErrNotFound) {
				summary.UnknownLicences = append(summary.UnknownLicences, row.LicenceNumber)
				continue
			}

			return nil, fmt.Errorf("looking up licence %s: %w", row.LicenceNumber, err)
		}

		_, err = s.mappings.AddMapping(ctx, licence.MappingParams{
			LicenceID:         lic.ID,
			SubstanceCode:     code,
			EffectiveDate:     row.EffectiveDate,
			ExpiryDate:        row.ExpiryDate,
			MaxPerTransaction: row.MaxPerTransaction,
			MaxPerPeriod:      row.MaxPerPeriod,
			Period:            periodType(row.Period),
		})
		if err != nil {
			if errors.Is(err, licence.ErrDuplicateMapping) {
				summary.Duplicates++
				continue
			}

			return nil, fmt.Errorf("mapping %s to licence %s: %w", code, row.LicenceNumber, err)
		}

		summary.Imported++
	}

	return summary, nil
}

// resolveSubstance tries learned aliases first, then treats the raw name as a
// code in case the regulator already uses canonical codes.
func (s *Service) resolveSubstance(ctx context.Context, rawName string) (string, error) {
	code, err := s.aliases.Resolve(ctx, rawName)
	if err != nil {
		return "", fmt.Errorf("resolving alias for %q: %w", rawName, err)
	}

	if code != "" {
		return code, nil
	}

	sub, err := s.substances.GetBySubstanceCode(ctx, rawName)
	if err != nil {
		if errors.Is(err, substance.ErrNotFound) {
			return "", nil
		}

		return "", fmt.Errorf("looking up substance %q: %w", rawName, err)
	}

	return sub.Code, nil
}

// periodType maps regulator period labels onto cap periods, defaulting to
// month, the IGJ convention.
func periodType(label string) licence.PeriodType {
	switch label {
	case "dag", "jour", "day":
		return licence.PeriodDay
	case "week", "semaine":
		return licence.PeriodWeek
	case "":
		return ""
	}

	return licence.PeriodMonth
}
