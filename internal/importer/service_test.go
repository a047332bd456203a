package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmulders/veridose/internal/importer"
	"github.com/jmulders/veridose/internal/licence"
	"github.com/jmulders/veridose/internal/substance"
)

type stubAliases struct {
	known map[string]string
}

func (s *stubAliases) Resolve(_ context.Context, rawName string) (string, error) {
	return s.known[rawName], nil
}

type stubSubstances struct {
	codes map[string]bool
}

func (s *stubSubstances) GetBySubstanceCode(_ context.Context, code string) (*substance.Substance, error) {
	if !s.codes[code] {
		return nil, substance.ErrNotFound
	}

	return &substance.Substance{Code: code, Active: true}, nil
}

type stubLicences struct {
	byNumber map[string]*licence.Licence
}

func (s *stubLicences) GetByNumber(_ context.Context, number string) (*licence.Licence, error) {
	lic, ok := s.byNumber[number]
	if !ok {
		return nil, licence.ErrNotFound
	}

	return lic, nil
}

type stubMappings struct {
	added      []licence.MappingParams
	duplicates map[string]bool
}

func (s *stubMappings) AddMapping(_ context.Context, params licence.MappingParams) (*licence.SubstanceMapping, error) {
	if s.duplicates[params.SubstanceCode] {
		return nil, licence.ErrDuplicateMapping
	}

	s.added = append(s.added, params)

	return &licence.SubstanceMapping{ID: uuid.New(), LicenceID: params.LicenceID, SubstanceCode: params.SubstanceCode}, nil
}

const importExport = `Vergunningnummer;Stofnaam;Ingangsdatum;Einddatum;Max. per levering;Max. per periode;Periode
NL-OPW-001;Morfine;01-02-2024;;100,00;;week
NL-OPW-001;GHB;15-03-2024;;;;
NL-OPW-001;Onbekende stof;01-04-2024;;;;
NL-OPW-999;Morfine;01-05-2024;;;;
`

func TestService_Import(t *testing.T) {
	lic := &licence.Licence{ID: uuid.New(), Number: "NL-OPW-001"}

	aliases := &stubAliases{known: map[string]string{"Morfine": "MORPHINE"}}
	substances := &stubSubstances{codes: map[string]bool{"GHB": true}}
	licences := &stubLicences{byNumber: map[string]*licence.Licence{"NL-OPW-001": lic}}
	mappings := &stubMappings{duplicates: map[string]bool{"GHB": true}}

	svc := importer.NewService(aliases, substances, licences, mappings)

	summary, err := svc.Import(context.Background(), strings.NewReader(importExport))
	require.NoError(t, err)

	// Morfine resolves via the learned alias, GHB matches the catalogue code
	// directly but collides with an existing window, the other two rows
	// reference things we do not track.
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Duplicates)
	assert.Equal(t, []string{"Onbekende stof"}, summary.UnknownSubstances)
	assert.Equal(t, []string{"NL-OPW-999"}, summary.UnknownLicences)

	require.Len(t, mappings.added, 1)
	added := mappings.added[0]
	assert.Equal(t, lic.ID, added.LicenceID)
	assert.Equal(t, "MORPHINE", added.SubstanceCode)
	assert.Equal(t, licence.PeriodWeek, added.Period)
	require.NotNil(t, added.MaxPerTransaction)
	assert.Equal(t, "100", added.MaxPerTransaction.String())
}

func TestService_Import_ParseError(t *testing.T) {
	svc := importer.NewService(&stubAliases{}, &stubSubstances{}, &stubLicences{}, &stubMappings{})

	_, err := svc.Import(context.Background(), strings.NewReader("foo;bar\n1;2\n"))
	assert.Error(t, err)
}
