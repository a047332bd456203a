package authority

// Profile describes the column layout and conventions of one regulator's
// licence-substance mapping export. Adding a new regulator is just adding a
// new Profile to the profiles slice.
type Profile struct {
	Name          string
	Comma         rune
	DateFormat    string
	LicenceCol    string
	SubstanceCol  string
	EffectiveCol  string
	ExpiryCol     string // optional
	MaxTxCol      string // optional
	MaxPeriodCol  string // optional
	PeriodCol     string // optional
	AuthorityName string
}

// requiredCols returns the column names that must be present for this profile
// to match.
func (p Profile) requiredCols() []string {
	return []string{p.LicenceCol, p.SubstanceCol, p.EffectiveCol}
}

// profiles is the ordered list of regulator export formats to try during
// auto-detection. More specific profiles should come first to avoid false
// matches.
var profiles = []Profile{
	{
		Name:          "igj",
		Comma:         ';',
		DateFormat:    "02-01-2006",
		LicenceCol:    "Vergunningnummer",
		SubstanceCol:  "Stofnaam",
		EffectiveCol:  "Ingangsdatum",
		ExpiryCol:     "Einddatum",
		MaxTxCol:      "Max. per levering",
		MaxPeriodCol:  "Max. per periode",
		PeriodCol:     "Periode",
		AuthorityName: "IGJ",
	},
	{
		Name:          "fagg",
		Comma:         ';',
		DateFormat:    "02/01/2006",
		LicenceCol:    "Numéro de licence",
		SubstanceCol:  "Substance",
		EffectiveCol:  "Date d'effet",
		ExpiryCol:     "Date d'expiration",
		AuthorityName: "FAGG",
	},
}
