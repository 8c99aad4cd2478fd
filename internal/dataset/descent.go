package dataset

// descentLabels translates the single-letter victim descent codes used by
// the dataset into human-readable labels. The set is closed; codes outside
// it translate to "Unknown" rather than failing the run.
var descentLabels = map[string]string{
	"A": "Other Asian",
	"B": "Black",
	"C": "Chinese",
	"D": "Cambodian",
	"F": "Filipino",
	"G": "Guamanian",
	"H": "Hispanic/Latin/Mexican",
	"I": "American Indian/Alaskan Native",
	"J": "Japanese",
	"K": "Korean",
	"L": "Laotian",
	"O": "Other",
	"P": "Pacific Islander",
	"S": "Samoan",
	"U": "Hawaiian",
	"V": "Vietnamese",
	"W": "White",
	"X": "Unknown",
	"Z": "Asian Indian",
}

// DescentLabel translates a descent code to its label. Empty codes are
// treated as "X" (unknown), matching how the source data marks missing
// values; unrecognized codes also map to the unknown label.
func DescentLabel(code string) string {
	if code == "" {
		code = "X"
	}
	if label, ok := descentLabels[code]; ok {
		return label
	}
	return descentLabels["X"]
}
