package exporter

// likertLexicon maps formatted 1-5 answers to their Vietnamese labels
var likertLexicon = map[string]string{
	"1": "Rất không đồng ý",
	"2": "Không đồng ý",
	"3": "Phân vân / Bình thường",
	"4": "Đồng ý",
	"5": "Rất đồng ý",
}

// LikertLabel returns the label for a formatted raw answer.
// Anything outside the 1-5 scale passes through unchanged.
func LikertLabel(raw string) string {
	if label, ok := likertLexicon[raw]; ok {
		return label
	}
	return raw
}
