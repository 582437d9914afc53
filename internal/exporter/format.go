package exporter

import (
	"math"
	"strconv"

	"surveyexport/internal/dataprocessing"
)

// formatInt formats a count for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatStat formats a summary statistic; statistics of an unscored family are empty
func formatStat(f float64, scored int) string {
	if scored == 0 {
		return ""
	}
	return dataprocessing.FormatFloat(f)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
