package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yildizm/ChartShelf/internal/dataset"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// formatFloat trims trailing zeros: 4.50 -> 4.5, 8.00 -> 8.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// numericCells joins min, max, mean and stddev, or dashes for columns
// that are not quantitative.
func numericCells(c dataset.Summary, sep string) string {
	if c.Type != "quantitative" || c.Count == 0 {
		return strings.Join([]string{"-", "-", "-", "-"}, sep)
	}
	return strings.Join([]string{
		formatFloat(c.Min), formatFloat(c.Max),
		fmt.Sprintf("%.2f", c.Mean), fmt.Sprintf("%.2f", c.StdDev),
	}, sep)
}

// completeness is the share of non-missing cells.
func completeness(c dataset.Summary) float64 {
	total := c.Count + c.Missing
	if total == 0 {
		return 0
	}
	return float64(c.Count) / float64(total)
}
