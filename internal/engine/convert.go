package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// conversionRegex captures "<amount> <from> to <to>" for both currency and
// unit conversions.
var conversionRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(\w+)\s+to\s+(\w+)`)

// currencyAliases maps spoken currency names onto ISO codes.
var currencyAliases = map[string]string{
	"DOLLAR": "USD", "DOLLARS": "USD",
	"RUPEE": "INR", "RUPEES": "INR",
	"EURO": "EUR", "EUROS": "EUR",
	"POUND": "GBP", "POUNDS": "GBP",
	"YEN": "JPY",
}

// distanceFactors holds the supported length conversions as multiplication
// factors keyed by (from, to).
var distanceFactors = map[[2]string]float64{
	{"km", "miles"}:  0.621371,
	{"miles", "km"}:  1.60934,
	{"m", "feet"}:    3.28084,
	{"feet", "m"}:    0.3048,
	{"cm", "inches"}: 0.393701,
	{"inches", "cm"}: 2.54,
}

// parseConversion extracts the amount and the two unit words from a convert
// command. ok is false when the command does not carry the expected shape.
func parseConversion(command string) (amount float64, from, to string, ok bool) {
	m := conversionRegex.FindStringSubmatch(command)
	if m == nil {
		return 0, "", "", false
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", "", false
	}
	return amount, m[2], m[3], true
}

// normalizeCurrency uppercases code and resolves spoken aliases to ISO codes.
func normalizeCurrency(code string) string {
	upper := strings.ToUpper(code)
	if iso, ok := currencyAliases[upper]; ok {
		return iso
	}
	return upper
}

// convertUnit performs a local unit conversion and renders the reply text.
func convertUnit(amount float64, from, to string) string {
	from = strings.ToLower(from)
	to = strings.ToLower(to)

	celsius := from == "celsius" || from == "c"
	fahrenheit := from == "fahrenheit" || from == "f"
	switch {
	case celsius && (to == "fahrenheit" || to == "f"):
		result := amount*9/5 + 32
		return fmt.Sprintf("%s °C = %.1f °F", plainAmount(amount), result)
	case fahrenheit && (to == "celsius" || to == "c"):
		result := (amount - 32) * 5 / 9
		return fmt.Sprintf("%s °F = %.1f °C", plainAmount(amount), result)
	}

	if factor, ok := distanceFactors[[2]string{from, to}]; ok {
		return fmt.Sprintf("%s %s = %.2f %s", decimalAmount(amount), from, amount*factor, to)
	}

	return fmt.Sprintf("Conversion from %s to %s not supported.", from, to)
}

// plainAmount renders an amount without forcing a decimal point (0 stays 0).
func plainAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// decimalAmount renders an amount with at least one decimal place
// (10 becomes 10.0), the historical presentation for distances and money.
func decimalAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
