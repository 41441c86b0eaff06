package locale

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Unspecified is rendered wherever a date, range, or clock value is
// missing or unparseable.
const Unspecified = "غير محدد"

const currencySuffix = "ج.م"

var arabicPrinter = message.NewPrinter(language.Arabic)

// ToArabicDigits maps ASCII digits to Arabic-Indic glyphs one-to-one and
// passes every other rune through. It is a display transform only and must
// never run before arithmetic.
func ToArabicDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return '٠' + (r - '0')
		}
		return r
	}, s)
}

// FormatCurrency renders a monetary amount with Arabic-locale grouping and
// the currency suffix. A missing or NaN amount renders as the fixed zero
// string rather than an error.
func FormatCurrency(amount *float64) string {
	if amount == nil || math.IsNaN(*amount) {
		return "٠ " + currencySuffix
	}
	return arabicPrinter.Sprintf("%v %s", number.Decimal(*amount, number.MaxFractionDigits(2)), currencySuffix)
}

// FormatCurrencyValue is FormatCurrency for amounts already defaulted to a
// concrete value.
func FormatCurrencyValue(amount float64) string {
	return FormatCurrency(&amount)
}

// FormatDateRange labels a report period. Both bounds must be present;
// otherwise the unspecified sentinel is returned.
func FormatDateRange(start, end *time.Time) string {
	if start == nil || end == nil {
		return Unspecified
	}
	return ToArabicDigits(start.Format("2006-01-02") + " إلى " + end.Format("2006-01-02"))
}

// FormatClockTime parses an hour/minute pair out of raw — either a bare
// "HH:mm[:ss]" or a full "yyyy-MM-ddTHH:mm[:ss]" — adds offsetHours, and
// renders a 12-hour Arabic clock. The offset is applied through time.Time
// arithmetic so crossing midnight rolls the calendar day, including month
// and year boundaries. When raw carried a date the rolled date is rendered
// ahead of the clock; seconds are always dropped. Unparseable input yields
// the unspecified sentinel.
func FormatClockTime(raw string, offsetHours int) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Unspecified
	}

	parsed, hasDate, ok := parseClock(raw)
	if !ok {
		return Unspecified
	}

	shifted := parsed.Add(time.Duration(offsetHours) * time.Hour)

	hour := shifted.Hour()
	marker := "ص"
	if hour >= 12 {
		marker = "م"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	clock := ToArabicDigits(fmt.Sprintf("%02d:%02d", hour12, shifted.Minute())) + " " + marker
	if hasDate {
		return ToArabicDigits(shifted.Format("2006-01-02")) + " " + clock
	}
	return clock
}

func parseClock(raw string) (parsed time.Time, hasDate bool, ok bool) {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true, true
		}
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			// anchor to a fixed day; only the clock is displayed
			return time.Date(2000, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC), false, true
		}
	}
	return time.Time{}, false, false
}
