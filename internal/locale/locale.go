// Package locale formats dates and amounts for display.
package locale

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale selects the language used for labels and number formatting.
type Locale string

// Supported locales.
const (
	Russian Locale = "ru"
	English Locale = "en"
)

// Default is used when no locale is configured.
const Default = Russian

// DefaultCurrency is the suffix appended to formatted amounts.
const DefaultCurrency = "Br"

// Abbreviated month names. Russian uses the genitive forms that appear
// after a day number.
var shortMonths = map[Locale][12]string{
	Russian: {"янв.", "февр.", "мар.", "апр.", "мая", "июн.", "июл.", "авг.", "сент.", "окт.", "нояб.", "дек."},
	English: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

var shortWeekdays = map[Locale][7]string{
	Russian: {"вс", "пн", "вт", "ср", "чт", "пт", "сб"},
	English: {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}

// Parse converts s into a Locale, falling back to Default.
func Parse(s string) Locale {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English
	case Russian:
		return Russian
	}
	return Default
}

// Tag returns the language tag of the locale.
func (l Locale) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.Russian
}

// DayMonth formats t as a short day/month label such as "19 окт." or
// "Oct 19".
func (l Locale) DayMonth(t time.Time) string {
	months, ok := shortMonths[l]
	if !ok {
		months = shortMonths[Default]
		l = Default
	}
	month := months[t.Month()-1]
	if l == English {
		return fmt.Sprintf("%s %d", month, t.Day())
	}
	return fmt.Sprintf("%d %s", t.Day(), month)
}

// Weekday returns the short weekday name of t.
func (l Locale) Weekday(t time.Time) string {
	days, ok := shortWeekdays[l]
	if !ok {
		days = shortWeekdays[Default]
	}
	return days[t.Weekday()]
}

// Formatter renders amounts with locale digit grouping and a currency suffix.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter creates a formatter for the locale. An empty currency
// uses DefaultCurrency.
func NewFormatter(l Locale, currency string) *Formatter {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Formatter{
		printer:  message.NewPrinter(l.Tag()),
		currency: currency,
	}
}

// Amount formats v with two decimals and the currency suffix.
func (f *Formatter) Amount(v float64) string {
	return f.printer.Sprintf("%.2f", v) + " " + f.currency
}

// Signed formats v with an explicit sign for income and expense rows.
func (f *Formatter) Signed(v float64, income bool) string {
	if income {
		return "+" + f.Amount(v)
	}
	return "-" + f.Amount(v)
}

// Currency returns the configured suffix.
func (f *Formatter) Currency() string {
	return f.currency
}
