package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayMonth(t *testing.T) {
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "19 окт.", Russian.DayMonth(day))
	assert.Equal(t, "Oct 19", English.DayMonth(day))
	assert.Equal(t, "1 мая", Russian.DayMonth(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "19 окт.", Locale("de").DayMonth(day))
}

func TestParse(t *testing.T) {
	assert.Equal(t, English, Parse(" EN "))
	assert.Equal(t, Russian, Parse("ru"))
	assert.Equal(t, Default, Parse("fr"))
}

func TestWeekday(t *testing.T) {
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "пн", Russian.Weekday(monday))
	assert.Equal(t, "Mon", English.Weekday(monday))
}

func TestFormatter_Amount(t *testing.T) {
	f := NewFormatter(English, "")
	assert.Equal(t, "Br", f.Currency())

	got := f.Amount(2380)
	assert.Contains(t, got, "2,380.00")
	assert.Contains(t, got, "Br")

	assert.Equal(t, "+"+f.Amount(5), f.Signed(5, true))
	assert.Equal(t, "-"+f.Amount(5), f.Signed(5, false))
}

func TestFormatter_CustomCurrency(t *testing.T) {
	f := NewFormatter(Russian, "BYN")
	assert.Contains(t, f.Amount(12.5), "BYN")
}
