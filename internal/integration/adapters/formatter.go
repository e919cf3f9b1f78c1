package adapters

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goodsign/monday"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/finance-tracker/zfinance/internal/application/adapter"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// SupportedCurrencies lists the currencies the formatter accepts.
var SupportedCurrencies = []string{"EUR", "USD", "GBP"}

// ErrNoLocale is returned when formatting is attempted without a configured locale.
var ErrNoLocale = errors.New("no locale configured: set LOCALE")

// Languages that write the currency symbol after the amount.
var symbolAfterAmount = []language.Base{
	language.MustParseBase("fr"),
	language.MustParseBase("de"),
	language.MustParseBase("es"),
	language.MustParseBase("it"),
	language.MustParseBase("pt"),
	language.MustParseBase("pl"),
	language.MustParseBase("cs"),
	language.MustParseBase("sv"),
	language.MustParseBase("fi"),
	language.MustParseBase("da"),
	language.MustParseBase("nb"),
}

type formatter struct {
	tag      language.Tag
	unit     currency.Unit
	code     string
	symbol   string
	printer  *message.Printer
	calendar monday.Locale
	monthDay bool
}

// NewFormatter creates an AmountFormatter for the given BCP 47 locale and ISO currency code.
func NewFormatter(locale, currencyCode string) (adapter.AmountFormatter, error) {
	if strings.TrimSpace(locale) == "" {
		return nil, ErrNoLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	code := strings.ToUpper(currencyCode)
	if !slices.Contains(SupportedCurrencies, code) {
		return nil, fmt.Errorf("unsupported currency %q, expected one of %s", currencyCode, strings.Join(SupportedCurrencies, ", "))
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", currencyCode, err)
	}

	region, _ := tag.Region()
	printer := message.NewPrinter(tag)
	return &formatter{
		tag:      tag,
		unit:     unit,
		code:     code,
		symbol:   printer.Sprint(currency.Symbol(unit)),
		printer:  printer,
		calendar: calendarLocale(tag),
		monthDay: region.String() == "US",
	}, nil
}

func (f *formatter) Currency() string {
	return f.code
}

// FormatAmount renders the amount with the currency's standard number of decimals, the
// locale's separators and the currency symbol on the side the locale expects.
func (f *formatter) FormatAmount(amount decimal.Decimal) (string, error) {
	if f.printer == nil {
		return "", ErrNoLocale
	}

	scale, _ := currency.Standard.Rounding(f.unit)
	rounded := amount.Round(int32(scale))
	value, _ := rounded.Abs().Float64()
	digits := f.printer.Sprint(number.Decimal(value, number.Scale(scale)))

	var out string
	base, _ := f.tag.Base()
	if slices.Contains(symbolAfterAmount, base) {
		out = digits + " " + f.symbol
	} else {
		out = f.symbol + digits
	}
	if rounded.Sign() < 0 {
		out = "-" + out
	}
	return out, nil
}

// FormatDate renders a calendar date with localized month and weekday names.
func (f *formatter) FormatDate(date entity.Date, style adapter.DateStyle) (string, error) {
	if f.printer == nil {
		return "", ErrNoLocale
	}
	if date.IsZero() {
		return "", errors.New("invalid date provided")
	}

	var layout string
	switch style {
	case adapter.DateStyleShort:
		layout = "02/01/2006"
		if f.monthDay {
			layout = "01/02/2006"
		}
	case adapter.DateStyleLong:
		layout = "2 January 2006"
		if f.monthDay {
			layout = "January 2, 2006"
		}
	case adapter.DateStyleDay:
		layout = "Monday 2 January"
		if f.monthDay {
			layout = "Monday, January 2"
		}
	case adapter.DateStyleMonth:
		layout = "January 2006"
	default:
		return "", fmt.Errorf("unknown date style %q", style)
	}

	return monday.Format(date.Time(), layout, f.calendar), nil
}

// calendarLocale maps a language tag to the closest supported calendar locale,
// falling back to en_US.
func calendarLocale(tag language.Tag) monday.Locale {
	base, _ := tag.Base()
	region, _ := tag.Region()
	candidates := []monday.Locale{
		monday.Locale(base.String() + "_" + region.String()),
		monday.Locale(base.String() + "_" + strings.ToUpper(base.String())),
	}

	supported := monday.ListLocales()
	for _, c := range candidates {
		if slices.Contains(supported, c) {
			return c
		}
	}
	return monday.LocaleEnUS
}
