// Package money formats prize and balance amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol is the currency sign appended to formatted amounts.
const Symbol = "₽"

// Format renders amount with locale digit grouping, e.g. "5,000 ₽" for en-US
// and "5 000 ₽" for ru-RU. Unparseable locales use en-US grouping.
func Format(locale string, amount int64) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return message.NewPrinter(tag).Sprintf("%d %s", amount, Symbol)
}
