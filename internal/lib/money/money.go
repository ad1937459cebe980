// Package money форматирует денежные суммы в найрах для отображения.
//
// FormatCurrency выводит полную сумму с разделителями разрядов без копеек.
// FormatCompact выводит сокращённую форму (25K, 1.5M) для карточек дашборда.
package money

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Symbol — знак валюты, единый для всего приложения.
const Symbol = "₦"

var printer = message.NewPrinter(language.English)

// FormatCurrency возвращает сумму с символом валюты и разделителями
// разрядов, без дробной части: 1500000 -> "₦1,500,000".
func FormatCurrency(amount float64) string {
	return printer.Sprintf("%s%v", Symbol, number.Decimal(amount, number.MaxFractionDigits(0)))
}

// FormatCompact возвращает сокращённую запись суммы: миллионы с одним
// знаком после запятой, тысячи без дробной части, остальное — полный формат.
func FormatCompact(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("%s%.1fM", Symbol, amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("%s%.0fK", Symbol, amount/1_000)
	default:
		return FormatCurrency(amount)
	}
}
