package settings

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency describes how amounts are displayed. Region is set for currencies
// tied to a specific area (the CFA Franc variants, mainly).
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

// Language is the UI language, "en" or "fr".
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
)

type Settings struct {
	Currency Currency `json:"currency"`
	Language Language `json:"language"`
}

func Default() Settings {
	return Settings{
		Currency: Currency{Code: "USD", Symbol: "$", Name: "US Dollar"},
		Language: LanguageEnglish,
	}
}

func (l Language) tag() language.Tag {
	if l == LanguageFrench {
		return language.French
	}

	return language.AmericanEnglish
}

// FormatAmount renders an amount with the active currency symbol and
// locale-aware digit grouping, e.g. "$1,234.50" or "1 234,50 CFA".
func (s Settings) FormatAmount(amount float64) string {
	p := message.NewPrinter(s.Language.tag())

	if s.Language == LanguageFrench {
		return p.Sprintf("%.2f %s", amount, s.Currency.Symbol)
	}

	return p.Sprintf("%s%.2f", s.Currency.Symbol, amount)
}
