package settings

// Currencies is the selectable catalog, leading with the CFA Franc zones and
// other currencies of French-speaking Africa, then common global ones.
var Currencies = []Currency{
	{Code: "XOF", Symbol: "CFA", Name: "CFA Franc BCEAO", Region: "West Africa"},
	{Code: "XAF", Symbol: "FCFA", Name: "CFA Franc BEAC", Region: "Central Africa"},
	{Code: "MGA", Symbol: "Ar", Name: "Malagasy Ariary", Region: "Madagascar"},
	{Code: "DZD", Symbol: "د.ج", Name: "Algerian Dinar", Region: "Algeria"},
	{Code: "MAD", Symbol: "د.م.", Name: "Moroccan Dirham", Region: "Morocco"},
	{Code: "TND", Symbol: "د.ت", Name: "Tunisian Dinar", Region: "Tunisia"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss Franc"},
}

// CurrencyByCode looks up a catalog entry; ok is false for unknown codes.
func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}

	return Currency{}, false
}
