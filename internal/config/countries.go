package config

import "strings"

// canonicalCountries maps each canonical country name to its accepted
// aliases: common names, local spellings and ISO alpha-2/alpha-3 codes for
// the countries the feed covers plus frequent trading partners. Data, not
// logic: extend via the [normalization.countries] config section.
var canonicalCountries = map[string][]string{
	"Morocco": {
		"ma", "mar", "maroc",
	},
	"Spain": {
		"es", "esp", "espana", "españa",
	},
	"Portugal": {
		"pt", "prt",
	},
	"Italy": {
		"it", "ita", "italia",
	},
	"France": {
		"fr", "fra",
	},
	"Greece": {
		"gr", "grc", "hellas",
	},
	"Malta": {
		"mt", "mlt",
	},
	"Germany": {
		"de", "deu", "deutschland",
	},
	"United Kingdom": {
		"uk", "gb", "gbr", "great britain",
	},
	"United States": {
		"us", "usa", "united states of america",
	},
	"Turkey": {
		"tr", "tur", "turkiye", "türkiye",
	},
	"Tunisia": {
		"tn", "tun",
	},
	"Egypt": {
		"eg", "egy",
	},
	"China": {
		"cn", "chn",
	},
	"India": {
		"in", "ind",
	},
	"Bangladesh": {
		"bd", "bgd",
	},
	"Vietnam": {
		"vn", "vnm", "viet nam",
	},
}

// defaultCountries flattens canonicalCountries into a lowercase
// alias-to-canonical lookup table. Every canonical name is its own alias.
func defaultCountries() map[string]string {
	out := make(map[string]string, len(canonicalCountries)*4)
	for name, aliases := range canonicalCountries {
		out[strings.ToLower(name)] = name
		for _, a := range aliases {
			out[a] = name
		}
	}
	return out
}
