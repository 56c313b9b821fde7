package restcountries

import "strings"

// Regions lists the fixed region partitions used to assemble the full
// collection.
var Regions = []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}

// Fields is the projection requested from the API for single-entity and
// search endpoints.
const Fields = "name,cca2,cca3,capital,region,subregion,languages,currencies,population,area,flags,coatOfArms,maps,timezones,continents,borders,tld,latlng,translations"

// Country mirrors one record returned by the REST Countries v3.1 API.
// Fields beyond names, codes, region, population, area, languages and
// currencies are pass-through data.
type Country struct {
	Name         Name                   `json:"name"`
	CCA2         string                 `json:"cca2"`
	CCA3         string                 `json:"cca3"`
	Capital      []string               `json:"capital,omitempty"`
	Region       string                 `json:"region"`
	Subregion    string                 `json:"subregion,omitempty"`
	Languages    map[string]string      `json:"languages,omitempty"`
	Currencies   map[string]Currency    `json:"currencies,omitempty"`
	Population   int64                  `json:"population"`
	Area         float64                `json:"area"`
	Flags        Flags                  `json:"flags"`
	CoatOfArms   *CoatOfArms            `json:"coatOfArms,omitempty"`
	Maps         Maps                   `json:"maps"`
	Timezones    []string               `json:"timezones,omitempty"`
	Continents   []string               `json:"continents,omitempty"`
	Borders      []string               `json:"borders,omitempty"`
	TLD          []string               `json:"tld,omitempty"`
	LatLng       []float64              `json:"latlng,omitempty"`
	Translations map[string]Translation `json:"translations,omitempty"`
}

// Name holds the common and official names plus native spellings.
type Name struct {
	Common     string                 `json:"common"`
	Official   string                 `json:"official"`
	NativeName map[string]Translation `json:"nativeName,omitempty"`
}

// Translation is a localized common/official name pair.
type Translation struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

// Currency describes one legal tender.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Flags links to flag images.
type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt,omitempty"`
}

// CoatOfArms links to coat-of-arms images.
type CoatOfArms struct {
	PNG string `json:"png,omitempty"`
	SVG string `json:"svg,omitempty"`
}

// Maps links to map services.
type Maps struct {
	GoogleMaps     string `json:"googleMaps"`
	OpenStreetMaps string `json:"openStreetMaps"`
}

// translationKeys maps UI locales to the API's ISO 639-3 translation keys.
var translationKeys = map[string]string{
	"es": "spa",
	"en": "eng",
	"fr": "fra",
	"de": "deu",
	"it": "ita",
	"pt": "por",
}

// DisplayName returns the common name translated for locale ("es", "en"),
// falling back to Name.Common.
func (c Country) DisplayName(locale string) string {
	base, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(locale)), "-")
	if key, ok := translationKeys[base]; ok {
		if tr, ok := c.Translations[key]; ok && tr.Common != "" {
			return tr.Common
		}
	}
	return c.Name.Common
}

// LanguageNames returns the language display names.
func (c Country) LanguageNames() []string {
	out := make([]string, 0, len(c.Languages))
	for _, name := range c.Languages {
		out = append(out, name)
	}
	return out
}

// CurrencyNames returns the currency display names.
func (c Country) CurrencyNames() []string {
	out := make([]string, 0, len(c.Currencies))
	for _, cur := range c.Currencies {
		out = append(out, cur.Name)
	}
	return out
}
