// Package metrics defines the flat metrics record produced by the analyzer
// and consumed by renderers and the assertion runner.
package metrics

// Key is the well-known name of a single metric in the record.
type Key string

// Keys produced by the analysis engine.
const (
	Size                          Key = "size"
	DataURISize                   Key = "dataUriSize"
	RatioOfDataURISize            Key = "ratioOfDataUriSize"
	GzippedSize                   Key = "gzippedSize"
	Rules                         Key = "rules"
	Selectors                     Key = "selectors"
	Declarations                  Key = "declarations"
	Simplicity                    Key = "simplicity"
	AverageOfIdentifier           Key = "averageOfIdentifier"
	MostIdentifier                Key = "mostIdentifier"
	MostIdentifierSelector        Key = "mostIdentifierSelector"
	AverageOfCohesion             Key = "averageOfCohesion"
	LowestCohesion                Key = "lowestCohesion"
	LowestCohesionSelector        Key = "lowestCohesionSelector"
	TotalUniqueFontSizes          Key = "totalUniqueFontSizes"
	UniqueFontSizes               Key = "uniqueFontSizes"
	TotalUniqueFontFamilies       Key = "totalUniqueFontFamilies"
	UniqueFontFamilies            Key = "uniqueFontFamilies"
	TotalUniqueColors             Key = "totalUniqueColors"
	UniqueColors                  Key = "uniqueColors"
	TotalUniqueBackgroundImages   Key = "totalUniqueBackgroundImages"
	UniqueBackgroundImages        Key = "uniqueBackgroundImages"
	IDSelectors                   Key = "idSelectors"
	UniversalSelectors            Key = "universalSelectors"
	UnqualifiedAttributeSelectors Key = "unqualifiedAttributeSelectors"
	JavascriptSpecificSelectors   Key = "javascriptSpecificSelectors"
	UserSpecifiedSelectors        Key = "userSpecifiedSelectors"
	ImportantKeywords             Key = "importantKeywords"
	FloatProperties               Key = "floatProperties"
	PropertiesCount               Key = "propertiesCount"
	MediaQueries                  Key = "mediaQueries"
)

// Keys describing the analyzed sources rather than the CSS itself.
const (
	Published     Key = "published"
	Paths         Key = "paths"
	Stylesheets   Key = "stylesheets"
	StyleElements Key = "styleElements"
)

// AllKeys lists every known key in the order metrics appear in a full
// record.
func AllKeys() []Key {
	return []Key{
		Published, Paths, Stylesheets, StyleElements,
		Size, DataURISize, RatioOfDataURISize, GzippedSize,
		Rules, Selectors, Declarations, Simplicity,
		AverageOfIdentifier, MostIdentifier, MostIdentifierSelector,
		AverageOfCohesion, LowestCohesion, LowestCohesionSelector,
		TotalUniqueFontSizes, UniqueFontSizes,
		TotalUniqueFontFamilies, UniqueFontFamilies,
		TotalUniqueColors, UniqueColors,
		TotalUniqueBackgroundImages, UniqueBackgroundImages,
		IDSelectors, UniversalSelectors, UnqualifiedAttributeSelectors,
		JavascriptSpecificSelectors, UserSpecifiedSelectors,
		ImportantKeywords, FloatProperties, PropertiesCount, MediaQueries,
	}
}

// IsKnown reports whether k is one of the well-known keys.
func IsKnown(k Key) bool {
	for _, known := range AllKeys() {
		if k == known {
			return true
		}
	}
	return false
}

// PropertyCount is a single entry of the ranked properties list.
type PropertyCount struct {
	Property string `json:"property" yaml:"property"`
	Count    int    `json:"count" yaml:"count"`
}
