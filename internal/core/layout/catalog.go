// Package layout holds the catalog of accepted ISO 8601 layouts and compiles
// it into the artifacts the classifier uses for cheap rejection
package layout

import "slices"

// catalog is ordered; when a value fits more than one layout the first wins
var catalog = []string{
	"YYYY",
	"YYYY-MM",
	"YYYY-MM-DD",
	"YYYYMMDD",

	// local time
	"YYYY-MM-DDTHH",
	"YYYY-MM-DDTHH:mm",
	"YYYY-MM-DDTHHmm",
	"YYYY-MM-DDTHH:mm:ss",
	"YYYY-MM-DDTHHmmss",
	"YYYY-MM-DDTHH:mm:ss.SSS",
	"YYYY-MM-DDTHHmmss.SSS",
	"YYYY-MM-DDTHH:mm:ss.SSSSSS",
	"YYYY-MM-DDTHHmmss.SSSSSS",

	// local time, space instead of T
	"YYYY-MM-DD HH",
	"YYYY-MM-DD HH:mm",
	"YYYY-MM-DD HHmm",
	"YYYY-MM-DD HH:mm:ss",
	"YYYY-MM-DD HHmmss",
	"YYYY-MM-DD HH:mm:ss.SSS",
	"YYYY-MM-DD HHmmss.SSS",
	"YYYY-MM-DD HH:mm:ss.SSSSSS",
	"YYYY-MM-DD HHmmss.SSSSSS",

	// with zone
	"YYYY-MM-DDTHHZ",
	"YYYY-MM-DDTHH:mmZ",
	"YYYY-MM-DDTHHmmZ",
	"YYYY-MM-DDTHH:mm:ssZ",
	"YYYY-MM-DDTHHmmssZ",
	"YYYY-MM-DDTHH:mm:ss.SSSZ",
	"YYYY-MM-DDTHHmmss.SSSZ",
	"YYYY-MM-DDTHH:mm:ss.SSSSSSZ",
	"YYYY-MM-DDTHHmmss.SSSSSSZ",

	// with zone, space instead of T
	"YYYY-MM-DD HHZ",
	"YYYY-MM-DD HH:mmZ",
	"YYYY-MM-DD HHmmZ",
	"YYYY-MM-DD HH:mm:ssZ",
	"YYYY-MM-DD HHmmssZ",
	"YYYY-MM-DD HH:mm:ss.SSSZ",
	"YYYY-MM-DD HHmmss.SSSZ",
	"YYYY-MM-DD HH:mm:ss.SSSSSSZ",
	"YYYY-MM-DD HHmmss.SSSSSSZ",

	// with zone, space before the zone
	"YYYY-MM-DD HH Z",
	"YYYY-MM-DD HH:mm Z",
	"YYYY-MM-DD HHmm Z",
	"YYYY-MM-DD HH:mm:ss Z",
	"YYYY-MM-DD HHmmss Z",
	"YYYY-MM-DD HH:mm:ss.SSS Z",
	"YYYY-MM-DD HHmmss.SSS Z",
	"YYYY-MM-DD HH:mm:ss.SSSSSS Z",
	"YYYY-MM-DD HHmmss.SSSSSS Z",

	// week and ordinal dates
	"YYYY-[W]WW",
	"YYYY[W]WW",
	"YYYY-[W]WW-E",
	"YYYY[W]WWE",
	"YYYY-DDDD",
	"YYYYDDDD",
}

// Catalog returns a copy of the accepted layouts in precedence order
func Catalog() []string { return slices.Clone(catalog) }
