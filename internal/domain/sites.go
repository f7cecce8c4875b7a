// internal/domain/sites.go
package domain

import "strings"

// SiteEntry bridges the short site codes used by the inventory views and
// the display names carried on work orders. Extend the table as new
// sites appear; unknown values always pass through unchanged because the
// warehouse sometimes hands back opaque strings like "UNKNOWN".
type SiteEntry struct {
	Code    string
	Name    string
	Aliases []string
}

var siteMap = []SiteEntry{
	{Code: "L-QLD", Name: "QLD SALES & SERVICE", Aliases: []string{"QLD SALES AND SERVICE", "QLD SERVICE"}},
	{Code: "L-VIC", Name: "VICTORIA SALES & SERVICE", Aliases: []string{"VIC SALES & SERVICE", "VIC SALES AND SERVICE", "VICTORIA SERVICE"}},
	{Code: "L-NSW", Name: "NSW SALES & SERVICE", Aliases: []string{"NEW SOUTH WALES SALES & SERVICE", "NSW SALES AND SERVICE", "NSW SERVICE"}},
	{Code: "L-FBK", Name: "FAIRBANK SALES & SERVICE", Aliases: []string{"FAIRBANK SALES AND SERVICE", "FAIRBANK SERVICE"}},
	{Code: "L-SAU", Name: "SA SALES & SERVICE", Aliases: []string{"SA SALES AND SERVICE", "SOUTH AUSTRALIA SALES & SERVICE", "SA SERVICE"}},
	{Code: "L-BEN", Name: "BENDIGO SALES & SERVICE", Aliases: []string{"BENDIGO SALES AND SERVICE", "BENDIGO SERVICE"}},
	{Code: "L-SUN", Name: "SUNSHINE SALES & SERVICE", Aliases: []string{"SUNSHINE", "SUNSHINE SERVICE", "SUNSHINE SALES AND SERVICE"}},
	{Code: "L-WAU", Name: "WA SALES & SERVICE", Aliases: []string{"WA SALES", "WESTERN AUSTRALIA SALES & SERVICE", "WA SALES AND SERVICE", "WA SERVICE"}},
}

// normalizeSite lowercases, collapses whitespace and folds "AND" into "&"
// so "QLD Sales and Service" and "QLD SALES & SERVICE" compare equal.
func normalizeSite(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " and ", " & ")
	return s
}

func findSite(value string) *SiteEntry {
	v := normalizeSite(value)
	for i := range siteMap {
		e := &siteMap[i]
		if normalizeSite(e.Code) == v || normalizeSite(e.Name) == v {
			return e
		}
		for _, a := range e.Aliases {
			if normalizeSite(a) == v {
				return e
			}
		}
	}
	return nil
}

// ToSiteCode resolves any site label to its short code; unresolved values
// pass through unchanged.
func ToSiteCode(value string) string {
	if e := findSite(value); e != nil {
		return e.Code
	}
	return value
}

// ToSiteName resolves any site label to its display name; unresolved
// values pass through unchanged.
func ToSiteName(value string) string {
	if e := findSite(value); e != nil {
		return e.Name
	}
	return value
}

// MapSitesToCodes maps a list of site labels to codes, preserving order.
func MapSitesToCodes(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = ToSiteCode(v)
	}
	return out
}

// MapSitesToNames maps a list of site labels to display names.
func MapSitesToNames(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = ToSiteName(v)
	}
	return out
}

// SiteOptions returns the known code/name pairs for selector UIs.
func SiteOptions() []SiteEntry {
	out := make([]SiteEntry, len(siteMap))
	for i, e := range siteMap {
		out[i] = SiteEntry{Code: e.Code, Name: e.Name}
	}
	return out
}
