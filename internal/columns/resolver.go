// Package columns locates semantically named survey columns by fuzzy header matching.
package columns

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Resolve returns the first header, in the given order, whose text contains
// substring. Matching is case-insensitive and insensitive to Unicode
// composition, so "Âge" and "Âge" both match "âge". headers is not
// modified.
func Resolve(headers []string, substring string) (string, bool) {
	needle := fold(substring)
	if needle == "" {
		return "", false
	}
	for _, h := range headers {
		if strings.Contains(fold(h), needle) {
			return h, true
		}
	}
	return "", false
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// Markers are the header substrings used to find each semantic field.
type Markers struct {
	Age          string `mapstructure:"age" yaml:"age" json:"age"`
	Start        string `mapstructure:"start" yaml:"start" json:"start"`
	End          string `mapstructure:"end" yaml:"end" json:"end"`
	Gender       string `mapstructure:"gender" yaml:"gender" json:"gender"`
	Organization string `mapstructure:"organization" yaml:"organization" json:"organization"`
	Status       string `mapstructure:"status" yaml:"status" json:"status"`
}

// DefaultMarkers matches the French survey exports this tool was built for.
func DefaultMarkers() Markers {
	return Markers{
		Age:          "âge",
		Start:        "date de lancement",
		End:          "date de soumission",
		Gender:       "vous vous identifiez",
		Organization: "académie",
		Status:       "statut actuel",
	}
}

// WithDefaults fills empty markers from DefaultMarkers.
func (m Markers) WithDefaults() Markers {
	d := DefaultMarkers()
	if m.Age == "" {
		m.Age = d.Age
	}
	if m.Start == "" {
		m.Start = d.Start
	}
	if m.End == "" {
		m.End = d.End
	}
	if m.Gender == "" {
		m.Gender = d.Gender
	}
	if m.Organization == "" {
		m.Organization = d.Organization
	}
	if m.Status == "" {
		m.Status = d.Status
	}
	return m
}

// Fields holds resolved column names; an empty string means not found.
type Fields struct {
	Age          string
	Start        string
	End          string
	Gender       string
	Organization string
	Status       string
}

// ResolveAll resolves every marker against headers.
func ResolveAll(headers []string, m Markers) Fields {
	pick := func(sub string) string {
		name, _ := Resolve(headers, sub)
		return name
	}
	return Fields{
		Age:          pick(m.Age),
		Start:        pick(m.Start),
		End:          pick(m.End),
		Gender:       pick(m.Gender),
		Organization: pick(m.Organization),
		Status:       pick(m.Status),
	}
}
