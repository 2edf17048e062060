package domain

import (
	"strings"
	"unicode"
)

// BrandProfile is the slice of a company's brand kit the renderer needs.
// Empty fields mean "use the product default".
type BrandProfile struct {
	CompanyID      string `json:"company_id"`
	CompanyName    string `json:"company_name"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	AccentColor    string `json:"accent_color,omitempty"`
	FontFamily     string `json:"font_family,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	Language       string `json:"language,omitempty"`
}

// BrandInitial returns the first letter of the company name, upper-cased,
// or "" when the name is blank. The renderer substitutes its default.
func BrandInitial(companyName string) string {
	for _, r := range strings.TrimSpace(companyName) {
		return string(unicode.ToUpper(r))
	}
	return ""
}
