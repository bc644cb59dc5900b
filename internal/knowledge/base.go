// Package knowledge loads the static safety knowledge base: a JSON
// document keyed by countries, read once at startup and immutable for the
// process lifetime. There is no write path.
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/safewonder/safewonder/internal/domain"
)

// Base is the loaded knowledge base. Safe for concurrent reads; never
// mutated after Load returns.
type Base struct {
	countries []domain.Country
	byID      map[string]int
}

type document struct {
	Countries []domain.Country `json:"countries"`
}

// Load reads and parses the knowledge base file. A missing file or
// malformed JSON is a startup error, not a silently empty base.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Base from raw JSON bytes.
func Parse(data []byte) (*Base, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}

	base := &Base{
		countries: doc.Countries,
		byID:      make(map[string]int, len(doc.Countries)),
	}
	for i, country := range doc.Countries {
		base.byID[strings.ToUpper(country.ID)] = i
	}
	return base, nil
}

// Countries returns all loaded countries in file order.
func (b *Base) Countries() []domain.Country {
	return b.countries
}

// CountryByID looks up a country by its identifier (e.g. "IND", "JPN").
// The lookup is case-insensitive.
func (b *Base) CountryByID(id string) (domain.Country, bool) {
	idx, ok := b.byID[strings.ToUpper(id)]
	if !ok {
		return domain.Country{}, false
	}
	return b.countries[idx], true
}

// CountryByName looks up a country by display name, case-insensitively.
func (b *Base) CountryByName(name string) (domain.Country, bool) {
	for _, country := range b.countries {
		if strings.EqualFold(country.Name, name) {
			return country, true
		}
	}
	return domain.Country{}, false
}

// Resolve finds a country by id first, then by name.
func (b *Base) Resolve(idOrName string) (domain.Country, bool) {
	if country, ok := b.CountryByID(idOrName); ok {
		return country, true
	}
	return b.CountryByName(idOrName)
}
