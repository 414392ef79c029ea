// Package vcard generates the contact.vcf file shipped next to each card.
package vcard

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	govcard "github.com/emersion/go-vcard"

	"github.com/nextlevelcleaning/cards/internal/types"
)

// Version is the vCard version written for every card.
const Version = "3.0"

// UIDPrefix prefixes the stable contact identifier.
const UIDPrefix = "nextlevel-"

// Contact holds the fields written to a contact card.
type Contact struct {
	Name         string
	Role         string
	Organization string
	Phone        string
	Email        string
	URL          string
}

// FromRecord builds a Contact from a loaded profile record and its canonical card URL.
func FromRecord(rec *types.ProfileRecord, cardURL string) Contact {
	if rec == nil {
		return Contact{Organization: types.DefaultCompany, URL: cardURL}
	}
	return Contact{
		Name:         rec.Name,
		Role:         rec.Role,
		Organization: rec.DisplayCompany(),
		Phone:        rec.Phone,
		Email:        rec.Email,
		URL:          cardURL,
	}
}

// UID returns the contact identifier: the lowercased name with whitespace removed.
func UID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return UIDPrefix + b.String()
}

// SplitName splits a display name into given and family parts.
// The first word is the given name; the rest is the family name.
func SplitName(full string) (given, family string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// Card converts c to a go-vcard Card. Empty optional fields are omitted.
func (c Contact) Card() govcard.Card {
	card := make(govcard.Card)
	card.SetValue(govcard.FieldVersion, Version)

	given, family := SplitName(c.Name)
	card.SetName(&govcard.Name{FamilyName: family, GivenName: given})
	card.SetValue(govcard.FieldFormattedName, c.Name)

	org := c.Organization
	if org == "" {
		org = types.DefaultCompany
	}
	card.SetValue(govcard.FieldOrganization, org)

	if c.Role != "" {
		card.SetValue(govcard.FieldTitle, c.Role)
	}
	if c.Phone != "" {
		card.Add(govcard.FieldTelephone, &govcard.Field{
			Value:  c.Phone,
			Params: govcard.Params{govcard.ParamType: {"CELL"}},
		})
	}
	if c.Email != "" {
		card.SetValue(govcard.FieldEmail, c.Email)
	}
	if c.URL != "" {
		card.SetValue(govcard.FieldURL, c.URL)
	}
	card.SetValue(govcard.FieldUID, UID(c.Name))
	return card
}

// Encode writes c as a vCard to w.
func Encode(w io.Writer, c Contact) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("contact name is required")
	}
	if err := govcard.NewEncoder(w).Encode(c.Card()); err != nil {
		return fmt.Errorf("failed to encode vcard: %w", err)
	}
	return nil
}

// Marshal returns the encoded vCard for c.
func Marshal(c Contact) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes c to path, replacing any existing file.
func WriteFile(path string, c Contact) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Parse decodes a single vCard from r and returns its contact fields.
func Parse(r io.Reader) (Contact, error) {
	card, err := govcard.NewDecoder(r).Decode()
	if err != nil {
		return Contact{}, fmt.Errorf("failed to decode vcard: %w", err)
	}
	return Contact{
		Name:         card.PreferredValue(govcard.FieldFormattedName),
		Role:         card.PreferredValue(govcard.FieldTitle),
		Organization: card.PreferredValue(govcard.FieldOrganization),
		Phone:        card.PreferredValue(govcard.FieldTelephone),
		Email:        card.PreferredValue(govcard.FieldEmail),
		URL:          card.PreferredValue(govcard.FieldURL),
	}, nil
}
