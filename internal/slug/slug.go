package slug

import (
	"strings"
)

// foldings maps accented characters found in catalog names to their plain form.
// Existing slugs in the backend were produced with exactly this table.
var foldings = strings.NewReplacer(
	"á", "a", "à", "a", "ä", "a", "â", "a",
	"é", "e", "è", "e", "ë", "e", "ê", "e",
	"í", "i", "ì", "i", "ï", "i", "î", "i",
	"ó", "o", "ò", "o", "ö", "o", "ô", "o",
	"ú", "u", "ù", "u", "ü", "u", "û", "u",
	"ñ", "n",
	"ç", "c",
)

// Slugify returns lowercase, diacritic-folded, hyphen separated form of s.
// Runs of characters other than [a-z0-9] become a single hyphen, leading and trailing hyphens are trimmed.
func Slugify(s string) string {
	folded := foldings.Replace(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(folded))

	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

// Product returns slug of product with provided name and SKU.
// SKU suffix keeps slugs unique when different products share a name.
func Product(name, sku string) string {
	base := Slugify(name)
	suffix := Slugify(sku)

	switch {
	case suffix == "":
		return base
	case base == "":
		return suffix
	default:
		return base + "-" + suffix
	}
}
