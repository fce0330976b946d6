// Package slugify derives URL-safe slugs for catalog records.
package slugify

import "github.com/gosimple/slug"

// Make returns the lowercased, hyphenated slug form of the name. Non-ASCII
// text is transliterated before substitution.
func Make(name string) string {
	return slug.Make(name)
}
