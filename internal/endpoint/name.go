package endpoint

import (
	"path/filepath"
	"strings"
)

// CanonicalName maps a handler source file name to its identifier:
//
//  1. directory and extension are dropped,
//  2. hyphens become spaces,
//  3. every "class " token is removed,
//  4. each word's first ASCII letter is upper-cased,
//  5. spaces become underscores.
//
// class-search.php → Search, class-autocomplete-db.php → Autocomplete_Db.
func CanonicalName(file string) string {
	base := filepath.Base(file)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "class ", "")
	name = upperWords(name)
	return strings.ReplaceAll(name, " ", "_")
}

// upperWords upper-cases the first byte of every whitespace-delimited word
// and leaves the rest untouched.
func upperWords(s string) string {
	b := []byte(s)
	start := true
	for i, c := range b {
		switch c {
		case ' ', '\t', '\r', '\n', '\f', '\v':
			start = true
			continue
		}
		if start && c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
		start = false
	}
	return string(b)
}
