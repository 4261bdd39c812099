package endpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalName(t *testing.T) {
	cases := map[string]string{
		"class-search.php":                "Search",
		"class-autocomplete-db.php":       "Autocomplete_Db",
		"/srv/api/class-product-feed.php": "Product_Feed",
		"settings.go":                     "Settings",
		"endpoints/health/health.go":      "Health",
		"class-class-x.php":               "X",
		"already_Upper-case.go":           "Already_Upper_Case",
		"noext":                           "Noext",
		"my-subclass-thing.php":           "My_Subthing",
	}
	for in, want := range cases {
		assert.Equal(t, want, CanonicalName(in), in)
	}
}
