package adapter

import (
	"net/url"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: a parameter appears iff its value is non-nil (non-empty for strings),
// and parameters keep the order they were added in.
func TestQueryInclusionProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("inclusion and order", prop.ForAll(
		func(hasBool, boolVal, hasInt bool, intVal int, str string) bool {
			var b *bool
			if hasBool {
				b = Bool(boolVal)
			}
			var i *int
			if hasInt {
				i = Int(intVal)
			}

			encoded := NewQuery().Bool("active_only", b).Int("token_id", i).String("rarity", &str).Encode()

			var want []string
			if hasBool {
				want = append(want, "active_only")
			}
			if hasInt {
				want = append(want, "token_id")
			}
			if str != "" {
				want = append(want, "rarity")
			}

			var got []string
			if encoded != "" {
				for _, part := range strings.Split(encoded, "&") {
					got = append(got, strings.SplitN(part, "=", 2)[0])
				}
			}
			if len(got) != len(want) {
				return false
			}
			for k := range want {
				if got[k] != want[k] {
					return false
				}
			}

			parsed, err := url.ParseQuery(encoded)
			if err != nil {
				return false
			}
			return str == "" || parsed.Get("rarity") == str
		},
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		gen.IntRange(-1000, 1000),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
