package catalog

import (
	"strings"

	"github.com/agrovivo/biocampo-api/internal/model"
)

type stemRule struct {
	stem  string
	genus string
}

// stemRules map short prefixes, typical of how spoken genus names come back
// from speech recognition, to the genus substring to search for in the
// catalog. Checked in order; stems must be lowercase.
var stemRules = []stemRule{
	{"tricho", "trichoderma"},
	{"trico", "trichoderma"},
	{"bacil", "bacillus"},
	{"basil", "bacillus"},
	{"beauv", "beauveria"},
	{"bover", "beauveria"},
	{"metarr", "metarhizium"},
	{"metari", "metarhizium"},
	{"pseudo", "pseudomonas"},
	{"azoto", "azotobacter"},
	{"azosp", "azospirillum"},
	{"micor", "micorriza"},
	{"mycor", "micorriza"},
	{"biocar", "biochar"},
}

// Match resolves a noisy spoken or typed product name against the catalog.
// Tiers are tried in order and the first tier with any hit wins: exact
// name, substring either way, then a keyword-stem lookup. There is no
// scoring across candidates. An empty catalog never matches.
func Match(input string, products []model.Product) (model.Product, bool) {
	needle := normalize(input)
	if needle == "" || len(products) == 0 {
		return model.Product{}, false
	}

	for _, p := range products {
		if normalize(p.Name) == needle {
			return p, true
		}
	}

	for _, p := range products {
		name := normalize(p.Name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return p, true
		}
	}

	for _, rule := range stemRules {
		if !strings.Contains(needle, rule.stem) {
			continue
		}
		for _, p := range products {
			if strings.Contains(normalize(p.Name), rule.genus) {
				return p, true
			}
		}
	}

	return model.Product{}, false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
