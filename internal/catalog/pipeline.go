// Package catalog derives ordered recipe views from the collection. The
// pipeline is a pure function of its inputs; callers re-run it whenever the
// collection or any query input changes.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/saborlab/sabor/internal/models"
)

// SortOption selects the view ordering.
type SortOption string

const (
	SortNewest       SortOption = "newest"
	SortOldest       SortOption = "oldest"
	SortAlphabetical SortOption = "alphabetical"
)

// AllCategories is the sentinel meaning "no category filter".
const AllCategories = "all"

// Query is the full set of view inputs.
type Query struct {
	Text          string
	InTitle       bool
	InIngredients bool
	CategoryID    string // AllCategories (or empty) disables the filter
	Sort          SortOption
	Language      models.Language
}

// DefaultQuery matches the initial UI state: all categories, both search
// fields enabled, newest first.
func DefaultQuery(lang models.Language) Query {
	return Query{
		InTitle:       true,
		InIngredients: true,
		CategoryID:    AllCategories,
		Sort:          SortNewest,
		Language:      lang,
	}
}

// View filters and sorts the recipe collection. The input slice is not
// modified; ties under every sort keep the input order.
func View(recipes []*models.Recipe, q Query) []*models.Recipe {
	terms := splitTerms(q.Text)

	out := make([]*models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if q.CategoryID != "" && q.CategoryID != AllCategories && r.CategoryID != q.CategoryID {
			continue
		}
		if len(terms) > 0 && !matchesAll(r, terms, q) {
			continue
		}
		out = append(out, r)
	}

	switch q.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	case SortAlphabetical:
		cl := collator(q.Language)
		sort.SliceStable(out, func(i, j int) bool {
			return cl.CompareString(sortTitle(out[i], q.Language), sortTitle(out[j], q.Language)) < 0
		})
	default: // SortNewest
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	}
	return out
}

// splitTerms normalizes the free-text query: trim, lowercase, whitespace
// split. An empty result means "no text filter".
func splitTerms(text string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(text)))
}

// matchesAll implements the AND-of-terms, OR-of-fields, OR-of-locale match:
// every term must hit the title or an ingredient name of at least one present
// content object, whichever fields are enabled.
func matchesAll(r *models.Recipe, terms []string, q Query) bool {
	contents := r.Contents()
	for _, term := range terms {
		matched := false
		for _, c := range contents {
			if q.InTitle && strings.Contains(strings.ToLower(c.Title), term) {
				matched = true
				break
			}
			if q.InIngredients && ingredientMatch(c, term) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func ingredientMatch(c *models.RecipeContent, term string) bool {
	for _, ing := range c.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), term) {
			return true
		}
	}
	return false
}

// sortTitle is the alphabetical sort key: the active-language title, falling
// back to the Hebrew title when that slot is absent.
func sortTitle(r *models.Recipe, lang models.Language) string {
	title := ""
	if c := r.Content(lang); c != nil {
		title = c.Title
	} else if c := r.Content(models.LanguageHE); c != nil {
		title = c.Title
	}
	return strings.ToLower(title)
}

func collator(lang models.Language) *collate.Collator {
	tag := language.Hebrew
	if lang == models.LanguageES {
		tag = language.Spanish
	}
	return collate.New(tag, collate.IgnoreCase)
}
