package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gocolly/colly/v2"

	"github.com/saborlab/sabor/internal/models"
)

// howToStep is the schema.org HowToStep shape found in recipe pages.
type howToStep struct {
	Text string `json:"text"`
}

// recipeSchema is the subset of schema.org Recipe we extract from JSON-LD.
type recipeSchema struct {
	Type               string          `json:"@type"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	RecipeIngredient   []string        `json:"recipeIngredient"`
	RecipeInstructions json.RawMessage `json:"recipeInstructions"`
}

type graphSchema struct {
	Graph []recipeSchema `json:"@graph"`
}

// CollyScraper implements Scraper by fetching the page and parsing its
// application/ld+json Recipe blocks.
type CollyScraper struct {
	userAgent string
}

// NewCollyScraper creates a scraper with the given User-Agent.
func NewCollyScraper(userAgent string) *CollyScraper {
	return &CollyScraper{userAgent: userAgent}
}

// ScrapeRecipe fetches url and extracts structured recipe content. The
// preferred language only labels the result's section defaults; the page text
// is taken as-is.
func (s *CollyScraper) ScrapeRecipe(ctx context.Context, url string, preferred models.Language) (*models.RecipeContent, error) {
	// Fresh collector per call so concurrent scrapes share nothing.
	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.StdlibContext(ctx),
	)

	var content *models.RecipeContent

	c.OnHTML(`script[type="application/ld+json"]`, func(e *colly.HTMLElement) {
		if content != nil {
			return
		}
		if schema, ok := findRecipeSchema(e.Text); ok {
			content = schemaToContent(schema)
		}
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("scrape: fetching %s: %w", url, err)
	}
	c.Wait()

	if content == nil || content.Empty() {
		return nil, fmt.Errorf("scrape: no recipe data found at %s", url)
	}
	return content, nil
}

// findRecipeSchema locates a Recipe node in a JSON-LD block, handling both a
// top-level object and an @graph array.
func findRecipeSchema(text string) (recipeSchema, bool) {
	var direct recipeSchema
	if err := json.Unmarshal([]byte(text), &direct); err == nil && direct.Type == "Recipe" {
		return direct, true
	}
	var graph graphSchema
	if err := json.Unmarshal([]byte(text), &graph); err == nil {
		for _, node := range graph.Graph {
			if node.Type == "Recipe" {
				return node, true
			}
		}
	}
	return recipeSchema{}, false
}

func schemaToContent(schema recipeSchema) *models.RecipeContent {
	content := &models.RecipeContent{
		Title:       strings.TrimSpace(schema.Name),
		Description: strings.TrimSpace(schema.Description),
	}
	for _, line := range schema.RecipeIngredient {
		content.Ingredients = append(content.Ingredients, parseIngredient(line))
	}
	for _, text := range parseInstructions(schema.RecipeInstructions) {
		content.Instructions = append(content.Instructions, models.PrepStep{
			ID:       models.NewID(),
			Text:     text,
			Category: "General",
		})
	}
	return content
}

// parseInstructions accepts the two common recipeInstructions encodings:
// a list of HowToStep objects or a list of plain strings.
func parseInstructions(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var steps []howToStep
	if err := json.Unmarshal(raw, &steps); err == nil {
		var out []string
		for _, s := range steps {
			if t := strings.TrimSpace(s.Text); t != "" {
				out = append(out, t)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	var texts []string
	if err := json.Unmarshal(raw, &texts); err == nil {
		var out []string
		for _, t := range texts {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
		return out
	}
	return nil
}

// parseIngredient splits a free-form ingredient line ("250 g flour") into
// amount, unit, and name, best effort. Unparsable lines keep the whole text
// as the name with a count of one.
func parseIngredient(line string) models.Ingredient {
	ing := models.Ingredient{
		ID:       models.NewID(),
		Name:     strings.TrimSpace(line),
		Amount:   1,
		Unit:     models.UnitUnits,
		Category: "General",
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ing
	}
	amount, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return ing
	}
	ing.Amount = amount
	rest := fields[1:]
	if unit, ok := normalizeUnit(rest[0]); ok && len(rest) > 1 {
		ing.Unit = unit
		rest = rest[1:]
	}
	ing.Name = strings.Join(rest, " ")
	return ing
}

var unitAliases = map[string]models.Unit{
	"g": models.UnitGram, "gr": models.UnitGram, "gram": models.UnitGram, "grams": models.UnitGram,
	"kg": models.UnitKg, "kilogram": models.UnitKg,
	"tsp": models.UnitTsp, "teaspoon": models.UnitTsp,
	"tbsp": models.UnitTbsp, "tablespoon": models.UnitTbsp,
	"cup": models.UnitCup, "cups": models.UnitCup,
	"ml": models.UnitMl, "milliliter": models.UnitMl,
	"l": models.UnitLiters, "liter": models.UnitLiters, "liters": models.UnitLiters,
	"pinch": models.UnitPinch,
}

func normalizeUnit(word string) (models.Unit, bool) {
	u, ok := unitAliases[strings.ToLower(strings.Trim(word, "."))]
	return u, ok
}
