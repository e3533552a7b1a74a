package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saborlab/sabor/internal/models"
)

const recipePage = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{
  "@type": "Recipe",
  "name": "Tarta de manzana",
  "description": "Clásica tarta casera.",
  "recipeIngredient": ["250 g harina", "3 manzanas", "una pizca de sal"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Mezclar la harina."},
    {"@type": "HowToStep", "text": "Hornear 40 minutos."}
  ]
}
</script>
</head><body></body></html>`

const graphPage = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{"@graph": [
  {"@type": "WebSite", "name": "ignored"},
  {"@type": "Recipe", "name": "Pan rápido", "recipeInstructions": ["Amasar.", "Hornear."]}
]}
</script>
</head><body></body></html>`

func TestScrapeRecipeFromJSONLD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(recipePage))
	}))
	defer srv.Close()

	s := NewCollyScraper("sabor-test")
	content, err := s.ScrapeRecipe(context.Background(), srv.URL, models.LanguageES)
	if err != nil {
		t.Fatalf("ScrapeRecipe: %v", err)
	}

	if content.Title != "Tarta de manzana" {
		t.Errorf("title = %q", content.Title)
	}
	if len(content.Ingredients) != 3 {
		t.Fatalf("ingredients = %d, want 3", len(content.Ingredients))
	}
	if len(content.Instructions) != 2 {
		t.Fatalf("instructions = %d, want 2", len(content.Instructions))
	}
	if content.Instructions[0].Text != "Mezclar la harina." {
		t.Errorf("step = %q", content.Instructions[0].Text)
	}
	for _, ing := range content.Ingredients {
		if ing.ID == "" {
			t.Error("scraped ingredient missing an id")
		}
	}
}

func TestScrapeRecipeFromGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(graphPage))
	}))
	defer srv.Close()

	s := NewCollyScraper("sabor-test")
	content, err := s.ScrapeRecipe(context.Background(), srv.URL, models.LanguageES)
	if err != nil {
		t.Fatalf("ScrapeRecipe: %v", err)
	}
	if content.Title != "Pan rápido" {
		t.Errorf("title = %q", content.Title)
	}
	if len(content.Instructions) != 2 {
		t.Errorf("instructions = %d, want 2 (plain-string encoding)", len(content.Instructions))
	}
}

func TestScrapeRecipeNoRecipeData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
	}))
	defer srv.Close()

	s := NewCollyScraper("sabor-test")
	if _, err := s.ScrapeRecipe(context.Background(), srv.URL, models.LanguageES); err == nil {
		t.Fatal("ScrapeRecipe succeeded on a page with no recipe data")
	}
}

func TestParseIngredient(t *testing.T) {
	cases := []struct {
		line   string
		name   string
		amount float64
		unit   models.Unit
	}{
		{"250 g harina", "harina", 250, models.UnitGram},
		{"3 manzanas", "manzanas", 3, models.UnitUnits},
		{"1.5 cups sugar", "sugar", 1.5, models.UnitCup},
		{"una pizca de sal", "una pizca de sal", 1, models.UnitUnits},
		{"sal", "sal", 1, models.UnitUnits},
	}
	for _, tc := range cases {
		got := parseIngredient(tc.line)
		if got.Name != tc.name || got.Amount != tc.amount || got.Unit != tc.unit {
			t.Errorf("parseIngredient(%q) = %q/%v/%v, want %q/%v/%v",
				tc.line, got.Name, got.Amount, got.Unit, tc.name, tc.amount, tc.unit)
		}
	}
}
