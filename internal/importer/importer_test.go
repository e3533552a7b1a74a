package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/saborlab/sabor/internal/apperr"
	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/testutil"
)

func TestImportCreatesPrependedRecipe(t *testing.T) {
	s := testutil.TestStore(t)
	scraper := &testutil.FakeScraper{Content: &models.RecipeContent{Title: "Tarta de manzana"}}
	images := &testutil.FakeImageGen{URL: "/images/tarta.png"}
	im := New(s, scraper, images, testutil.Logger())

	r, err := im.ImportFromURL(context.Background(), "https://example.com/tarta", models.LanguageES)
	if err != nil {
		t.Fatalf("ImportFromURL: %v", err)
	}

	if r.ES == nil || r.ES.Title != "Tarta de manzana" {
		t.Error("scraped content not in the active language's slot")
	}
	if r.HE != nil {
		t.Error("import filled the other language's slot")
	}
	if r.Image != "/images/tarta.png" {
		t.Errorf("image = %q", r.Image)
	}
	if r.CreatedAt == 0 {
		t.Error("import did not stamp a creation time")
	}

	got := s.Recipes()
	if got[0].ID != r.ID {
		t.Error("imported recipe is not at the head of the collection")
	}
}

func TestImportFailedScrapeShortCircuits(t *testing.T) {
	s := testutil.TestStore(t)
	scraper := &testutil.FakeScraper{Fail: true}
	images := &testutil.FakeImageGen{}
	im := New(s, scraper, images, testutil.Logger())
	before := len(s.Recipes())

	_, err := im.ImportFromURL(context.Background(), "https://example.com/broken", models.LanguageHE)
	if !errors.Is(err, apperr.ErrImport) {
		t.Fatalf("ImportFromURL = %v, want ErrImport", err)
	}
	if got := len(s.Recipes()); got != before {
		t.Error("failed import mutated the collection")
	}
	if images.Calls.Load() != 0 {
		t.Error("image generation ran after the scrape failed")
	}
}

func TestImportImageFailureIsNonFatal(t *testing.T) {
	s := testutil.TestStore(t)
	scraper := &testutil.FakeScraper{Content: &models.RecipeContent{Title: "Pan"}}
	images := &testutil.FakeImageGen{Fail: true}
	im := New(s, scraper, images, testutil.Logger())

	r, err := im.ImportFromURL(context.Background(), "https://example.com/pan", models.LanguageES)
	if err != nil {
		t.Fatalf("ImportFromURL: %v", err)
	}
	if r.Image != "" {
		t.Errorf("image = %q, want empty after a failed generation", r.Image)
	}
	if _, err := s.RecipeByID(r.ID); err != nil {
		t.Error("recipe missing from the collection")
	}
}

func TestImportWithoutImageGenerator(t *testing.T) {
	s := testutil.TestStore(t)
	scraper := &testutil.FakeScraper{Content: &models.RecipeContent{Title: "Pan"}}
	im := New(s, scraper, nil, testutil.Logger())

	r, err := im.ImportFromURL(context.Background(), "https://example.com/pan", models.LanguageES)
	if err != nil {
		t.Fatalf("ImportFromURL: %v", err)
	}
	if r.Image != "" {
		t.Error("image set although no generator is configured")
	}
}

func TestImportRejectsBlankURL(t *testing.T) {
	s := testutil.TestStore(t)
	im := New(s, &testutil.FakeScraper{}, nil, testutil.Logger())

	for _, url := range []string{"", "   "} {
		if _, err := im.ImportFromURL(context.Background(), url, models.LanguageHE); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("ImportFromURL(%q) = %v, want ErrValidation", url, err)
		}
	}
}

func TestImportEmptyScrapeIsAnImportError(t *testing.T) {
	s := testutil.TestStore(t)
	scraper := &testutil.FakeScraper{Content: &models.RecipeContent{}}
	im := New(s, scraper, nil, testutil.Logger())

	if _, err := im.ImportFromURL(context.Background(), "https://example.com/empty", models.LanguageHE); !errors.Is(err, apperr.ErrImport) {
		t.Errorf("empty scrape = %v, want ErrImport", err)
	}
}
