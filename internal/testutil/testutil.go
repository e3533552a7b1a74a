// Package testutil provides shared test helpers: temp-backed stores and fake
// external gateways.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/storage"
	"github.com/saborlab/sabor/internal/store"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestProvider creates a temp-directory file provider that is cleaned up with
// the test.
func TestProvider(t *testing.T) *storage.File {
	t.Helper()
	p, err := storage.NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	return p
}

// TestStore opens a store over a temp file provider. The store starts with
// the built-in seed collections.
func TestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(TestProvider(t), Logger())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	return s
}

// Recipe builds a recipe with content in one language slot.
func Recipe(id, title string, lang models.Language, createdAt int64) *models.Recipe {
	r := &models.Recipe{ID: id, CreatedAt: createdAt}
	r.SetContent(lang, &models.RecipeContent{Title: title})
	return r
}

// FakeTranslator is a scriptable gateway.Translator. Fail makes every call
// error; Delay stalls each call; Calls counts gateway invocations.
type FakeTranslator struct {
	Fail  bool
	Delay time.Duration
	Calls atomic.Int64

	// Translate result override; nil means "echo the source with a prefix".
	Result *models.RecipeContent
}

// Translate implements gateway.Translator.
func (f *FakeTranslator) Translate(ctx context.Context, content *models.RecipeContent, target models.Language) (*models.RecipeContent, error) {
	f.Calls.Add(1)
	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.Fail {
		return nil, fmt.Errorf("fake translator: scripted failure")
	}
	if f.Result != nil {
		return f.Result.Clone(), nil
	}
	out := content.Clone()
	out.Title = string(target) + ":" + out.Title
	return out, nil
}

// FakeScraper is a scriptable gateway.Scraper.
type FakeScraper struct {
	Fail    bool
	Content *models.RecipeContent
	Calls   atomic.Int64
}

// ScrapeRecipe implements gateway.Scraper.
func (f *FakeScraper) ScrapeRecipe(_ context.Context, url string, _ models.Language) (*models.RecipeContent, error) {
	f.Calls.Add(1)
	if f.Fail {
		return nil, fmt.Errorf("fake scraper: scripted failure for %s", url)
	}
	if f.Content != nil {
		return f.Content.Clone(), nil
	}
	return &models.RecipeContent{Title: "scraped from " + url}, nil
}

// FakeImageGen is a scriptable gateway.ImageGenerator.
type FakeImageGen struct {
	Fail  bool
	URL   string
	Calls atomic.Int64
}

// GenerateImage implements gateway.ImageGenerator.
func (f *FakeImageGen) GenerateImage(_ context.Context, _ string) (string, error) {
	f.Calls.Add(1)
	if f.Fail {
		return "", fmt.Errorf("fake image generator: scripted failure")
	}
	if f.URL != "" {
		return f.URL, nil
	}
	return "/images/fake.png", nil
}

// FakeExporter records export requests.
type FakeExporter struct {
	Fail  bool
	Calls atomic.Int64
}

// ExportDocument implements gateway.Exporter.
func (f *FakeExporter) ExportDocument(_ context.Context, elementID, filename string) error {
	f.Calls.Add(1)
	if f.Fail {
		return fmt.Errorf("fake exporter: scripted failure")
	}
	return nil
}
