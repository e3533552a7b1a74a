package internal

import (
	"github.com/saborlab/sabor/internal/gateway"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config

	// Gateway overrides, used by tests and embedders to bypass the real
	// external services.
	translator gateway.Translator
	scraper    gateway.Scraper
	imageGen   gateway.ImageGenerator
	exporter   gateway.Exporter
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithTranslator overrides the translation gateway.
func WithTranslator(t gateway.Translator) Option {
	return func(a *application) {
		a.translator = t
	}
}

// WithScraper overrides the import scraper gateway.
func WithScraper(s gateway.Scraper) Option {
	return func(a *application) {
		a.scraper = s
	}
}

// WithImageGenerator overrides the image generation gateway.
func WithImageGenerator(g gateway.ImageGenerator) Option {
	return func(a *application) {
		a.imageGen = g
	}
}

// WithExporter overrides the document export gateway.
func WithExporter(e gateway.Exporter) Option {
	return func(a *application) {
		a.exporter = e
	}
}
