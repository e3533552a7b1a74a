package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/saborlab/sabor/internal/models"
)

// ImageSink stores generated image bytes and returns a serving URL.
type ImageSink interface {
	WriteImage(ctx context.Context, mimeType string, data []byte) (string, error)
}

// GenAI implements Translator and ImageGenerator on top of the Gemini API.
type GenAI struct {
	client     *genai.Client
	textModel  string
	imageModel string
	images     ImageSink
}

// NewGenAI creates the gateway. images may be nil when image generation is
// not configured.
func NewGenAI(client *genai.Client, textModel, imageModel string, images ImageSink) *GenAI {
	return &GenAI{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
		images:     images,
	}
}

var languageNames = map[models.Language]string{
	models.LanguageHE: "Hebrew",
	models.LanguageES: "Spanish",
}

const translatePrompt = `You translate recipes between Hebrew and Spanish for a bilingual
recipe catalog. Translate every user-visible text field of the recipe into %s:
title, description, ingredient names, ingredient section labels, step texts,
step section labels, notes, and oven instructions. Keep amounts and units
unchanged. Keep the number and order of ingredients and steps identical to
the source. Use natural culinary vocabulary, not word-for-word translation.`

// Translate renders content in the target language via a structured-output
// model call.
func (g *GenAI) Translate(ctx context.Context, content *models.RecipeContent, target models.Language) (*models.RecipeContent, error) {
	src, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("genai: marshal source content: %w", err)
	}

	res, err := g.client.Models.GenerateContent(ctx, g.textModel, []*genai.Content{
		genai.NewContentFromText(string(src), genai.RoleUser),
	}, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(fmt.Sprintf(translatePrompt, languageNames[target]), genai.RoleModel),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    recipeContentSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("genai: generating translation: %w", err)
	}
	text := responseText(res)
	if text == "" {
		return nil, fmt.Errorf("genai: empty translation response")
	}

	var out models.RecipeContent
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("genai: unmarshal translation: %w", err)
	}
	if out.Empty() {
		return nil, fmt.Errorf("genai: translation produced empty content")
	}
	assignItemIDs(&out)
	return &out, nil
}

// GenerateImage renders an illustration for the prompt and stores it through
// the image sink.
func (g *GenAI) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if g.images == nil {
		return "", fmt.Errorf("genai: image storage not configured")
	}
	res, err := g.client.Models.GenerateImages(ctx, g.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return "", fmt.Errorf("genai: generating image: %w", err)
	}
	if len(res.GeneratedImages) == 0 || res.GeneratedImages[0].Image == nil || len(res.GeneratedImages[0].Image.ImageBytes) == 0 {
		return "", fmt.Errorf("genai: empty image response")
	}
	img := res.GeneratedImages[0].Image

	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	url, err := g.images.WriteImage(ctx, mimeType, img.ImageBytes)
	if err != nil {
		return "", fmt.Errorf("genai: storing image: %w", err)
	}
	return url, nil
}

func responseText(res *genai.GenerateContentResponse) string {
	if res == nil || len(res.Candidates) == 0 {
		return ""
	}
	c := res.Candidates[0]
	if c.Content == nil || len(c.Content.Parts) == 0 {
		return ""
	}
	return c.Content.Parts[0].Text
}

// assignItemIDs gives translated ingredients and steps fresh stable ids; the
// model is not asked to carry identity through.
func assignItemIDs(c *models.RecipeContent) {
	for i := range c.Ingredients {
		if c.Ingredients[i].ID == "" {
			c.Ingredients[i].ID = models.NewID()
		}
	}
	for i := range c.Instructions {
		if c.Instructions[i].ID == "" {
			c.Instructions[i].ID = models.NewID()
		}
	}
}

var ingredientSchema = &genai.Schema{
	Type: "array",
	Items: &genai.Schema{
		Type:     "object",
		Required: []string{"name", "amount", "unit", "category"},
		Properties: map[string]*genai.Schema{
			"name":     {Type: "string", Description: "The ingredient name."},
			"amount":   {Type: "number", Description: "The numeric amount, unchanged from the source."},
			"unit":     {Type: "string", Description: "The measurement unit key, unchanged from the source."},
			"category": {Type: "string", Description: "The ingredient section label, translated."},
		},
	},
}

var recipeContentSchema = &genai.Schema{
	Type:     "object",
	Required: []string{"title", "description", "ingredients", "instructions"},
	Properties: map[string]*genai.Schema{
		"title":       {Type: "string", Description: "The recipe title."},
		"description": {Type: "string", Description: "The recipe description."},
		"ingredients": ingredientSchema,
		"instructions": {
			Type: "array",
			Items: &genai.Schema{
				Type:     "object",
				Required: []string{"text", "category"},
				Properties: map[string]*genai.Schema{
					"text":     {Type: "string", Description: "The step text."},
					"category": {Type: "string", Description: "The step section label, translated."},
				},
			},
		},
		"notes":            {Type: "string", Description: "Additional notes, translated."},
		"ovenInstructions": {Type: "string", Description: "Oven temperature and timing, translated."},
	},
}
