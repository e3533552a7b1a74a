package models

import "testing"

func TestLanguageOther(t *testing.T) {
	if LanguageHE.Other() != LanguageES {
		t.Errorf("Other(he) = %s, want es", LanguageHE.Other())
	}
	if LanguageES.Other() != LanguageHE {
		t.Errorf("Other(es) = %s, want he", LanguageES.Other())
	}
	if !LanguageHE.Valid() || !LanguageES.Valid() {
		t.Error("he and es must be valid")
	}
	if Language("en").Valid() {
		t.Error("en must not be valid")
	}
}

func TestContentSlots(t *testing.T) {
	r := &Recipe{ID: "r1"}
	if r.HasContent() {
		t.Error("empty recipe must not report content")
	}

	he := &RecipeContent{Title: "עוגה"}
	r.SetContent(LanguageHE, he)

	if got := r.Content(LanguageHE); got != he {
		t.Errorf("Content(he) = %v, want the set slot", got)
	}
	if got := r.Content(LanguageES); got != nil {
		t.Errorf("Content(es) = %v, want nil", got)
	}
	if !r.HasContent() {
		t.Error("recipe with one slot must report content")
	}
	if got := len(r.Contents()); got != 1 {
		t.Errorf("Contents() returned %d items, want 1", got)
	}
}

func TestDisplayTitleFallback(t *testing.T) {
	r := &Recipe{ID: "r1"}
	r.SetContent(LanguageHE, &RecipeContent{Title: "טירמיסו"})

	if got := r.DisplayTitle(LanguageHE); got != "טירמיסו" {
		t.Errorf("DisplayTitle(he) = %q", got)
	}
	// Absent slot falls back to the present language.
	if got := r.DisplayTitle(LanguageES); got != "טירמיסו" {
		t.Errorf("DisplayTitle(es) = %q, want fallback title", got)
	}
}

func TestRecipeCloneIsDeep(t *testing.T) {
	r := &Recipe{ID: "r1", CategoryID: "c1"}
	r.SetContent(LanguageHE, &RecipeContent{
		Title:       "לחמניות",
		Ingredients: []Ingredient{{ID: "i1", Name: "קמח", Amount: 500, Unit: UnitGram}},
		Instructions: []PrepStep{
			{ID: "s1", Text: "ללוש"},
		},
	})

	clone := r.Clone()
	clone.HE.Title = "changed"
	clone.HE.Ingredients[0].Name = "changed"
	clone.HE.Instructions[0].Text = "changed"
	clone.CategoryID = "changed"

	if r.HE.Title != "לחמניות" || r.HE.Ingredients[0].Name != "קמח" || r.HE.Instructions[0].Text != "ללוש" {
		t.Error("mutating a clone leaked into the original")
	}
	if r.CategoryID != "c1" {
		t.Error("mutating a clone's category leaked into the original")
	}
}

func TestCategoryLabel(t *testing.T) {
	c := &Category{ID: "c1", HE: "קינוחים", ES: "Postres"}
	if got := c.Label(LanguageHE); got != "קינוחים" {
		t.Errorf("Label(he) = %q", got)
	}
	if got := c.Label(LanguageES); got != "Postres" {
		t.Errorf("Label(es) = %q", got)
	}
}
