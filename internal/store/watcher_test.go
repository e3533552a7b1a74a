package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/saborlab/sabor/internal/models"
)

func TestWatchPicksUpExternalWrite(t *testing.T) {
	p := testProvider(t)
	s, err := Open(p, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, s, p, testLogger()) }()

	// Let the watcher register before writing.
	time.Sleep(100 * time.Millisecond)

	external := []*models.Recipe{testRecipe("external", "From outside", models.LanguageES, 42)}
	data, _ := json.Marshal(external)
	if err := p.Save(RecipesKey, data); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		if got := s.Recipes(); len(got) == 1 && got[0].ID == "external" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("watcher never reconciled the external write")
		}
		time.Sleep(25 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil && err != context.Canceled {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Watch did not stop on context cancellation")
	}
}
