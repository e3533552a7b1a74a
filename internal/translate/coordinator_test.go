package translate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/testutil"
)

func TestEnsureContentReturnsPresentSlot(t *testing.T) {
	s := testutil.TestStore(t)
	fake := &testutil.FakeTranslator{}
	c := New(s, fake, testutil.Logger())

	r := testutil.Recipe("r1", "Tarta", models.LanguageES, 1)
	if err := s.AddRecipe(r); err != nil {
		t.Fatal(err)
	}

	got, err := c.EnsureContent(context.Background(), "r1", models.LanguageES)
	if err != nil {
		t.Fatalf("EnsureContent: %v", err)
	}
	if got.Title != "Tarta" {
		t.Errorf("title = %q", got.Title)
	}
	if fake.Calls.Load() != 0 {
		t.Error("gateway called although the slot was already present")
	}
}

func TestEnsureContentTranslatesAndMerges(t *testing.T) {
	s := testutil.TestStore(t)
	fake := &testutil.FakeTranslator{}
	c := New(s, fake, testutil.Logger())

	var notifiedID string
	var notifiedLang models.Language
	c.SetNotify(func(recipeID string, lang models.Language) {
		notifiedID, notifiedLang = recipeID, lang
	})

	if err := s.AddRecipe(testutil.Recipe("r1", "עוגה", models.LanguageHE, 1)); err != nil {
		t.Fatal(err)
	}

	got, err := c.EnsureContent(context.Background(), "r1", models.LanguageES)
	if err != nil {
		t.Fatalf("EnsureContent: %v", err)
	}
	if got.Title != "es:עוגה" {
		t.Errorf("translated title = %q", got.Title)
	}

	stored, _ := s.RecipeByID("r1")
	if stored.ES == nil || stored.ES.Title != "es:עוגה" {
		t.Error("translation was not merged into the collection")
	}
	if stored.HE == nil || stored.HE.Title != "עוגה" {
		t.Error("source slot was disturbed by the merge")
	}
	if notifiedID != "r1" || notifiedLang != models.LanguageES {
		t.Errorf("notify hook got (%q, %q)", notifiedID, notifiedLang)
	}
}

func TestEnsureContentSharesOneFlight(t *testing.T) {
	s := testutil.TestStore(t)
	fake := &testutil.FakeTranslator{Delay: 50 * time.Millisecond}
	c := New(s, fake, testutil.Logger())

	if err := s.AddRecipe(testutil.Recipe("r1", "עוגה", models.LanguageHE, 1)); err != nil {
		t.Fatal(err)
	}

	const observers = 5
	var wg sync.WaitGroup
	errs := make([]error, observers)
	for i := 0; i < observers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.EnsureContent(context.Background(), "r1", models.LanguageES)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("observer %d: %v", i, err)
		}
	}
	if got := fake.Calls.Load(); got != 1 {
		t.Errorf("gateway called %d times for one gap, want 1 shared flight", got)
	}
}

func TestEnsureContentFailureStoresNothingAndRetries(t *testing.T) {
	s := testutil.TestStore(t)
	fake := &testutil.FakeTranslator{Fail: true}
	c := New(s, fake, testutil.Logger())

	if err := s.AddRecipe(testutil.Recipe("r1", "עוגה", models.LanguageHE, 1)); err != nil {
		t.Fatal(err)
	}

	if _, err := c.EnsureContent(context.Background(), "r1", models.LanguageES); err == nil {
		t.Fatal("EnsureContent succeeded although the gateway failed")
	}
	stored, _ := s.RecipeByID("r1")
	if stored.ES != nil {
		t.Error("failed translation left partial content in the collection")
	}

	// No failure marker, no backoff: the next request goes straight back to
	// the gateway.
	fake.Fail = false
	if _, err := c.EnsureContent(context.Background(), "r1", models.LanguageES); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if got := fake.Calls.Load(); got != 2 {
		t.Errorf("gateway called %d times, want 2 (failure then retry)", got)
	}
}

func TestEnsureContentCancelledCallerDetaches(t *testing.T) {
	s := testutil.TestStore(t)
	fake := &testutil.FakeTranslator{Delay: 60 * time.Millisecond}
	c := New(s, fake, testutil.Logger())

	if err := s.AddRecipe(testutil.Recipe("r1", "עוגה", models.LanguageHE, 1)); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.EnsureContent(ctx, "r1", models.LanguageES)
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("cancelled caller got %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return promptly")
	}

	// The flight is detached from the caller and its result still lands.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if r, _ := s.RecipeByID("r1"); r != nil && r.ES != nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("detached flight never merged its result")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
