package view

import (
	"testing"
	"time"

	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/testutil"
	"github.com/saborlab/sabor/internal/translate"
)

func testManager(t *testing.T, fake *testutil.FakeTranslator) (*Manager, *translate.Coordinator, *Session) {
	t.Helper()
	s := testutil.TestStore(t)
	coord := translate.New(s, fake, testutil.Logger())
	m := NewManager(s, coord, testutil.Logger())
	sess := m.Open(models.LanguageHE)
	t.Cleanup(m.CloseAll)
	return m, coord, sess
}

func findItem(snap Snapshot, id string) (Item, bool) {
	for _, item := range snap.Items {
		if item.Recipe.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

func TestSessionDebouncesTextQuery(t *testing.T) {
	m, _, sess := testManager(t, &testutil.FakeTranslator{})
	_ = m

	before := len(sess.Snapshot().Items)
	if before == 0 {
		t.Fatal("seeded catalog is empty")
	}

	sess.SetQuery("no-recipe-matches-this")
	// Inside the idle interval the previous view stands.
	if got := len(sess.Snapshot().Items); got != before {
		t.Errorf("query applied before the debounce settled: %d items", got)
	}

	time.Sleep(400 * time.Millisecond)
	if got := len(sess.Snapshot().Items); got != 0 {
		t.Errorf("%d items after the query settled, want 0", got)
	}
}

func TestSessionFiltersApplyImmediately(t *testing.T) {
	m, _, sess := testManager(t, &testutil.FakeTranslator{})
	_ = m

	sess.SetCategory("cat-desserts")
	for _, item := range sess.Snapshot().Items {
		if item.Recipe.CategoryID != "cat-desserts" {
			t.Errorf("recipe %s leaked through the category filter", item.Recipe.ID)
		}
	}

	sess.SetCategory("all")
	if len(sess.Snapshot().Items) == 0 {
		t.Error("clearing the category filter returned nothing")
	}
}

func TestSessionMarksTranslatingAndResolves(t *testing.T) {
	fake := &testutil.FakeTranslator{Delay: 50 * time.Millisecond}
	m, _, sess := testManager(t, fake)
	_ = m

	// Seed recipes are Hebrew-only; switching the view to Spanish exposes
	// content gaps.
	sess.SetLanguage(models.LanguageES)

	snap := sess.Snapshot()
	item, ok := findItem(snap, "tiramisu")
	if !ok {
		t.Fatal("seed recipe missing from the view")
	}
	if item.Recipe.ES != nil {
		t.Skip("translation already resolved")
	}
	if !item.Translating {
		t.Error("gap displayed without the translating state")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		item, _ = findItem(sess.Snapshot(), "tiramisu")
		if item.Recipe.ES != nil && !item.Translating {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("translation never resolved in the view")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestSessionDoesNotTranslateInActiveLanguage(t *testing.T) {
	fake := &testutil.FakeTranslator{}
	m, _, sess := testManager(t, fake)
	_ = m

	// Hebrew view over Hebrew-seeded recipes: no gaps, no fetches.
	snap := sess.Snapshot()
	for _, item := range snap.Items {
		if item.Translating {
			t.Errorf("recipe %s marked translating without a gap", item.Recipe.ID)
		}
	}
	if fake.Calls.Load() != 0 {
		t.Errorf("translator called %d times with no gaps displayed", fake.Calls.Load())
	}
}

func TestManagerRecomputesOnStoreChange(t *testing.T) {
	s := testutil.TestStore(t)
	coord := translate.New(s, &testutil.FakeTranslator{}, testutil.Logger())
	m := NewManager(s, coord, testutil.Logger())
	defer m.CloseAll()
	sess := m.Open(models.LanguageHE)

	// Drain anything emitted during setup.
	for {
		select {
		case <-sess.Events():
			continue
		default:
		}
		break
	}

	if err := s.AddRecipe(testutil.Recipe("fresh", "חדש", models.LanguageHE, 999)); err != nil {
		t.Fatal(err)
	}

	select {
	case snap := <-sess.Events():
		if _, ok := findItem(snap, "fresh"); !ok {
			t.Error("recomputed snapshot is missing the new recipe")
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot emitted after a collection change")
	}
}

func TestSessionClose(t *testing.T) {
	m, _, sess := testManager(t, &testutil.FakeTranslator{Delay: 100 * time.Millisecond})

	sess.SetLanguage(models.LanguageES) // kick off fetches
	m.Close(sess.ID())

	select {
	case <-sess.Done():
	default:
		t.Fatal("Done not closed after Close")
	}
	if _, ok := m.Get(sess.ID()); ok {
		t.Error("closed session still registered")
	}
}
