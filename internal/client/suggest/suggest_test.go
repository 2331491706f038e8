package suggest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/client/api/apitest"
	"github.com/meherkandukuri/vegtrack/internal/client/models"
	"github.com/meherkandukuri/vegtrack/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSuggest_DebouncesRapidKeystrokes(t *testing.T) {
	fake := &apitest.Fake{}
	fake.SeedItem("Tomato", "kg")

	s := New(fake, testLogger(), WithDelay(30*time.Millisecond))

	got := make(chan []models.CatalogItem, 1)
	deliver := func(items []models.CatalogItem) { got <- items }

	// N keystrokes inside the quiet window -> at most one lookup for the last.
	s.Suggest(context.Background(), "t", deliver)
	s.Suggest(context.Background(), "to", deliver)
	s.Suggest(context.Background(), "tom", deliver)

	select {
	case items := <-got:
		require.Len(t, items, 1)
		assert.Equal(t, "Tomato", items[0].Name)
	case <-time.After(2 * time.Second):
		t.Fatal("no suggestions delivered")
	}
	assert.Equal(t, 1, fake.SearchCalls)
}

func TestSuggest_EmptyQueryShortCircuits(t *testing.T) {
	fake := &apitest.Fake{}
	s := New(fake, testLogger(), WithDelay(10*time.Millisecond))

	var items []models.CatalogItem
	delivered := false
	s.Suggest(context.Background(), "", func(got []models.CatalogItem) {
		items = got
		delivered = true
	})

	assert.True(t, delivered, "empty query delivers synchronously")
	assert.Empty(t, items)
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, fake.SearchCalls, "empty query must not hit the remote")
}

func TestSuggest_LookupFailureDeliversEmpty(t *testing.T) {
	fake := &apitest.Fake{ErrSearch: errors.New("down")}
	s := New(fake, testLogger(), WithDelay(5*time.Millisecond))

	got := make(chan []models.CatalogItem, 1)
	s.Suggest(context.Background(), "tom", func(items []models.CatalogItem) { got <- items })

	select {
	case items := <-got:
		assert.Empty(t, items)
	case <-time.After(2 * time.Second):
		t.Fatal("no delivery")
	}
}

func TestSuggest_CapsResultsAtSix(t *testing.T) {
	fake := &apitest.Fake{}
	for i := 0; i < 10; i++ {
		fake.SeedItem("Tomato", "kg")
	}
	s := New(fake, testLogger(), WithDelay(5*time.Millisecond))

	got := make(chan []models.CatalogItem, 1)
	s.Suggest(context.Background(), "tom", func(items []models.CatalogItem) { got <- items })

	select {
	case items := <-got:
		assert.Len(t, items, 6)
	case <-time.After(2 * time.Second):
		t.Fatal("no delivery")
	}
}

func TestSuggest_CancelDropsPendingLookup(t *testing.T) {
	fake := &apitest.Fake{}
	fake.SeedItem("Tomato", "kg")
	s := New(fake, testLogger(), WithDelay(20*time.Millisecond))

	s.Suggest(context.Background(), "tom", func([]models.CatalogItem) {
		t.Error("cancelled lookup must not deliver")
	})
	s.Cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, fake.SearchCalls)
}
