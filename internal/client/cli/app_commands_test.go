package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/client/api"
	"github.com/meherkandukuri/vegtrack/internal/client/api/apitest"
	"github.com/meherkandukuri/vegtrack/internal/client/cache"
	"github.com/meherkandukuri/vegtrack/internal/client/notices"
	"github.com/meherkandukuri/vegtrack/internal/client/resolve"
	"github.com/meherkandukuri/vegtrack/internal/client/session"
	"github.com/meherkandukuri/vegtrack/internal/client/suggest"
	"github.com/meherkandukuri/vegtrack/internal/client/syncer"
	"github.com/meherkandukuri/vegtrack/internal/client/tracker"
	"github.com/meherkandukuri/vegtrack/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// newTestApp assembles a full App over the in-memory API fake, with scripted
// stdin and captured output.
func newTestApp(t *testing.T, fake *apitest.Fake, inputLines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	db, err := cache.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := testLogger()
	sess := session.New()
	notify := notices.NewCenter(time.Minute)
	store := cache.NewSQLiteStore(db, log)
	resolver := resolve.New(fake, log)
	tr := tracker.New(ctx, fake, sess, store, resolver, notify, log)
	rec := syncer.New(resolver, fake, tr, notify, log)

	sess.OnAuthenticated(func() {
		rec.Trigger(ctx)
		_ = tr.Refresh(ctx)
	})

	var out bytes.Buffer
	app := &App{
		db:         db,
		sess:       sess,
		client:     fake,
		tracker:    tr,
		suggester:  suggest.New(fake, log, suggest.WithDelay(time.Millisecond)),
		reconciler: rec,
		notify:     notify,
		log:        log,
		reader:     readerFromLines(inputLines...),
		out:        &out,
	}
	return app, &out
}

func TestApp_AddOfflineThenList(t *testing.T) {
	ctx := context.Background()
	fake := &apitest.Fake{}
	// name, price, date (default), unit (default), market (none)
	app, out := newTestApp(t, fake, "Tomato", "12.50", "", "", "")

	require.NoError(t, app.Add(ctx))
	require.NoError(t, app.List(ctx))

	assert.Contains(t, out.String(), "Tomato")
	assert.Contains(t, out.String(), "[local]")
	assert.Zero(t, fake.CreatePriceCalls)
}

func TestApp_AddRejectsBadPrice(t *testing.T) {
	fake := &apitest.Fake{}
	app, _ := newTestApp(t, fake, "Tomato", "abc")

	require.Error(t, app.Add(context.Background()))
	assert.Empty(t, app.tracker.Entries())
	assert.Zero(t, fake.CreatePriceCalls)
}

func TestApp_LoginSyncsOfflineEntries(t *testing.T) {
	ctx := context.Background()
	fake := &apitest.Fake{}
	app, _ := newTestApp(t, fake, "Tomato", "12.50", "", "", "")

	require.NoError(t, app.Add(ctx))
	require.Len(t, app.tracker.LocalOnly(ctx), 1)

	// getSimpleText/getPassword seams stand in for the terminal
	origText, origPass := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = origText, origPass })
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return "pat@example.com", nil }
	getPassword = func(io.Writer) ([]byte, error) { return []byte("hunter2"), nil }

	require.NoError(t, app.Login(ctx))

	assert.True(t, app.isLoggedIn())
	assert.Empty(t, app.tracker.LocalOnly(ctx), "login reconciles offline entries")
	assert.Len(t, fake.Prices(), 1)
}

func TestApp_EditAndDeleteByIndex(t *testing.T) {
	ctx := context.Background()
	fake := &apitest.Fake{}
	app, _ := newTestApp(t, fake,
		"Tomato", "5", "2024-03-01", "", "", // add
		"", "6.50", "", "", "", // edit 1: keep name, new price
	)

	require.NoError(t, app.Add(ctx))
	require.NoError(t, app.Edit(ctx, "1"))

	entries := app.tracker.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Price.Equal(decimal.RequireFromString("6.50")))

	require.NoError(t, app.Delete(ctx, "1"))
	assert.Empty(t, app.tracker.Entries())

	require.Error(t, app.Delete(ctx, "1"))
	require.Error(t, app.Delete(ctx, "x"))
}

func TestApp_SuggestPrintsMatches(t *testing.T) {
	fake := &apitest.Fake{}
	fake.SeedItem("Tomato", "kg")
	fake.SeedItem("Roma Tomato", "kg")
	fake.SeedItem("Carrot", "kg")
	app, out := newTestApp(t, fake)

	require.NoError(t, app.Suggest(context.Background(), "tomato"))

	assert.Contains(t, out.String(), "Tomato")
	assert.Contains(t, out.String(), "Roma Tomato")
	assert.NotContains(t, out.String(), "Carrot")
}

func TestApp_ExportRequiresLogin(t *testing.T) {
	fake := &apitest.Fake{}
	fake.SeedItem("Tomato", "kg")
	app, out := newTestApp(t, fake)

	require.NoError(t, app.Export(context.Background(), "Tomato"))
	assert.Contains(t, out.String(), "Log in to export.")
}

func TestApp_CompareSummarizesHistories(t *testing.T) {
	ctx := context.Background()
	fake := &apitest.Fake{}
	leek := fake.SeedItem("Leek", "kg")
	fake.SeedItem("Carrot", "kg")
	_, err := fake.CreatePrice(ctx, leek.ID, api.PricePayload{
		Price: decimal.RequireFromString("4.20"), Date: "2024-03-01", Currency: "USD",
	})
	require.NoError(t, err)
	_, err = fake.CreatePrice(ctx, leek.ID, api.PricePayload{
		Price: decimal.RequireFromString("5.00"), Date: "2024-03-02", Currency: "USD",
	})
	require.NoError(t, err)

	app, out := newTestApp(t, fake)
	app.sess.SetToken("tkn")

	require.NoError(t, app.Compare(ctx, []string{"leek", "carrot"}))

	assert.Contains(t, out.String(), "latest 5.00 USD/kg")
	assert.Contains(t, out.String(), "min 4.20")
	assert.Contains(t, out.String(), "no prices recorded")

	require.Error(t, app.Compare(ctx, []string{"leek", "durian"}))
}

func TestApp_CompareRequiresLogin(t *testing.T) {
	fake := &apitest.Fake{}
	app, out := newTestApp(t, fake)

	require.NoError(t, app.Compare(context.Background(), []string{"leek", "carrot"}))
	assert.Contains(t, out.String(), "Log in to compare.")
}

func TestApp_ExportWritesFile(t *testing.T) {
	fake := &apitest.Fake{}
	fake.SeedItem("Tomato", "kg")
	app, out := newTestApp(t, fake)
	app.sess.SetToken("tkn")

	oldWD, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	require.NoError(t, os.Chdir(t.TempDir()))
	require.NoError(t, app.Export(context.Background(), "tomato"))
	assert.Contains(t, out.String(), "Wrote vegetable-1-prices.csv")

	require.Error(t, app.Export(context.Background(), "durian"))
}
