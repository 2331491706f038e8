package tracker

import (
	"testing"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/client/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_LocalFirst(t *testing.T) {
	local1 := *models.NewEntry("Tomato", decimal.RequireFromString("12.5"), "2024-01-01", models.UnitKg)
	local2 := *models.NewEntry("Carrot", decimal.RequireFromString("3"), "2024-01-02", models.UnitKg)

	synced := *models.NewEntry("Leek", decimal.RequireFromString("4"), "2024-01-03", models.UnitKg)
	synced.MarkSynced(9, 90)

	price := 7.25
	updated := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	remote := []models.CatalogItem{
		{ID: 1, Name: "Potato", Unit: "kg", LatestPrice: &price, LastUpdated: &updated},
		{ID: 2, Name: "Onion", Unit: ""},
	}

	merged := Merge([]models.Entry{local1, synced, local2}, remote)

	// exactly L's local-only entries unchanged, plus one entry per remote item
	require.Len(t, merged, 4)
	assert.Equal(t, local1, merged[0])
	assert.Equal(t, local2, merged[1])

	potato := merged[2]
	assert.Equal(t, "s-1", potato.LocalID)
	assert.Equal(t, "Potato", potato.Name)
	assert.True(t, potato.Price.Equal(decimal.NewFromFloat(7.25)))
	assert.Equal(t, "2024-02-01", potato.Date)
	require.NotNil(t, potato.CatalogID)
	assert.Equal(t, int64(1), *potato.CatalogID)
	assert.Nil(t, potato.RemoteID, "remote-derived entries carry no price-record id")

	onion := merged[3]
	assert.Equal(t, models.UnitKg, onion.Unit, "missing unit defaults")
	assert.True(t, onion.Price.IsZero())
}

func TestMerge_RemoteDerivedFullyReplaced(t *testing.T) {
	stale := projectCatalogItem(models.CatalogItem{ID: 1, Name: "Potato", Unit: "kg"})
	merged := Merge([]models.Entry{stale}, []models.CatalogItem{{ID: 2, Name: "Onion", Unit: "kg"}})

	require.Len(t, merged, 1)
	assert.Equal(t, "s-2", merged[0].LocalID)
}

func TestMerge_EmptyRemoteKeepsLocals(t *testing.T) {
	local := *models.NewEntry("Tomato", decimal.RequireFromString("1"), "2024-01-01", models.UnitKg)
	merged := Merge([]models.Entry{local}, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, local, merged[0])
}
