package offline

import (
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeParquet[T any](t *testing.T, name string, rows []T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, parquet.WriteFile(path, rows))
	return path
}

func snapshotTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestLoad_PersonalCollection(t *testing.T) {
	// Rows out of rank order on purpose: ordering comes from the rank
	// column, not file order.
	path := writeParquet(t, "recommendations.parquet", []personalRow{
		{UserID: 26, ItemID: 103, Rank: 3},
		{UserID: 26, ItemID: 101, Rank: 1},
		{UserID: 7, ItemID: 301, Rank: 1},
		{UserID: 26, ItemID: 102, Rank: 2},
	})

	collection, err := Load(CollectionPersonal, path, PersonalColumns, snapshotTestLogger())
	require.NoError(t, err)

	assert.Equal(t, CollectionPersonal, collection.Name)
	assert.Equal(t, 2, collection.Size())
	assert.Equal(t, []int64{101, 102, 103}, collection.Users[26])
	assert.Equal(t, []int64{301}, collection.Users[7])
}

func TestLoad_DefaultCollection(t *testing.T) {
	path := writeParquet(t, "top_popular.parquet", []defaultRow{
		{ItemID: 201},
		{ItemID: 202},
		{ItemID: 203},
	})

	collection, err := Load(CollectionDefault, path, DefaultColumns, snapshotTestLogger())
	require.NoError(t, err)

	assert.Equal(t, CollectionDefault, collection.Name)
	assert.Equal(t, 1, collection.Size())
	assert.Equal(t, []int64{201, 202, 203}, collection.Items)
}

func TestLoad_MissingColumn(t *testing.T) {
	// A default-shaped file does not carry user_id or rank.
	path := writeParquet(t, "top_popular.parquet", []defaultRow{
		{ItemID: 201},
	})

	_, err := Load(CollectionPersonal, path, PersonalColumns, snapshotTestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(CollectionDefault, filepath.Join(t.TempDir(), "absent.parquet"), DefaultColumns, snapshotTestLogger())
	require.Error(t, err)
}

func TestLoad_UnknownCollection(t *testing.T) {
	path := writeParquet(t, "top_popular.parquet", []defaultRow{
		{ItemID: 201},
	})

	_, err := Load("seasonal", path, DefaultColumns, snapshotTestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown collection")
}
