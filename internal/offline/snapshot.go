package offline

import (
	"fmt"
	"os"
	"sort"

	"github.com/parquet-go/parquet-go"
	"github.com/sirupsen/logrus"
)

const (
	// CollectionPersonal holds per-user rankings keyed by user ID.
	CollectionPersonal = "personal"
	// CollectionDefault holds the single global fallback ranking served to
	// users without a personal entry.
	CollectionDefault = "default"
)

var (
	PersonalColumns = []string{"user_id", "item_id", "rank"}
	DefaultColumns  = []string{"item_id"}
)

// Collection is one named partition of the offline snapshot. Exactly one of
// Users or Items is populated depending on the collection kind. Collections
// are immutable after Load returns.
type Collection struct {
	Name  string
	Users map[int64][]int64
	Items []int64
}

// Size returns the number of ranked lists held by the collection.
func (c *Collection) Size() int {
	if c.Name == CollectionDefault {
		if len(c.Items) > 0 {
			return 1
		}
		return 0
	}
	return len(c.Users)
}

type personalRow struct {
	UserID int64 `parquet:"user_id"`
	ItemID int64 `parquet:"item_id"`
	Rank   int32 `parquet:"rank"`
}

type defaultRow struct {
	ItemID int64 `parquet:"item_id"`
}

// Load reads one parquet snapshot into an in-memory collection. It is called
// once per collection at startup; a failure here is fatal for the process.
func Load(name, path string, columns []string, logger *logrus.Logger) (*Collection, error) {
	if err := validateColumns(path, columns); err != nil {
		return nil, fmt.Errorf("snapshot %q (%s): %w", name, path, err)
	}

	collection := &Collection{Name: name}

	switch name {
	case CollectionPersonal:
		rows, err := parquet.ReadFile[personalRow](path)
		if err != nil {
			return nil, fmt.Errorf("snapshot %q (%s): %w", name, path, err)
		}

		type rankedItem struct {
			item int64
			rank int32
		}
		byUser := make(map[int64][]rankedItem)
		for _, row := range rows {
			byUser[row.UserID] = append(byUser[row.UserID], rankedItem{item: row.ItemID, rank: row.Rank})
		}

		collection.Users = make(map[int64][]int64, len(byUser))
		for userID, ranked := range byUser {
			sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].rank < ranked[j].rank })
			items := make([]int64, len(ranked))
			for i, r := range ranked {
				items[i] = r.item
			}
			collection.Users[userID] = items
		}

	case CollectionDefault:
		rows, err := parquet.ReadFile[defaultRow](path)
		if err != nil {
			return nil, fmt.Errorf("snapshot %q (%s): %w", name, path, err)
		}

		collection.Items = make([]int64, len(rows))
		for i, row := range rows {
			collection.Items[i] = row.ItemID
		}

	default:
		return nil, fmt.Errorf("unknown collection %q", name)
	}

	logger.WithFields(logrus.Fields{
		"collection": name,
		"path":       path,
		"entries":    collection.Size(),
	}).Info("Loaded offline recommendation snapshot")

	return collection, nil
}

// validateColumns checks that the snapshot file actually carries the columns
// the collection schema expects, so a misconfigured path fails at startup
// with a readable error instead of a decode failure.
func validateColumns(path string, columns []string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return err
	}

	schema := pf.Schema()
	for _, column := range columns {
		if _, ok := schema.Lookup(column); !ok {
			return fmt.Errorf("missing column %q", column)
		}
	}

	return nil
}
