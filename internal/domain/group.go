package domain

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// GroupByPrefecture partitions stores by prefecture. Stores inside a group
// are sorted by name with Japanese collation; equal names keep input order.
// Groups follow rules.Prefectures; prefectures outside that list come last,
// ordered among themselves by Japanese collation.
func GroupByPrefecture(stores []Store, rules Rules) []Group {
	// Collators are not safe for concurrent use.
	col := collate.New(language.Japanese)

	index := make(map[string]int)
	var groups []Group
	for _, s := range stores {
		i, ok := index[s.Prefecture]
		if !ok {
			i = len(groups)
			index[s.Prefecture] = i
			groups = append(groups, Group{Prefecture: s.Prefecture})
		}
		groups[i].Stores = append(groups[i].Stores, s)
	}

	for i := range groups {
		slices.SortStableFunc(groups[i].Stores, func(a, b Store) int {
			return col.CompareString(a.Name, b.Name)
		})
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		ra, rb := rules.prefectureRank(a.Prefecture), rules.prefectureRank(b.Prefecture)
		if ra != rb {
			return ra - rb
		}
		return col.CompareString(a.Prefecture, b.Prefecture)
	})
	return groups
}

// BuildDirectory assembles the run result from resolved stores.
func BuildDirectory(stores []Store, dropped int, rules Rules) Directory {
	return Directory{
		Stores:      stores,
		Groups:      GroupByPrefecture(stores, rules),
		Dropped:     dropped,
		GeneratedAt: clock.Now().UTC(),
	}
}
