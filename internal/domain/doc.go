// Package domain models the store listings published by the store locator.
//
// # Data Source
//
// Listings are maintained by hand in a shared spreadsheet and exported as CSV
// (File > Download > CSV, or the export?format=csv URL of the sheet). The
// first row is the header; every subsequent row describes one store. Column
// names are not fixed: editors have used Japanese and English headers, with
// and without numbering, so each logical field is resolved through an ordered
// alias list (see [DefaultRules]).
//
// # Field Resolution
//
// A field is resolved by an [Extractor], an ordered chain of [Rule] values.
// The first rule that yields a non-blank value wins:
//
//	name:       exact alias -> case-insensitive alias
//	prefecture: exact alias -> case-insensitive alias -> address prefix -> その他
//
// The address-prefix rule compares the start of the address against the 47
// canonical prefectures, e.g. "東京都渋谷区神南1-1" -> "東京都". It is a prefix
// match, so "京都府" never matches inside "東京都".
//
// Rows whose name resolves to "" are dropped. They are usually trailing
// spreadsheet rows that only carry formulas or formatting.
//
// # Slugs
//
// Every store gets a slug used as its detail page filename and DOM anchor:
//
//	"Cafe Sakura" + "Shibuya"  ->  "cafe-sakura-shibuya-ef80b4c6"
//	"さくら珈琲"   + ""         ->  "store-f4dc4118"
//
// The readable part is the NFKC-normalized, ASCII-only, lower-cased name and
// branch; the suffix is the first 8 hex characters of SHA-1 over the raw
// "name|branch". The suffix keeps all-Japanese names distinct. Collisions are
// possible in the 32-bit suffix space; cmd/validate reports them. See [Slug].
//
// # Grouping
//
// Stores are grouped by prefecture. Groups follow the canonical north-to-south
// order of the prefecture list; values outside the list (including the
// unclassified sentinel) come last, ordered by Japanese collation. Stores
// inside a group are ordered by name with Japanese collation, so "あ" sorts
// before "か". See [GroupByPrefecture].
package domain
