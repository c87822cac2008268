package domain

import "slices"

// Unclassified is the prefecture assigned when neither a prefecture column
// nor the address identifies one.
const Unclassified = "その他"

// DefaultSlugFallback replaces the readable part of a slug when a name has no
// ASCII letters or digits.
const DefaultSlugFallback = "store"

// prefectures lists the 47 prefectures in the conventional JIS X 0401 order
// (north to south). The order drives section order on the index page.
var prefectures = []string{
	"北海道", "青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県", "岐阜県",
	"静岡県", "愛知県", "三重県", "滋賀県", "京都府", "大阪府", "兵庫県",
	"奈良県", "和歌山県", "鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県", "福岡県", "佐賀県", "長崎県",
	"熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県",
}

// Prefectures returns a copy of the canonical prefecture list.
func Prefectures() []string {
	return slices.Clone(prefectures)
}

// Aliases holds the accepted column names for each logical field, in
// priority order.
type Aliases struct {
	Name       []string
	Branch     []string
	Address    []string
	Prefecture []string
	Tel        []string
	Product    []string
	Image      []string
}

// Rules is the immutable configuration of field resolution, grouping and
// slugging. Construct it with DefaultRules and adjust the copy as needed.
type Rules struct {
	Aliases      Aliases
	Prefectures  []string
	Unclassified string
	SlugFallback string
}

// DefaultRules returns the column aliases used by the store spreadsheet, the
// canonical prefecture list and the default sentinels. Each call returns
// fresh slices.
func DefaultRules() Rules {
	return Rules{
		Aliases: Aliases{
			Name:       []string{"店舗名1", "店舗名", "店名", "Name", "Store", "StoreName", "タイトル"},
			Branch:     []string{"店舗名2", "支店名", "店名サブ", "サブタイトル", "Branch", "Subtitle"},
			Address:    []string{"住所", "Address"},
			Prefecture: []string{"都道府県", "Prefecture"},
			Tel:        []string{"電話番号", "電話", "TEL", "Tel", "Phone"},
			Product:    []string{"取扱商品", "Product", "Items"},
			Image:      []string{"店舗画像URL", "画像", "写真", "Image", "Photo", "ImageURL"},
		},
		Prefectures:  Prefectures(),
		Unclassified: Unclassified,
		SlugFallback: DefaultSlugFallback,
	}
}

// prefectureRank returns the position of name in the canonical list, or
// len(list) when it is not canonical.
func (r Rules) prefectureRank(name string) int {
	if i := slices.Index(r.Prefectures, name); i >= 0 {
		return i
	}
	return len(r.Prefectures)
}
