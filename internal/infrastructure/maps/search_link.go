package maps

import (
	"fmt"
	"net/url"
	"strings"
)

const searchBaseURL = "https://www.google.com/maps/search/"

// SearchURL は住所からGoogle Mapsの検索URLを構築する
// 例: https://www.google.com/maps/search/?api=1&query=2%20Quincy%20St%2C%20Nashua%2C%20NH
func SearchURL(address string) string {
	return fmt.Sprintf("%s?api=1&query=%s", searchBaseURL, encodeURIComponent(address))
}

// encodeURIComponent はブラウザのencodeURIComponentと同じ規則でエンコードする
// url.QueryEscapeは空白を"+"にするため"%20"へ置き換え、予約されない記号は戻す
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	replacer := strings.NewReplacer(
		"+", "%20",
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	)
	return replacer.Replace(escaped)
}
