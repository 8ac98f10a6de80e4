package shariah

import "strings"

// sectorBlacklist holds non-compliant business sectors, matched by
// case-insensitive substring against a stock's industry or sector.
// Slice, not map: evaluation order stays deterministic.
var sectorBlacklist = []string{
	"banks",
	"insurance",
	"capital markets",
	"credit services",
	"mortgage",
	"beverages - wineries & distilleries",
	"beverages - brewers",
	"tobacco",
	"gambling",
	"casinos",
	"defense",
	"adult entertainment",
}

// keywordBlacklist holds non-compliant keywords, matched as whole
// space-delimited words against a stock's business description.
var keywordBlacklist = []string{
	"alcohol",
	"liquor",
	"wine",
	"beer",
	"brewery",
	"pork",
	"gambling",
	"casino",
	"betting",
	"tobacco",
	"interest",
	"lending",
	"banking",
	"adult",
}

// ScreenActivity is the built-in activity screen: a pure lookup against the
// fixed blacklists. Sector match takes priority; the keyword scan only runs
// when no sector matched. The keyword scan is a whole-word heuristic on raw
// description text and can misfire on unrelated uses of a word.
func ScreenActivity(industry, sector, description string) (bool, string) {
	industryLower := strings.ToLower(industry)
	sectorLower := strings.ToLower(sector)
	descriptionLower := strings.ToLower(description)

	for _, blacklisted := range sectorBlacklist {
		if strings.Contains(industryLower, blacklisted) || strings.Contains(sectorLower, blacklisted) {
			return false, "Sector: " + titleCase(blacklisted)
		}
	}

	padded := " " + descriptionLower + " "
	for _, keyword := range keywordBlacklist {
		if strings.Contains(padded, " "+keyword+" ") {
			return false, "Keyword: " + keyword
		}
	}

	return true, "OK"
}

// titleCase upper-cases the first letter of each space-delimited word.
// Good enough for the ASCII blacklist entries.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
