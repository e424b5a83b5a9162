package screening

import (
	"math"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var monthIndex = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"sept": time.September, "oct": time.October, "nov": time.November,
	"dec": time.December,
}

var (
	monthRangeRe = regexp.MustCompile(`(?i)\b([a-z]{3,9})\.?,?\s*((?:19|20)\d{2})\s*(?:-|–|—|to|till|until)\s*(present|current|now|(?:[a-z]{3,9})\.?,?\s*(?:19|20)\d{2})\b`)
	yearRangeRe  = regexp.MustCompile(`\b((?:19|20)\d{2})\s*(?:-|–|—|to)\s*((?:19|20)\d{2}|[Pp]resent|[Cc]urrent)\b`)
	directExpRe  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*years?(?:\s+of)?\s+(?:\w+\s+){0,2}?experience`)
)

// YearsOfExperience scans all detected date ranges, accumulates months and
// converts to years rounded to one decimal. Falls back to a direct
// "X years experience" pattern, then to 0.0.
func YearsOfExperience(text string) float64 {
	return yearsOfExperienceAt(text, time.Now())
}

func yearsOfExperienceAt(text string, now time.Time) float64 {
	totalMonths := 0
	matchedAny := false

	// Month ranges are consumed first; whatever is left is scanned for bare
	// year ranges so "Jan 2020 - Mar 2021" is never counted twice.
	remaining := []byte(text)

	for _, idx := range monthRangeRe.FindAllStringSubmatchIndex(text, -1) {
		startMonth, ok := parseMonth(text[idx[2]:idx[3]])
		if !ok {
			continue
		}
		startYear, _ := strconv.Atoi(text[idx[4]:idx[5]])

		endMonth, endYear, ok := parseRangeEnd(text[idx[6]:idx[7]], now)
		if !ok {
			continue
		}

		months := (endYear-startYear)*12 + int(endMonth) - int(startMonth)
		if months < 0 {
			months = 0
		}
		totalMonths += months
		matchedAny = true

		for i := idx[0]; i < idx[1]; i++ {
			remaining[i] = ' '
		}
	}

	for _, m := range yearRangeRe.FindAllStringSubmatch(string(remaining), -1) {
		startYear, _ := strconv.Atoi(m[1])
		endYear := now.Year()
		if y, err := strconv.Atoi(m[2]); err == nil {
			endYear = y
		}
		months := (endYear - startYear) * 12
		if months < 0 {
			months = 0
		}
		totalMonths += months
		matchedAny = true
	}

	if matchedAny {
		return math.Round(float64(totalMonths)/12.0*10) / 10
	}

	if m := directExpRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v >= 0 {
			return math.Round(v*10) / 10
		}
	}
	return 0.0
}

func parseMonth(s string) (time.Month, bool) {
	s = strings.ToLower(s)
	if len(s) > 4 {
		s = s[:3]
	}
	m, ok := monthIndex[s]
	return m, ok
}

func parseRangeEnd(s string, now time.Time) (time.Month, int, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch lower {
	case "present", "current", "now":
		return now.Month(), now.Year(), true
	}
	fields := strings.Fields(strings.NewReplacer(".", " ", ",", " ").Replace(lower))
	if len(fields) != 2 {
		return 0, 0, false
	}
	month, ok := parseMonth(fields[0])
	if !ok {
		return 0, 0, false
	}
	year, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, false
	}
	return month, year, true
}

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// emailDomainFixes repairs the typo'd mail domains that show up in resumes.
var emailDomainFixes = map[string]string{
	"gmaill.com":  "gmail.com",
	"gamil.com":   "gmail.com",
	"gmial.com":   "gmail.com",
	"gnail.com":   "gmail.com",
	"yaho.com":    "yahoo.com",
	"yahooo.com":  "yahoo.com",
	"hotmial.com": "hotmail.com",
	"hotmil.com":  "hotmail.com",
	"outlok.com":  "outlook.com",
}

// Email returns the first email address found, with light domain typo
// correction, or NotFound.
func Email(text string) string {
	match := emailRe.FindString(text)
	if match == "" {
		return NotFound
	}
	at := strings.LastIndex(match, "@")
	local, domain := match[:at], strings.ToLower(match[at+1:])
	if fixed, ok := emailDomainFixes[domain]; ok {
		domain = fixed
	}
	return local + "@" + domain
}

var phoneRe = regexp.MustCompile(`(?:\+\d{1,3}[\s\-]?)?(?:\(\d{2,4}\)[\s\-]?)?\d{3,5}[\s\-]?\d{3,4}(?:[\s\-]?\d{1,4})?`)

// Phone returns the first plausible phone number (10-14 digits), or NotFound.
func Phone(text string) string {
	for _, candidate := range phoneRe.FindAllString(text, -1) {
		digits := 0
		for _, r := range candidate {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		if digits >= 10 && digits <= 14 {
			return strings.TrimSpace(candidate)
		}
	}
	return NotFound
}

// Location matches the text against the fixed city gazetteer,
// longest-match-first so "New Delhi" never degrades to "Delhi". Multiple
// hits are deduplicated, sorted and joined.
func Location(text string) string {
	working := []rune(strings.ToLower(text))

	cities := make([]string, len(cityGazetteer))
	copy(cities, cityGazetteer)
	sort.Slice(cities, func(i, j int) bool {
		if len(cities[i]) != len(cities[j]) {
			return len(cities[i]) > len(cities[j])
		}
		return cities[i] < cities[j]
	})

	var found []string
	for _, city := range cities {
		if matchAndErase(working, strings.ToLower(city)) {
			found = append(found, city)
		}
	}
	if len(found) == 0 {
		return NotFound
	}
	sort.Strings(found)
	return strings.Join(found, ", ")
}

// nameBoilerplate marks header lines that cannot be a person's name.
var nameBoilerplate = []string{
	"resume", "curriculum", "vitae", "email", "e-mail", "phone", "mobile",
	"contact", "address", "linkedin", "github", "portfolio", "profile",
	"summary", "objective", "http", "www.",
}

// Name scans the first few lines for a short proper-noun sequence and falls
// back to the sanitized file name when nothing qualifies.
func Name(text, fileName string) string {
	lines := Lines(text)
	limit := 8
	if len(lines) < limit {
		limit = len(lines)
	}

scan:
	for _, line := range lines[:limit] {
		lower := strings.ToLower(line)
		for _, term := range nameBoilerplate {
			if strings.Contains(lower, term) {
				continue scan
			}
		}
		if strings.ContainsAny(line, "@0123456789|/:") {
			continue
		}
		words := strings.Fields(line)
		if len(words) == 0 || len(words) > 4 || len(line) > 40 {
			continue
		}
		for _, w := range words {
			r := []rune(w)[0]
			if !unicode.IsUpper(r) {
				continue scan
			}
		}
		return line
	}
	return nameFromFile(fileName)
}

func nameFromFile(fileName string) string {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)

	var b strings.Builder
	for _, r := range base {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	words := strings.Fields(b.String())
	if len(words) == 0 {
		return NotFound
	}
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

var cgpaRe = regexp.MustCompile(`(?i)(?:cgpa|gpa|grade)\s*[:=\-]?\s*(\d+(?:\.\d+)?)(?:\s*/\s*(\d+(?:\.\d+)?))?|(\d+(?:\.\d+)?)(?:\s*/\s*(\d+(?:\.\d+)?))?\s*(?:cgpa|gpa)`)

// CGPA extracts a grade and normalizes it to a 4.0 scale. Returns nil, not
// zero, when nothing is found: absence and a zero grade are different facts
// and scoring treats them differently.
func CGPA(text string) *float64 {
	m := cgpaRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	rawStr, denomStr := m[1], m[2]
	if rawStr == "" {
		rawStr, denomStr = m[3], m[4]
	}

	raw, err := strconv.ParseFloat(rawStr, 64)
	if err != nil {
		return nil
	}

	var normalized float64
	switch {
	case denomStr != "":
		denom, err := strconv.ParseFloat(denomStr, 64)
		if err != nil || denom <= 0 {
			return nil
		}
		normalized = raw / denom * 4.0
	case raw <= 4.0:
		normalized = raw
	case raw <= 10.0:
		normalized = raw / 10.0 * 4.0
	default:
		return nil
	}

	if normalized < 0 || normalized > 4.0 {
		return nil
	}
	normalized = math.Round(normalized*100) / 100
	return &normalized
}

// Languages matches the spoken-language gazetteer, scoped to a dedicated
// "Languages" section when one exists, otherwise against the whole text.
func Languages(text string) []string {
	scope := SectionText(text, languageHeaders)
	if scope == "" {
		scope = text
	}

	working := []rune(strings.ToLower(scope))
	var found []string
	for _, lang := range spokenLanguages {
		if matchAndErase(working, strings.ToLower(lang)) {
			found = append(found, lang)
		}
	}
	sort.Strings(found)
	return found
}
