package screening

import (
	"sort"
	"strings"
	"unicode"
)

// Uncategorized is the bucket for vocabulary entries without a category.
const Uncategorized = "Uncategorized"

type vocabEntry struct {
	lower     string
	canonical string
	category  string
	words     int
}

// Vocabulary is an immutable skill taxonomy: canonical skill names mapped to
// named categories. Build it once at startup and share it freely; matching
// never mutates it.
type Vocabulary struct {
	entries []vocabEntry
	byLower map[string]*vocabEntry
}

// NewVocabulary builds a vocabulary from a category -> skills mapping.
// Entries are matched longest-phrase-first so multi-word skills win over
// their component words.
func NewVocabulary(byCategory map[string][]string) *Vocabulary {
	v := &Vocabulary{byLower: make(map[string]*vocabEntry)}

	for category, skills := range byCategory {
		if category == "" {
			category = Uncategorized
		}
		for _, skill := range skills {
			lower := strings.ToLower(strings.TrimSpace(skill))
			if lower == "" {
				continue
			}
			if _, dup := v.byLower[lower]; dup {
				continue
			}
			v.entries = append(v.entries, vocabEntry{
				lower:     lower,
				canonical: strings.TrimSpace(skill),
				category:  category,
				words:     len(strings.Fields(lower)),
			})
		}
	}

	sort.Slice(v.entries, func(i, j int) bool {
		a, b := v.entries[i], v.entries[j]
		if a.words != b.words {
			return a.words > b.words
		}
		if len(a.lower) != len(b.lower) {
			return len(a.lower) > len(b.lower)
		}
		return a.lower < b.lower
	})

	for i := range v.entries {
		v.byLower[v.entries[i].lower] = &v.entries[i]
	}
	return v
}

var defaultVocabulary = NewVocabulary(defaultTaxonomy)

// DefaultVocabulary returns the built-in taxonomy.
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary
}

// Category returns the category of a skill, or Uncategorized for skills the
// vocabulary does not know.
func (v *Vocabulary) Category(skill string) string {
	if e, ok := v.byLower[strings.ToLower(strings.TrimSpace(skill))]; ok {
		return e.category
	}
	return Uncategorized
}

// Canonical returns the canonical casing for a skill name, or the input
// unchanged when the vocabulary does not know it.
func (v *Vocabulary) Canonical(skill string) string {
	if e, ok := v.byLower[strings.ToLower(strings.TrimSpace(skill))]; ok {
		return e.canonical
	}
	return skill
}

// ExtractSkills matches the vocabulary against free text. Multi-word phrases
// are matched first and their spans removed before single-word scanning, so
// "Machine Learning" is never double-counted as "Learning". Returns the
// sorted set of canonical skill names and the same set grouped by category.
func (v *Vocabulary) ExtractSkills(text string) ([]string, map[string][]string) {
	working := []rune(strings.ToLower(text))

	var matched []string
	categorized := make(map[string][]string)

	for _, e := range v.entries {
		if !matchAndErase(working, e.lower) {
			continue
		}
		matched = append(matched, e.canonical)
		categorized[e.category] = append(categorized[e.category], e.canonical)
	}

	sort.Strings(matched)
	for _, skills := range categorized {
		sort.Strings(skills)
	}
	return matched, categorized
}

// matchAndErase finds every boundary-delimited occurrence of phrase in the
// working buffer and blanks it out. Reports whether at least one occurrence
// was found.
func matchAndErase(working []rune, phrase string) bool {
	target := []rune(phrase)
	found := false

	for i := 0; i+len(target) <= len(working); i++ {
		if !runesEqual(working[i:i+len(target)], target) {
			continue
		}
		if i > 0 && isTokenRune(working[i-1]) {
			continue
		}
		end := i + len(target)
		if end < len(working) && isTokenRune(working[end]) {
			continue
		}
		for j := i; j < end; j++ {
			working[j] = ' '
		}
		found = true
		i = end - 1
	}
	return found
}

func runesEqual(a, b []rune) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// isTokenRune treats + # . as word characters so "c++", "c#" and "node.js"
// keep their own boundaries.
func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}

// keywordStopWords filters common English words that add noise when no
// vocabulary is supplied.
var keywordStopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "such": true,
	"years": true, "year": true, "experience": true,
}

// ExtractKeywords is the fallback when no vocabulary is available: every
// non-stopword token of three or more characters, lowercased and sorted.
// Tech suffixes like "c++", "c#" and "node.js" survive tokenization.
func ExtractKeywords(text string) []string {
	seen := make(map[string]bool)
	var word strings.Builder

	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 3 && !keywordStopWords[w] {
			seen[w] = true
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	keywords := make([]string, 0, len(seen))
	for w := range seen {
		keywords = append(keywords, w)
	}
	sort.Strings(keywords)
	return keywords
}
