package screening

import (
	"strings"
)

var (
	educationHeaders = []string{
		"education", "academic background", "academics",
		"educational qualifications", "qualifications",
	}
	experienceHeaders = []string{
		"work experience", "professional experience", "employment history",
		"work history", "experience",
	}
	projectHeaders = []string{
		"projects", "personal projects", "academic projects", "key projects",
		"selected projects",
	}
	skillHeaders = []string{
		"skills", "technical skills", "core competencies", "technologies",
	}
	languageHeaders = []string{
		"languages", "languages known", "spoken languages",
	}
	certificationHeaders = []string{
		"certifications", "certificates", "courses", "achievements",
		"awards", "interests", "hobbies", "references", "declaration",
	}
)

// allSectionHeaders bounds every section scan: a new known header closes the
// current section.
var allSectionHeaders = func() []string {
	var all []string
	for _, group := range [][]string{
		educationHeaders, experienceHeaders, projectHeaders, skillHeaders,
		languageHeaders, certificationHeaders,
	} {
		all = append(all, group...)
	}
	return all
}()

// isSectionHeader reports whether a line is one of the given headers. Header
// lines are short, optionally colon-terminated, matched case-insensitively.
func isSectionHeader(line string, headers []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(line))
	normalized = strings.TrimSuffix(normalized, ":")
	normalized = strings.TrimSpace(normalized)
	if normalized == "" || len(normalized) > 40 {
		return false
	}
	for _, h := range headers {
		if normalized == h {
			return true
		}
	}
	return false
}

// SectionText returns the body of the first section labeled with one of the
// given headers, up to the next known section header. Empty string when the
// section does not exist.
func SectionText(text string, headers []string) string {
	lines := Lines(text)

	start := -1
	for i, line := range lines {
		if isSectionHeader(line, headers) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return ""
	}

	end := len(lines)
	for i := start; i < len(lines); i++ {
		if isSectionHeader(lines[i], allSectionHeaders) {
			end = i
			break
		}
	}
	return strings.Join(lines[start:end], "\n")
}

// Education returns the education section as free-form text, or NotFound.
func Education(text string) string {
	section := strings.TrimSpace(SectionText(text, educationHeaders))
	if section == "" {
		return NotFound
	}
	return section
}

// WorkHistory segments the experience section into discrete entries. A line
// carrying a date range closes an entry; the entry's first line is split on
// common "Title at Company" separators. Tolerant of missing sections:
// returns an empty slice, never fails.
func WorkHistory(text string) []WorkEntry {
	section := SectionText(text, experienceHeaders)
	if section == "" {
		return nil
	}

	var entries []WorkEntry
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		if e, ok := buildWorkEntry(current); ok {
			entries = append(entries, e)
		}
		current = nil
	}

	for _, line := range Lines(section) {
		if lineHasDateRange(line) && containsDateRange(current) {
			// A second dated line starts a new entry. The line right before
			// it is usually the new entry's title, so it moves along.
			var carry []string
			if n := len(current); n > 1 && !lineHasDateRange(current[n-1]) {
				carry = []string{current[n-1]}
				current = current[:n-1]
			}
			flush()
			current = carry
		}
		current = append(current, line)
		if len(current) >= 6 {
			flush()
		}
	}
	flush()
	return entries
}

func lineHasDateRange(line string) bool {
	return monthRangeRe.MatchString(line) || yearRangeRe.MatchString(line)
}

func containsDateRange(lines []string) bool {
	for _, l := range lines {
		if lineHasDateRange(l) {
			return true
		}
	}
	return false
}

func buildWorkEntry(lines []string) (WorkEntry, bool) {
	var e WorkEntry

	for _, line := range lines {
		if e.Start == "" {
			if m := monthRangeRe.FindStringSubmatch(line); m != nil {
				e.Start = strings.TrimSpace(m[1] + " " + m[2])
				e.End = strings.TrimSpace(m[3])
			} else if m := yearRangeRe.FindStringSubmatch(line); m != nil {
				e.Start = m[1]
				e.End = m[2]
			}
		}
	}

	head := stripDateRange(lines[0])
	title, company := splitTitleCompany(head)
	if title == "" && company == "" && len(lines) > 1 {
		title, company = splitTitleCompany(stripDateRange(lines[1]))
	}
	e.Title = title
	e.Company = company

	if e.Title == "" && e.Company == "" && e.Start == "" {
		return e, false
	}
	return e, true
}

func stripDateRange(line string) string {
	line = monthRangeRe.ReplaceAllString(line, "")
	line = yearRangeRe.ReplaceAllString(line, "")
	return strings.Trim(strings.TrimSpace(line), "-–—|,() ")
}

func splitTitleCompany(line string) (title, company string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	for _, sep := range []string{" at ", " @ ", " | ", " - ", " – ", ", "} {
		if idx := strings.Index(line, sep); idx > 0 {
			return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+len(sep):])
		}
	}
	return line, ""
}

// Projects segments the projects section into entries. Bullet markers and
// capitalized short lines open a new entry; technologies are the vocabulary
// skills mentioned inside the entry.
func Projects(text string, vocab *Vocabulary) []Project {
	section := SectionText(text, projectHeaders)
	if section == "" {
		return nil
	}

	var projects []Project
	var current *Project

	flush := func() {
		if current == nil {
			return
		}
		body := current.Title + " " + current.Description
		current.Technologies, _ = vocab.ExtractSkills(body)
		current.Description = strings.TrimSpace(current.Description)
		projects = append(projects, *current)
		current = nil
	}

	for _, line := range Lines(section) {
		trimmed := strings.TrimLeft(line, "-•*• \t")
		isBullet := trimmed != line
		if isBullet || (current == nil) || looksLikeTitle(line) {
			if isBullet && current != nil && !looksLikeTitle(trimmed) {
				// Bullet continuation inside the current project.
				current.Description += " " + trimmed
				continue
			}
			flush()
			current = &Project{Title: trimmed}
			continue
		}
		current.Description += " " + line
	}
	flush()
	return projects
}

// looksLikeTitle marks short capitalized lines without terminal punctuation.
func looksLikeTitle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(line) > 60 {
		return false
	}
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ",") {
		return false
	}
	first := []rune(line)[0]
	return first >= 'A' && first <= 'Z' && len(strings.Fields(line)) <= 7
}

// ExtractProfile runs every field extractor over the resume text. Each field
// degrades independently; a malformed document produces defaults, not errors.
func ExtractProfile(text, fileName string, vocab *Vocabulary) CandidateProfile {
	return CandidateProfile{
		Name:            Name(text, fileName),
		Email:           Email(text),
		Phone:           Phone(text),
		Location:        Location(text),
		YearsExperience: YearsOfExperience(text),
		CGPA:            CGPA(text),
		Languages:       Languages(text),
		Education:       Education(text),
		WorkHistory:     WorkHistory(text),
		Projects:        Projects(text, vocab),
	}
}
