package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	vocab := DefaultVocabulary()

	t.Run("basic matching with canonical casing", func(t *testing.T) {
		matched, categorized := vocab.ExtractSkills("experienced in postgresql, docker and python")
		assert.Equal(t, []string{"Docker", "PostgreSQL", "Python"}, matched)
		assert.Equal(t, []string{"PostgreSQL"}, categorized["Databases"])
		assert.Equal(t, []string{"Docker"}, categorized["DevOps Tools"])
		assert.Equal(t, []string{"Python"}, categorized["Programming Languages"])
	})

	t.Run("multi-word phrase consumed before its parts", func(t *testing.T) {
		matched, _ := vocab.ExtractSkills("Built React Native apps for retail")
		assert.Contains(t, matched, "React Native")
		assert.NotContains(t, matched, "React")
	})

	t.Run("phrase and standalone word both present", func(t *testing.T) {
		matched, _ := vocab.ExtractSkills("React Native apps and React dashboards")
		assert.Contains(t, matched, "React Native")
		assert.Contains(t, matched, "React")
	})

	t.Run("symbol suffixes keep boundaries", func(t *testing.T) {
		matched, _ := vocab.ExtractSkills("C++ and C# developer")
		assert.Contains(t, matched, "C++")
		assert.Contains(t, matched, "C#")
	})

	t.Run("no substring matches inside words", func(t *testing.T) {
		matched, _ := vocab.ExtractSkills("scalar fields in a goroutine")
		assert.NotContains(t, matched, "Scala")
		assert.NotContains(t, matched, "Go")
		assert.NotContains(t, matched, "R")
	})

	t.Run("machine learning categorized", func(t *testing.T) {
		matched, categorized := vocab.ExtractSkills("applied Machine Learning and SQL at scale")
		assert.Equal(t, []string{"Machine Learning", "SQL"}, matched)
		assert.Equal(t, []string{"Machine Learning"}, categorized["Data Science & ML"])
	})

	t.Run("empty text", func(t *testing.T) {
		matched, categorized := vocab.ExtractSkills("")
		assert.Empty(t, matched)
		assert.Empty(t, categorized)
	})
}

func TestVocabularyLookups(t *testing.T) {
	vocab := DefaultVocabulary()

	assert.Equal(t, "Databases", vocab.Category("postgresql"))
	assert.Equal(t, Uncategorized, vocab.Category("basket weaving"))
	assert.Equal(t, "PostgreSQL", vocab.Canonical("POSTGRESQL"))
	assert.Equal(t, "basket weaving", vocab.Canonical("basket weaving"))
}

func TestNewVocabularyDeduplicates(t *testing.T) {
	vocab := NewVocabulary(map[string][]string{
		"A": {"Python", "python "},
		"":  {"Mystery Skill"},
	})

	matched, _ := vocab.ExtractSkills("python and a mystery skill")
	assert.Equal(t, []string{"Mystery Skill", "Python"}, matched)
	assert.Equal(t, Uncategorized, vocab.Category("Mystery Skill"))
}

func TestExtractKeywords(t *testing.T) {
	keywords := ExtractKeywords("Senior C++ developer using Node.js, the cloud and Go")

	assert.Contains(t, keywords, "c++")
	assert.Contains(t, keywords, "node.js")
	assert.Contains(t, keywords, "cloud")
	assert.Contains(t, keywords, "developer")
	assert.Contains(t, keywords, "senior")
	// stopwords and short tokens are dropped
	assert.NotContains(t, keywords, "the")
	assert.NotContains(t, keywords, "using")
	assert.NotContains(t, keywords, "go")
}
