package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenerpro/engine/internal/screening"
)

// fakeExtractor returns the document bytes as text, failing documents whose
// content is marked corrupt.
type fakeExtractor struct{}

func (fakeExtractor) ExtractText(_ context.Context, data []byte, _ string) (string, error) {
	text := string(data)
	if strings.Contains(text, "CORRUPT") {
		return "", fmt.Errorf("unreadable document")
	}
	return text, nil
}

func textDoc(name, text string) InputDocument {
	return InputDocument{FileName: name, MediaType: "application/pdf", Data: []byte(text)}
}

const strongResume = `Asha Patel
Software Engineer

Work Experience
Backend Engineer at Nimbus
Jan 2019 - Present
Python services with PostgreSQL and Docker

Education
CGPA: 9.0/10

Skills
Python, PostgreSQL, Docker, SQL, Machine Learning
`

const weakResume = `Rahul Jain

Skills
Photoshop, Illustrator
`

func newTestPipeline(t *testing.T) PipelineService {
	t.Helper()
	return NewPipelineService(
		fakeExtractor{},
		NewLocalEmbedder(),
		screening.DefaultVocabulary(),
		screening.HeuristicStrategy{},
		2,
	)
}

func TestPipelineScreen(t *testing.T) {
	pipeline := newTestPipeline(t)

	req := ScreenRequest{
		Job: screening.JobRequirement{
			Text:         "Looking for a backend engineer with Python, PostgreSQL, Docker and SQL",
			HighPriority: []string{"Python"},
		},
		Documents: []InputDocument{
			textDoc("weak.pdf", weakResume),
			textDoc("strong.pdf", strongResume),
			textDoc("broken.pdf", "CORRUPT"),
		},
	}

	rows, err := pipeline.Screen(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, rows, 3, "every document yields exactly one row")

	// Rows come back sorted by score descending, error rows last.
	assert.Equal(t, "strong.pdf", rows[0].FileName)
	assert.Greater(t, rows[0].Score, rows[1].Score)

	strong := rows[0]
	assert.Equal(t, "Asha Patel", strong.CandidateName)
	assert.False(t, strong.Failed)
	assert.Contains(t, strong.MatchedSkills, "Python")
	assert.Contains(t, strong.MatchedSkills, "Docker")
	assert.NotNil(t, strong.CGPA)
	assert.Greater(t, strong.YearsExperience, 5.0)
	assert.NotEmpty(t, strong.Tier)
	assert.Greater(t, strong.Similarity, 0.0)

	var broken screening.ResultRow
	for _, row := range rows {
		if row.FileName == "broken.pdf" {
			broken = row
		}
	}
	assert.True(t, broken.Failed)
	assert.Equal(t, "Error", broken.Tier)
	assert.Equal(t, "None", broken.CertificateRank)
	assert.Contains(t, broken.Assessment, "text extraction failed")
	assert.Zero(t, broken.Score)
	// The failed row still carries a best-effort name from the file name.
	assert.Equal(t, "Broken", broken.CandidateName)
}

func TestPipelineScreenDeterministic(t *testing.T) {
	pipeline := newTestPipeline(t)
	req := ScreenRequest{
		Job: screening.JobRequirement{Text: "Python and SQL developer"},
		Documents: []InputDocument{
			textDoc("a.pdf", strongResume),
			textDoc("b.pdf", weakResume),
			textDoc("c.pdf", strongResume),
		},
	}

	first, err := pipeline.Screen(context.Background(), req)
	require.NoError(t, err)
	second, err := pipeline.Screen(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].FileName, second[i].FileName)
		assert.Equal(t, first[i].Score, second[i].Score)
		assert.Equal(t, first[i].Tier, second[i].Tier)
	}

	// Identical content under different names ties on score; file name breaks
	// the tie deterministically.
	assert.Equal(t, "a.pdf", first[0].FileName)
	assert.Equal(t, "c.pdf", first[1].FileName)
}

func TestPipelineScreenRequiresJobText(t *testing.T) {
	pipeline := newTestPipeline(t)
	_, err := pipeline.Screen(context.Background(), ScreenRequest{
		Documents: []InputDocument{textDoc("a.pdf", strongResume)},
	})
	assert.Error(t, err)
}

func TestPipelineScreenEmptyBatch(t *testing.T) {
	pipeline := newTestPipeline(t)
	rows, err := pipeline.Screen(context.Background(), ScreenRequest{
		Job: screening.JobRequirement{Text: "any role"},
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPipelineScreenAllCorrupt(t *testing.T) {
	pipeline := newTestPipeline(t)
	rows, err := pipeline.Screen(context.Background(), ScreenRequest{
		Job: screening.JobRequirement{Text: "any role"},
		Documents: []InputDocument{
			textDoc("x.pdf", "CORRUPT"),
			textDoc("y.pdf", "CORRUPT also"),
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.True(t, row.Failed)
	}
}

// uniformEmbedder maps every text to the same unit vector, pinning semantic
// similarity at 1.0 so tier outcomes depend only on the remaining signals.
type uniformEmbedder struct{}

func (uniformEmbedder) Dimensions() int { return 8 }

func (uniformEmbedder) EmbedText(_ context.Context, _ string) ([]float32, error) {
	vec := make([]float32, 8)
	vec[0] = 1
	return vec, nil
}

func (u uniformEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i], _ = u.EmbedText(ctx, texts[i])
	}
	return out, nil
}

const seniorResume = `Meera Iyer
meera.iyer@example.com

Work Experience
Senior Data Engineer at Vertex Analytics
Jan 2019 - Jan 2025
Built Python ETL pipelines and SQL warehouses

Education
B.Tech Computer Science
CGPA: 3.8

Skills
Python, SQL
`

const juniorResume = `Kiran Das

Work Experience
Shop Assistant at Corner Mart
Jun 2024 - Dec 2024
Handled inventory and billing
`

// Two candidates against a Python+SQL role, end to end: a senior with both
// skills, six years and a 3.8 CGPA lands in the top tier with nothing
// missing; a junior with neither skill and half a year lands in the bottom
// tier missing both.
func TestPipelineScreenTierOutcomes(t *testing.T) {
	pipeline := NewPipelineService(
		fakeExtractor{},
		uniformEmbedder{},
		screening.DefaultVocabulary(),
		screening.HeuristicStrategy{},
		2,
	)

	rows, err := pipeline.Screen(context.Background(), ScreenRequest{
		Job: screening.JobRequirement{
			Text:         "Hiring a data engineer. Python and SQL required.",
			HighPriority: []string{"Python", "SQL"},
		},
		MaxExperience: 15,
		Documents: []InputDocument{
			textDoc("junior.pdf", juniorResume),
			textDoc("senior.pdf", seniorResume),
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	senior := rows[0]
	assert.Equal(t, "senior.pdf", senior.FileName)
	assert.Equal(t, screening.TierExceptional, senior.Tier)
	assert.Equal(t, 100.0, senior.Score)
	assert.Equal(t, []string{"Python", "SQL"}, senior.MatchedSkills)
	assert.Empty(t, senior.MissingSkills)
	assert.InDelta(t, 6.0, senior.YearsExperience, 0.01)

	junior := rows[1]
	assert.Equal(t, "junior.pdf", junior.FileName)
	assert.Equal(t, screening.TierLimited, junior.Tier)
	assert.Equal(t, []string{"Python", "SQL"}, junior.MissingSkills)
	assert.Empty(t, junior.MatchedSkills)
	assert.Less(t, junior.YearsExperience, 1.0)
}
