package screening

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

func TestYearsOfExperience(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{
			name: "month range",
			text: "Software Engineer Jan 2020 - Mar 2021",
			want: 1.2,
		},
		{
			name: "year range",
			text: "Worked at Acme from 2018 - 2021",
			want: 3.0,
		},
		{
			name: "month range to present",
			text: "Backend Developer Jun 2020 - Present",
			want: 5.6,
		},
		{
			name: "multiple ranges accumulate",
			text: "Jan 2020 - Jan 2021 at Acme\n2015 to 2017 at Initech",
			want: 3.0,
		},
		{
			name: "month range not double counted as year range",
			text: "Data Analyst Feb 2019 - Feb 2020",
			want: 1.0,
		},
		{
			name: "unparseable month token falls through to year range",
			text: "employed during 2018 - 2021",
			want: 3.0,
		},
		{
			name: "direct statement fallback",
			text: "Over 5 years of professional experience in backend systems",
			want: 5.0,
		},
		{
			name: "fractional direct statement",
			text: "2.5 years experience with distributed systems",
			want: 2.5,
		},
		{
			name: "inverted range clamps to zero",
			text: "2021 - 2018",
			want: 0.0,
		},
		{
			name: "nothing found",
			text: "Fresh graduate seeking first role",
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, yearsOfExperienceAt(tt.text, testNow), 0.01)
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "Contact: john.doe@gmail.com", "john.doe@gmail.com"},
		{"typo domain fixed", "reach me at jane_s@gmial.com anytime", "jane_s@gmail.com"},
		{"another typo domain", "mail: bob99@hotmial.com", "bob99@hotmail.com"},
		{"uppercase domain lowered", "A.Kumar@GMAIL.COM", "A.Kumar@gmail.com"},
		{"none", "no contact details here", NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.text))
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"indian mobile with country code", "Mobile: +91 98765 43210", "+91 98765 43210"},
		{"us style", "Call (555) 123-4567 ext 89", "(555) 123-4567"},
		{"too few digits skipped", "Room 4512, Floor 3", NotFound},
		{"none", "email only please", NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Phone(tt.text))
		})
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"multi-word city wins over its suffix", "Based in New Delhi, India", "New Delhi"},
		{"multiple cities sorted", "Relocating from Pune to Mumbai", "Mumbai, Pune"},
		{"case insensitive", "currently in BANGALORE", "Bangalore"},
		{"none", "open to remote work", NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Location(tt.text))
		})
	}
}

func TestName(t *testing.T) {
	t.Run("first proper line", func(t *testing.T) {
		text := "John Doe\nSenior Software Engineer\njohn@gmail.com"
		assert.Equal(t, "John Doe", Name(text, "cv.pdf"))
	})

	t.Run("skips boilerplate headers", func(t *testing.T) {
		text := "Curriculum Vitae\nJane Smith\nBackend Developer"
		assert.Equal(t, "Jane Smith", Name(text, "cv.pdf"))
	})

	t.Run("skips lines with digits or contact noise", func(t *testing.T) {
		text := "+91 98765 43210\njane@x.com\nAnita Verma"
		assert.Equal(t, "Anita Verma", Name(text, "cv.pdf"))
	})

	t.Run("falls back to file name", func(t *testing.T) {
		text := "experienced developer\nworked on many systems"
		assert.Equal(t, "Anita Verma", Name(text, "anita-verma.pdf"))
	})

	t.Run("completely unusable input", func(t *testing.T) {
		assert.Equal(t, NotFound, Name("", "123.pdf"))
	})
}

func TestCGPA(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *float64
	}{
		{"ten scale with denominator", "CGPA: 8.5/10", ptr(3.4)},
		{"four scale as-is", "GPA 3.7", ptr(3.7)},
		{"bare ten scale rescaled", "CGPA: 9.0", ptr(3.6)},
		{"percentage denominator", "Grade: 85/100", ptr(3.4)},
		{"value before keyword", "8.2/10 CGPA", ptr(3.28)},
		{"out of range discarded", "CGPA: 11.5", nil},
		{"absent", "B.Tech in Computer Science", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CGPA(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 0.001)
		})
	}
}

func TestLanguages(t *testing.T) {
	t.Run("scoped to languages section", func(t *testing.T) {
		text := "Languages\nEnglish, Hindi\nSkills\nPython, French cuisine appreciation"
		assert.Equal(t, []string{"English", "Hindi"}, Languages(text))
	})

	t.Run("whole text when no section", func(t *testing.T) {
		text := "Fluent in English and Spanish"
		assert.Equal(t, []string{"English", "Spanish"}, Languages(text))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Languages("no linguistic info"))
	})
}

func ptr(v float64) *float64 { return &v }
