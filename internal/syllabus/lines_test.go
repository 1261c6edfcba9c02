package syllabus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLines(t *testing.T) {
	raw := []Line{
		{Text: "  Quiz\t1   Oct 3  ", Index: 0},
		{Text: "", Index: 1},
		{Text: "covers chapters 1-3", Index: 2},
		{Text: "Midterm Exam.", Index: 3},
		{Text: "review session follows", Index: 4},
		{Text: "HW\u200b1 due", Index: 5},
	}

	got := NormalizeLines(raw)

	assert.Equal(t, []Line{
		{Text: "Quiz 1 Oct 3 covers chapters 1-3", Index: 0},
		{Text: "Midterm Exam.", Index: 3},
		{Text: "review session follows", Index: 4},
		{Text: "HW1 due", Index: 5},
	}, got)
	assert.LessOrEqual(t, len(got), len(raw))
}

func TestSplitRawLines(t *testing.T) {
	got := splitRawLines("a\r\nb\rc\nd")
	assert.Equal(t, []Line{{"a", 0}, {"b", 1}, {"c", 2}, {"d", 3}}, got)
}

func TestMeasureLayout(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want Layout
	}{
		{
			name: "column gaps",
			raw:  []string{"Week 1   Aug 26   Intro", "Week 2   Sep 2   Quiz 1", "Notes"},
			want: LayoutTabular,
		},
		{
			name: "tab separated",
			raw:  []string{"Oct 3\tQuiz 1", "Oct 10\tLab 2"},
			want: LayoutTabular,
		},
		{
			name: "short prose",
			raw:  []string{"Quiz 1 is on Oct 3.", "The midterm is Oct 17."},
			want: LayoutUnstructured,
		},
		{
			name: "long paragraphs",
			raw:  []string{strings.Repeat("The quiz covers the reading. ", 6)},
			want: LayoutTabular,
		},
		{
			name: "schedule header",
			raw:  []string{"Tentative Schedule", "Quiz Oct 3"},
			want: LayoutTabular,
		},
		{
			name: "empty page",
			raw:  []string{""},
			want: LayoutTabular,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := splitRawLines(strings.Join(tt.raw, "\n"))
			assert.Equal(t, tt.want, ClassifyLayout(raw))
		})
	}
}

func TestMeasureLayout_Signals(t *testing.T) {
	raw := splitRawLines("Session | Date | Topic\n1 | Aug 26 | Intro")
	signals := MeasureLayout(raw)

	assert.True(t, signals.ScheduleHeader)
	assert.Equal(t, 1.0, signals.TableRatio)
	assert.Equal(t, 1.0, signals.ShortRatio)
}

func TestIsTabularLine(t *testing.T) {
	assert.True(t, isTabularLine("Oct 3   Quiz"))
	assert.True(t, isTabularLine("Oct 3\tQuiz"))
	assert.False(t, isTabularLine("   indented only"))
	assert.False(t, isTabularLine("Oct 3 Quiz"))
}

func TestSplitMultiDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "dates lead their descriptions",
			text: "Mon Oct 3 Quiz 1 Wed Oct 5 Lab 2",
			want: []string{"Mon Oct 3 Quiz 1", "Wed Oct 5 Lab 2"},
		},
		{
			name: "descriptions lead their dates",
			text: "Quiz 1 on Oct 3, Quiz 2 on Oct 10",
			want: []string{"Quiz 1 on Oct 3", "Quiz 2 on Oct 10"},
		},
		{
			name: "week label is not a description",
			text: "Week 3: Oct 3 Quiz; Oct 5 Lab",
			want: []string{"Week 3: Oct 3 Quiz;", "Oct 5 Lab"},
		},
		{
			name: "range is one date",
			text: "Fall Break Oct 3 - Oct 5",
			want: []string{"Fall Break Oct 3 - Oct 5"},
		},
		{
			name: "slash dates",
			text: "10/3 Quiz 1 10/10 Quiz 2 10/17 Quiz 3",
			want: []string{"10/3 Quiz 1", "10/10 Quiz 2", "10/17 Quiz 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frags := SplitMultiDate(Line{Text: tt.text, Index: 7})

			texts := make([]string, len(frags))
			for i, f := range frags {
				texts[i] = f.Text
				assert.Equal(t, 7, f.Index)
			}
			assert.Equal(t, tt.want, texts)
			assert.Len(t, frags, CountDateAnchors(tt.text))
		})
	}
}

func TestCountDateAnchors(t *testing.T) {
	assert.Equal(t, 3, CountDateAnchors("Oct 3 and 10/10 and Friday"))
	assert.Equal(t, 1, CountDateAnchors("Week 4 Oct 3"))
	assert.Equal(t, 0, CountDateAnchors("Week 4"))
}

func TestReconstructBlocks_Tabular(t *testing.T) {
	lines := []Line{
		{Text: "Week 1 Aug 26 Syllabus review", Index: 0},
		{Text: "Read chapter 1", Index: 1},
		{Text: "Week 2 Sep 2 Quiz 1", Index: 2},
		{Text: "Late Work Policy", Index: 3},
		{Text: "Submit on time.", Index: 4},
	}

	got := ReconstructBlocks(lines, LayoutTabular)

	assert.Equal(t, []Line{
		{Text: "Week 1 Aug 26 Syllabus review Read chapter 1", Index: 0},
		{Text: "Week 2 Sep 2 Quiz 1", Index: 2},
		{Text: "Late Work Policy", Index: 3},
		{Text: "Submit on time.", Index: 4},
	}, got)
}

func TestReconstructBlocks_StopsAtNarrative(t *testing.T) {
	prose := "The instructor reserves the right to change this document at any point without notice"
	lines := []Line{
		{Text: "Oct 3 Quiz 1", Index: 0},
		{Text: prose, Index: 1},
	}

	got := ReconstructBlocks(lines, LayoutTabular)

	assert.Equal(t, lines, got)
}

func TestReconstructBlocks_LookaheadLimit(t *testing.T) {
	lines := []Line{
		{Text: "Oct 3 Quiz 1", Index: 0},
		{Text: "one", Index: 1},
		{Text: "two", Index: 2},
		{Text: "three", Index: 3},
		{Text: "four", Index: 4},
		{Text: "five", Index: 5},
	}

	got := ReconstructBlocks(lines, LayoutTabular)

	assert.Equal(t, []Line{
		{Text: "Oct 3 Quiz 1 one two three four", Index: 0},
		{Text: "five", Index: 5},
	}, got)
}

func TestReconstructBlocks_StopsAtMidLineDate(t *testing.T) {
	lines := []Line{
		{Text: "Oct 3 Lecture: intro", Index: 0},
		{Text: "Homework 1 due Oct 5", Index: 1},
		{Text: "Oct 8 Lecture 2", Index: 2},
	}

	got := ReconstructBlocks(lines, LayoutTabular)

	assert.Equal(t, lines, got)
}

func TestReconstructBlocks_Unstructured(t *testing.T) {
	lines := []Line{
		{Text: "Quiz 1 is on Oct 3 and Quiz 2 is on Oct 10.", Index: 0},
		{Text: "1. Bring a calculator on Oct 3", Index: 1},
		{Text: "Come prepared.", Index: 2},
	}

	got := ReconstructBlocks(lines, LayoutUnstructured)

	assert.Equal(t, []Line{
		{Text: "Quiz 1 is on Oct 3", Index: 0},
		{Text: "and Quiz 2 is on Oct 10.", Index: 0},
	}, got)
}

func TestReconstructBlocks_UnstructuredFallsBackToRows(t *testing.T) {
	lines := []Line{
		{Text: "Quiz Oct 3", Index: 0},
		{Text: "Notes", Index: 1},
		{Text: "More notes", Index: 2},
		{Text: "Other", Index: 3},
	}

	got := ReconstructBlocks(lines, LayoutUnstructured)

	assert.Equal(t, []Line{{Text: "Quiz Oct 3 Notes More notes Other", Index: 0}}, got)
}

func TestBlockPredicates(t *testing.T) {
	assert.True(t, StartsBlock("Tue lecture"))
	assert.True(t, StartsBlock("Quiz on 10/3"))
	assert.False(t, StartsBlock("Read chapter 2"))

	assert.True(t, EndsBlock("Week 4 Midterm review"))
	assert.True(t, EndsBlock("Homework 1 due Oct 5"))
	assert.True(t, EndsBlock("Reading response due Friday"))
	assert.False(t, EndsBlock("Read chapter 2"))

	assert.True(t, IsPolicyHeader("Academic Integrity Policy"))
	assert.True(t, IsPolicyHeader("Attendance Policies"))
	assert.False(t, IsPolicyHeader("the policy on late work"))

	assert.True(t, IsNumberedItem("3. Bring a pencil"))
	assert.True(t, IsNumberedItem("b) Bring a pencil"))
	assert.False(t, IsNumberedItem("HW3 due Oct 10"))

	assert.True(t, IsNarrative("Students are expected to participate in discussion and to treat each other with respect"))
	assert.False(t, IsNarrative("Students are expected to read chapter two before the first exam in this course"))
}

func TestGroupByProximity(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		window int
		want   []string
	}{
		{
			name:   "keyword line awaits its date",
			lines:  []string{"Project proposal due on", "Oct 17"},
			window: 2,
			want:   []string{"Project proposal due on Oct 17"},
		},
		{
			name:   "bare date takes its description",
			lines:  []string{"Oct 3", "Quiz 1"},
			window: 2,
			want:   []string{"Oct 3 Quiz 1"},
		},
		{
			name:   "two dated lines stay apart",
			lines:  []string{"Oct 3", "Oct 10"},
			window: 2,
			want:   []string{"Oct 3", "Oct 10"},
		},
		{
			name:   "qualifying lines stay apart",
			lines:  []string{"Quiz 1 Oct 3", "Quiz 2 Oct 10"},
			window: 2,
			want:   []string{"Quiz 1 Oct 3", "Quiz 2 Oct 10"},
		},
		{
			name:   "header is not glued to the first row",
			lines:  []string{"Course Outline", "Quiz 1 Oct 3"},
			window: 2,
			want:   []string{"Course Outline", "Quiz 1 Oct 3"},
		},
		{
			name:   "window of two",
			lines:  []string{"Oct 3", "Bring notes", "Lecture"},
			window: 2,
			want:   []string{"Oct 3 Bring notes Lecture"},
		},
		{
			name:   "window of one",
			lines:  []string{"Oct 3", "Bring notes", "Lecture"},
			window: 1,
			want:   []string{"Oct 3", "Bring notes", "Lecture"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := make([]Line, len(tt.lines))
			for i, s := range tt.lines {
				lines[i] = Line{Text: s, Index: i}
			}

			got := GroupByProximity(lines, tt.window)

			texts := make([]string, len(got))
			for i, l := range got {
				texts[i] = l.Text
			}
			assert.Equal(t, tt.want, texts)
		})
	}
}

func TestGroupPredicates(t *testing.T) {
	assert.True(t, BothDated("Quiz Oct 3", "Oct 10 Lab"))
	assert.False(t, BothDated("Quiz", "Oct 10 Lab"))

	assert.True(t, AwaitsDate("Midterm on", "Oct 17"))
	assert.False(t, AwaitsDate("Midterm Oct 10", "Oct 17"))
	assert.False(t, AwaitsDate("Bring snacks", "Oct 17"))
}
