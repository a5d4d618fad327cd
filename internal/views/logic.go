package views

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/tasker/internal/model"
)

type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

const (
	mediumBandFloor = 0.3
	highBandFloor   = 0.7
)

// CompletionRatio is done/total, or 0 for an empty list.
func CompletionRatio(tasks []model.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	return float64(CountDone(tasks)) / float64(len(tasks))
}

func CountDone(tasks []model.Task) int {
	done := 0
	for _, t := range tasks {
		if t.Done {
			done++
		}
	}
	return done
}

func CompletionBand(ratio float64) Band {
	switch {
	case ratio < mediumBandFloor:
		return BandLow
	case ratio < highBandFloor:
		return BandMedium
	default:
		return BandHigh
	}
}

// Token is the display marker for a category.
type Token struct {
	Name   string
	Marker string
	Color  string
}

var UnknownCategory = Token{Name: "unknown", Marker: "?", Color: "8"}

var categoryTokens = map[model.Category]Token{
	model.CategoryPersonal: {Name: string(model.CategoryPersonal), Marker: "●", Color: "12"},
	model.CategoryWork:     {Name: string(model.CategoryWork), Marker: "■", Color: "9"},
	model.CategoryStudy:    {Name: string(model.CategoryStudy), Marker: "▲", Color: "10"},
	model.CategoryProject:  {Name: string(model.CategoryProject), Marker: "◆", Color: "13"},
	model.CategoryOther:    {Name: string(model.CategoryOther), Marker: "○", Color: "7"},
}

func CategoryToken(c model.Category) Token {
	if tok, ok := categoryTokens[c]; ok {
		return tok
	}
	return UnknownCategory
}

// Row is the read-only projection of one task handed to the shells.
// Position is 1-based.
type Row struct {
	Position    int
	Done        bool
	Description string
	Deadline    string
	Category    model.Category
	Overdue     bool
}

func Rows(tasks []model.Task, today time.Time) []Row {
	out := make([]Row, 0, len(tasks))
	for i, t := range tasks {
		out = append(out, Row{
			Position:    i + 1,
			Done:        t.Done,
			Description: t.Description,
			Deadline:    t.DeadlineText(),
			Category:    t.Category,
			Overdue:     t.IsOverdue(today),
		})
	}
	return out
}

func CountOverdue(rows []Row) int {
	n := 0
	for _, r := range rows {
		if r.Overdue {
			n++
		}
	}
	return n
}

func FormatListLine(r Row) string {
	mark := " "
	if r.Done {
		mark = "x"
	}
	return fmt.Sprintf("%d. [%s] %s", r.Position, mark, r.Description)
}

// FormatLongLine appends deadline, category and overdue flag to the list line.
func FormatLongLine(r Row) string {
	line := FormatListLine(r)
	if r.Deadline != "" {
		line += " (до " + r.Deadline + ")"
	}
	tok := CategoryToken(r.Category)
	if r.Category != "" {
		line += " " + tok.Marker + " " + string(r.Category)
	}
	if r.Overdue {
		line += " !overdue"
	}
	return line
}
