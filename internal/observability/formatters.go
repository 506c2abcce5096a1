// Package observability provides logging, metrics and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/sales-diagnostic/internal/questionnaire"
	"github.com/jonathan/sales-diagnostic/internal/scoring"
	"github.com/jonathan/sales-diagnostic/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// innerWidth is the usable text width inside a box
	innerWidth = boxWidth - 4
)

// Printer writes box-formatted diagnostic output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", innerWidth, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, innerWidth) {
			fmt.Fprintf(p.out, "│ %-*s │\n", innerWidth, wrapped)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReport prints every section of a report.
func (p *Printer) PrintReport(r *types.Report) {
	if r == nil {
		return
	}
	if len(r.MissingRequired) > 0 {
		p.PrintMissing(r.MissingRequired)
	}
	p.PrintScore(r.Score, r.Level, r.Weaknesses)
	p.PrintProjection(r.Projection)
	p.PrintRecommendations("TOP RECOMMENDATIONS", r.Recommendations)
	if len(r.QuickWins) > 0 {
		p.PrintRecommendations("QUICK WINS", r.QuickWins)
	}
	if r.Narrative != nil {
		p.PrintNarrative(*r.Narrative)
	}
}

// PrintMissing lists unanswered required questions by label.
func (p *Printer) PrintMissing(ids []string) {
	var sb strings.Builder
	sb.WriteString("Scored as zero:\n")
	for _, id := range ids {
		label := id
		if q, ok := questionnaire.ByID(id); ok {
			label = q.Label
		}
		fmt.Fprintf(&sb, "  • %s\n", label)
	}
	p.printBox("MISSING ANSWERS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScore prints the total, the per-pillar breakdown and headline weaknesses.
func (p *Printer) PrintScore(score types.MaturityScore, level string, weaknesses []string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Score: %d/100 (%s)\n\n", score.Total, level)
	caps := map[types.Pillar]int{
		types.PillarAcquisition: scoring.MaxAcquisition,
		types.PillarProspection: scoring.MaxProspection,
		types.PillarConversion:  scoring.MaxConversion,
		types.PillarStructure:   scoring.MaxStructure,
	}
	for _, pillar := range types.AllPillars() {
		pts := score.Pillars.Get(pillar)
		fmt.Fprintf(&sb, "  %-12s %2d/%-2d %s\n", pillar, pts, caps[pillar], bar(pts, caps[pillar], 20))
	}

	if len(weaknesses) > 0 {
		sb.WriteString("\nWeaknesses:\n")
		for _, w := range weaknesses {
			fmt.Fprintf(&sb, "  • %s\n", w)
		}
	}

	p.printBox("SALES MATURITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProjection prints current versus optimized revenue.
func (p *Printer) PrintProjection(proj types.RevenueProjection) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Current monthly:    %s\n", Money(proj.CurrentMonthly))
	fmt.Fprintf(&sb, "Optimized monthly:  %s (+%d%%)\n", Money(proj.OptimizedMonthly), proj.PercentageGain)
	fmt.Fprintf(&sb, "Annual gain:        %s\n\n", Money(proj.AnnualGain))
	fmt.Fprintf(&sb, "Optimized funnel: %s leads, %s%% show-up, %s%% closing",
		trimFloat(proj.Optimized.LeadsVolume),
		trimFloat(proj.Optimized.ShowUpRate),
		trimFloat(proj.Optimized.ClosingRate))

	p.printBox("REVENUE PROJECTION", sb.String())
}

// PrintRecommendations prints ranked recommendations under title.
func (p *Printer) PrintRecommendations(title string, recs []types.Recommendation) {
	if len(recs) == 0 {
		p.printBox(title, "No recommendation triggered.")
		return
	}

	var sb strings.Builder
	for i, r := range recs {
		fmt.Fprintf(&sb, "#%d  %s\n", i+1, r.Title)
		fmt.Fprintf(&sb, "    P%d · %s · %s · %s\n", r.Priority, r.Impact, r.Category, r.Timeframe)
		fmt.Fprintf(&sb, "    Gain estimé: %s/an", Money(r.EstimatedGain))
		if r.QuickWin {
			sb.WriteString(" · quick win")
		}
		sb.WriteString("\n")
		for _, a := range r.Actions {
			fmt.Fprintf(&sb, "    - %s\n", a)
		}
		if i < len(recs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintNarrative prints the narrative text or the error shown in its place.
func (p *Printer) PrintNarrative(n types.NarrativeResult) {
	if n.Text == "" {
		p.printBox("ANALYSIS", "Analyse indisponible: "+n.Error)
		return
	}
	p.printBox(fmt.Sprintf("ANALYSIS (%s)", n.Source), n.Text)
}

// PrintQuestions prints the questionnaire grouped by section.
func (p *Printer) PrintQuestions() {
	for _, section := range questionnaire.Sections() {
		var sb strings.Builder
		for _, q := range questionnaire.BySection(section.ID) {
			marker := " "
			if q.Required {
				marker = "*"
			}
			fmt.Fprintf(&sb, "%s %s [%s]\n", marker, q.ID, q.Type)
			fmt.Fprintf(&sb, "  %s\n", q.Label)
			for _, o := range q.Options {
				fmt.Fprintf(&sb, "    %s = %s\n", o.Value, o.Label)
			}
		}
		p.printBox(strings.ToUpper(section.Title), strings.TrimSuffix(sb.String(), "\n"))
	}
}

// Money renders an amount rounded to the euro with space-grouped thousands.
func Money(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(d)
	}
	return sign + sb.String() + " €"
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func bar(value, maxValue, width int) string {
	if maxValue <= 0 {
		return ""
	}
	filled := value * width / maxValue
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// wrap splits line into chunks of at most width runes, breaking on spaces when it can.
func wrap(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	var out []string
	var cur []rune
	for _, word := range strings.SplitAfter(line, " ") {
		w := []rune(word)
		if len(cur)+len(w) > width && len(cur) > 0 {
			out = append(out, strings.TrimRight(string(cur), " "))
			cur = nil
		}
		for len(w) > width {
			out = append(out, string(w[:width]))
			w = w[width:]
		}
		cur = append(cur, w...)
	}
	if len(cur) > 0 {
		out = append(out, strings.TrimRight(string(cur), " "))
	}
	return out
}
