// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/fit-scorer/internal/experience"
	"github.com/jonathan/fit-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to limit runes, ending in "..." when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// writeList appends up to maxItemsToShow bulleted items under a heading.
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintAssessment outputs a human-readable summary of one assessment.
func (p *Printer) PrintAssessment(a *types.FitAssessment) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fit score:   %d/100\n", a.FitScore))
	sb.WriteString(fmt.Sprintf("Seniority:   %s (%.1f years)\n", a.SeniorityLevel, a.TotalExperienceYears))
	sb.WriteString(fmt.Sprintf("Education:   %s (%d)\n", a.HighestDegree, a.EducationScore))
	sb.WriteString(fmt.Sprintf("Prestige:    %d\n", a.CompanyPrestige))
	sb.WriteString(fmt.Sprintf("Location:    %d\n", a.LocationScore))
	sb.WriteString("\n")

	if len(a.MatchedSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Matched skills: %s\n\n", strings.Join(a.MatchedSkills, ", ")))
	}
	writeList(&sb, "Strengths", a.Strengths)
	writeList(&sb, "Risk factors", a.RiskFactors)
	writeList(&sb, "Interview focus", a.InterviewFocus)

	p.printBox("FIT ASSESSMENT", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintRanked outputs the top N ranked applicants.
func (p *Printer) PrintRanked(ranked *types.RankedApplicants) {
	if ranked == nil || len(ranked.Ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total applicants ranked: %d\n\n", len(ranked.Ranked)))

	count := min(len(ranked.Ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := ranked.Ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", r.Rank, r.ApplicantID))
		sb.WriteString(fmt.Sprintf("    Score: %d  %s\n", r.Assessment.FitScore, r.Assessment.SeniorityLevel))
		if len(r.Assessment.MatchedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", truncate(strings.Join(r.Assessment.MatchedSkills, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked.Ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more applicants", len(ranked.Ranked)-maxItemsToShow))
	}

	p.printBox("TOP RANKED APPLICANTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExperienceEvidence outputs the experience rule matches behind a years estimate.
func (p *Printer) PrintExperienceEvidence(evidence []experience.Evidence) {
	if len(evidence) == 0 {
		return
	}

	var sb strings.Builder
	for _, ev := range evidence {
		sb.WriteString(fmt.Sprintf("%-11s %5.1f  %q\n", ev.Rule, ev.Weighted, ev.Text))
	}

	p.printBox("EXPERIENCE EVIDENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTableCounts outputs the size of each loaded table, sorted by name.
func (p *Printer) PrintTableCounts(counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("%-14s %d\n", name, counts[name]))
	}

	p.printBox("SCORING TABLES", strings.TrimSuffix(sb.String(), "\n"))
}
