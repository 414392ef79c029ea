// Package observability provides the zap logger and formatted output for verbose CLI mode.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nextlevelcleaning/cards/internal/build"
	"github.com/nextlevelcleaning/cards/internal/identity"
	"github.com/nextlevelcleaning/cards/internal/profile"
	"github.com/nextlevelcleaning/cards/internal/rendering"
	"github.com/nextlevelcleaning/cards/internal/schemas"
	"github.com/nextlevelcleaning/cards/internal/types"
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
//nolint:errcheck // writing to stdout; errors are not recoverable
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

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintIdentity outputs the resolved card identity. The canonical URL is printed in full
// below the box so it can be copied.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIdentity(id types.Identity, rule identity.Rule, canonical string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Slug:      %s\n", id.Slug))
	sb.WriteString(fmt.Sprintf("Category:  %s\n", id.Category))
	sb.WriteString(fmt.Sprintf("Rule:      %s", rule))
	p.printBox("RESOLVED IDENTITY", sb.String())
	fmt.Fprintf(p.out, "Canonical: %s\n", canonical)
}

// PrintCandidates outputs the ordered profile document locations for slug, one full URL
// per line below the box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCandidates(slug string, candidates []string) {
	if len(candidates) == 0 {
		return
	}
	p.printBox("CANDIDATE LOCATIONS", fmt.Sprintf("%d locations for %s", len(candidates), slug))
	for i, c := range candidates {
		fmt.Fprintf(p.out, "%2d. %s\n", i+1, c)
	}
}

// PrintLoadReport outputs each attempted location and where the record came from.
func (p *Printer) PrintLoadReport(report *profile.LoadReport) {
	if report == nil {
		return
	}
	var sb strings.Builder
	for _, a := range report.Attempts {
		mark := "✗"
		if a.OK() {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, a.URL))
		switch {
		case a.StatusCode != 0 && !a.OK():
			sb.WriteString(fmt.Sprintf("    HTTP %d (%s)\n", a.StatusCode, a.Duration.Round(time.Millisecond)))
		case a.Err != nil:
			sb.WriteString(fmt.Sprintf("    %s\n", a.Err))
		}
	}
	sb.WriteString("\n")
	switch {
	case report.UsedFallback:
		sb.WriteString("Source: built-in fallback record")
	case report.Source != "":
		sb.WriteString(fmt.Sprintf("Source: %s", report.Source))
	default:
		sb.WriteString("Source: none (not found)")
	}
	p.printBox("PROFILE LOAD", sb.String())
}

// PrintPopulateResult outputs which slots were written and how the stream rendered.
func (p *Printer) PrintPopulateResult(res *rendering.PopulateResult) {
	if res == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Slots written: %d\n", len(res.Written)))
	if len(res.Missing) > 0 {
		sb.WriteString(fmt.Sprintf("Missing slots: %s\n", strings.Join(res.Missing, ", ")))
	}
	if len(res.Repaired) > 0 {
		sb.WriteString(fmt.Sprintf("Repaired:      %s\n", strings.Join(res.Repaired, ", ")))
	}
	if s := res.Stream; s != nil {
		sb.WriteString(fmt.Sprintf("\nContent blocks: %d rendered, %d skipped\n", s.Rendered, len(s.Skipped)))
		if len(s.Carousels) > 0 {
			sb.WriteString(fmt.Sprintf("Carousels:      %d\n", len(s.Carousels)))
		}
		count := min(len(s.Skipped), maxItemsToShow)
		for i := 0; i < count; i++ {
			sk := s.Skipped[i]
			sb.WriteString(fmt.Sprintf("  ⚠ #%d %s: %v\n", sk.Index, sk.Type, sk.Err))
		}
		if len(s.Skipped) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(s.Skipped)-maxItemsToShow))
		}
	}
	p.printBox("TEMPLATE POPULATED", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBuildSummary outputs one line per generated card and the data warnings.
func (p *Printer) PrintBuildSummary(summary *build.Summary) {
	if summary == nil || len(summary.Cards) == 0 {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Updated %d cards:\n\n", len(summary.Cards)))
	for i, c := range summary.Cards {
		mark := "✓"
		if c.Data != build.DataOK {
			mark = "⚠"
		}
		sb.WriteString(fmt.Sprintf("%s %s (%s)\n", mark, c.Name, c.Identity))
		parts := append([]string{}, c.Copied...)
		if c.VCard {
			parts = append(parts, build.VCardFile)
		}
		if c.QR {
			parts = append(parts, build.QRFile)
		}
		sb.WriteString(fmt.Sprintf("  files: %s\n", strings.Join(parts, ", ")))
		if len(c.Placeholders) > 0 {
			sb.WriteString(fmt.Sprintf("  placeholders: %s\n", strings.Join(c.Placeholders, ", ")))
		}
		if c.Data != build.DataOK {
			sb.WriteString(fmt.Sprintf("  data/%s.json %s\n", c.Identity.Slug, c.Data))
		}
		if i < len(summary.Cards)-1 {
			sb.WriteString("\n")
		}
	}
	if w := summary.Warnings(); w > 0 {
		sb.WriteString(fmt.Sprintf("\n%d card(s) need a valid profile document", w))
	}
	p.printBox("CARD BUILD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs the result of validating one profile document.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(path string, err error) {
	if err == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate("✅ VALID "+path, boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(path + "\n\n")
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		for i, fe := range verr.Errors {
			sb.WriteString(fmt.Sprintf("⚠ %s\n", fe.Field))
			sb.WriteString(fmt.Sprintf("  %s", fe.Message))
			if i < len(verr.Errors)-1 {
				sb.WriteString("\n")
			}
		}
	} else {
		sb.WriteString(err.Error())
	}
	p.printBox("INVALID PROFILE DOCUMENT", sb.String())
}
