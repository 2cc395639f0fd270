package handler

import (
	"fmt"
	"io"
	"path/filepath"

	"vocabook/internal/domain"
	"vocabook/internal/service"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

var (
	starStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	headingStyle = lipgloss.NewStyle().Bold(true)
)

const star = "★"

type statsView struct {
	Questions int     `yaml:"questions"`
	Correct   int     `yaml:"correct"`
	Accuracy  float64 `yaml:"accuracy"`
}

type recordView struct {
	Position int        `yaml:"position"`
	English  string     `yaml:"english"`
	Meanings []string   `yaml:"meanings"`
	Favorite bool       `yaml:"favorite"`
	Stats    *statsView `yaml:"stats,omitempty"`
}

type resultView struct {
	Action   domain.Action     `yaml:"action"`
	English  string            `yaml:"english"`
	Favorite bool              `yaml:"favorite"`
	Applied  bool              `yaml:"applied"`
	Message  string            `yaml:"message"`
	Cleared  []domain.Location `yaml:"cleared,omitempty"`
}

type fileView struct {
	Category domain.Category `yaml:"category"`
	Name     string          `yaml:"name"`
	Path     string          `yaml:"path"`
	Label    string          `yaml:"label,omitempty"`
	Words    int             `yaml:"words"`
}

func newRecordView(position int, rec domain.WordRecord) recordView {
	v := recordView{
		Position: position,
		English:  rec.English,
		Meanings: rec.Meanings,
		Favorite: rec.Favorite,
	}
	if stats, ok := rec.Stats(); ok {
		v.Stats = &statsView{Questions: stats.Questions, Correct: stats.Correct, Accuracy: stats.Accuracy()}
	}
	return v
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}

func (h *Handler) printRecords(w io.Writer, views []recordView) error {
	if h.wantsYAML() {
		if views == nil {
			views = []recordView{}
		}
		return writeYAML(w, views)
	}

	if len(views) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no words"))
		return nil
	}
	for _, v := range views {
		mark := " "
		if v.Favorite {
			mark = starStyle.Render(star)
		}
		line := fmt.Sprintf("%s %s %s  %s", dimStyle.Render(fmt.Sprintf("%3d.", v.Position)), mark, v.English, joinMeanings(v.Meanings))
		if v.Stats != nil {
			line += dimStyle.Render(fmt.Sprintf("  (%d/%d correct)", v.Stats.Correct, v.Stats.Questions))
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// printResult shows the outcome of a store operation. Nothing is printed for
// operations that were rejected before any write; their error says it all.
func (h *Handler) printResult(w io.Writer, res domain.Result, err error) error {
	if !res.Applied {
		return err
	}

	if h.wantsYAML() {
		if encErr := writeYAML(w, resultView{
			Action:   res.Action,
			English:  res.English,
			Favorite: res.Favorite,
			Applied:  res.Applied,
			Message:  res.Message,
			Cleared:  res.Cleared,
		}); encErr != nil {
			return encErr
		}
		return err
	}

	line := okStyle.Render(res.Message)
	if res.Favorite {
		line += " " + starStyle.Render(star)
	}
	fmt.Fprintln(w, line)
	for _, loc := range res.Cleared {
		fmt.Fprintln(w, dimStyle.Render("  cleared marker in "+describeLocation(loc)))
	}
	return err
}

func (h *Handler) printLocations(w io.Writer, english string, locations []domain.Location) error {
	if h.wantsYAML() {
		if locations == nil {
			locations = []domain.Location{}
		}
		return writeYAML(w, locations)
	}

	if len(locations) == 0 {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%q is not marked anywhere", english)))
		return nil
	}
	for _, loc := range locations {
		fmt.Fprintf(w, "%s %s\n", starStyle.Render(star), describeLocation(loc))
	}
	return nil
}

func (h *Handler) printFiles(w io.Writer, files []fileView) error {
	if h.wantsYAML() {
		return writeYAML(w, files)
	}

	var current domain.Category
	for _, f := range files {
		if f.Category != current {
			current = f.Category
			fmt.Fprintln(w, headingStyle.Render(string(current)))
		}
		name := f.Name
		if f.Label != "" {
			name += dimStyle.Render(" (" + f.Label + ")")
		}
		fmt.Fprintf(w, "  %s  %s\n", name, dimStyle.Render(fmt.Sprintf("%d words", f.Words)))
	}
	return nil
}

func (h *Handler) printReport(w io.Writer, report service.Report, repaired bool) error {
	if h.wantsYAML() {
		return writeYAML(w, report)
	}

	fmt.Fprintf(w, "%d markers checked against %d favorites\n", report.Markers, report.Entries)
	if len(report.Issues) == 0 {
		fmt.Fprintln(w, okStyle.Render("favorites are consistent"))
		return nil
	}
	for _, issue := range report.Issues {
		line := fmt.Sprintf("%s %s", warnStyle.Render(string(issue.Kind)), describeLocation(issue.Location))
		if len(issue.Missing) > 0 {
			line += dimStyle.Render(" missing " + joinMeanings(issue.Missing))
		}
		fmt.Fprintln(w, line)
	}
	if repaired {
		fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("repaired %d", report.Repaired)))
	} else {
		fmt.Fprintln(w, dimStyle.Render("run with --repair to fix"))
	}
	return nil
}

func describeLocation(loc domain.Location) string {
	return fmt.Sprintf("%s %s #%d (%s)", loc.Category, filepath.Base(loc.Path), loc.Index+1, loc.English)
}

func joinMeanings(meanings []string) string {
	return domain.WordRecord{Meanings: meanings}.MeaningText()
}
