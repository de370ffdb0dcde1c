// Package report renders the Markdown document that links every strategy
// to its fingerprint artifacts.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agbru/fingerprints/internal/artifact"
	"github.com/agbru/fingerprints/internal/fingerprint"
)

// Group titles, in report order.
const (
	LibraryGroup = "Axelrod library fingerprints"
	TableGroup   = "Memory-one table strategy fingerprints"
)

const docsURL = "http://axelrod.readthedocs.io/en/latest/tutorials/further_topics/fingerprinting.html#fingerprinting"

// Header describes how the report was produced.
type Header struct {
	LibraryVersion string
	TableVersion   string
	// Command is the invocation that regenerates the report.
	Command string
	Probe   string
	Step    float64
	Params  map[fingerprint.Kind]fingerprint.Params
}

// Link ties one fingerprint kind to its files.
type Link struct {
	Kind  fingerprint.Kind
	Files artifact.Files
}

// Section is the entry of one strategy.
type Section struct {
	Name  string
	Links []Link
}

// Group is a titled list of sections.
type Group struct {
	Title    string
	Sections []Section
}

// Document is the whole report.
type Document struct {
	Header Header
	Groups []Group
}

// AddSection appends s to the group titled title, creating it if needed.
func (d *Document) AddSection(title string, s Section) {
	for i := range d.Groups {
		if d.Groups[i].Title == title {
			d.Groups[i].Sections = append(d.Groups[i].Sections, s)
			return
		}
	}
	d.Groups = append(d.Groups, Group{Title: title, Sections: []Section{s}})
}

// Render returns the Markdown text. Artifact links are made relative to
// reportDir, the directory the report is written to.
func (d *Document) Render(reportDir string) (string, error) {
	var b strings.Builder
	d.Header.render(&b)
	for _, g := range d.Groups {
		fmt.Fprintf(&b, "# %s\n", g.Title)
		for _, s := range g.Sections {
			fmt.Fprintf(&b, "\n## %s\n", s.Name)
			for _, l := range s.Links {
				img, err := relLink(reportDir, l.Files.Image)
				if err != nil {
					return "", err
				}
				data, err := relLink(reportDir, l.Files.Data)
				if err != nil {
					return "", err
				}
				fmt.Fprintf(&b, "\n![%s](%s)\n\n[data (csv)](%s)\n", l.Kind.Title(s.Name), img, data)
			}
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (h Header) render(b *strings.Builder) {
	b.WriteString("# Ashlock and transitive fingerprints\n\n")
	fmt.Fprintf(b, "See:\n[%s](%s)\n\n", strings.TrimPrefix(docsURL, "http://"), docsURL)
	fmt.Fprintf(b, "All strategies included from strategy library version %s and all strategies from\nmemory-one table version %s\n\n",
		h.LibraryVersion, h.TableVersion)
	fmt.Fprintf(b, "This file is autogenerated by running:\n\n```\n$ %s\n```\n\n", h.Command)
	if p, ok := h.Params[fingerprint.Ashlock]; ok {
		fmt.Fprintf(b, "Each individual fingerprint can be obtained by running:\n\n```go\n%s```\n\n", ashlockSnippet(h.Probe, h.Step, p))
	}

	b.WriteString("Fingerprints were obtained with:\n\n")
	b.WriteString("| Kind | Turns | Repetitions |\n|---|---|---|\n")
	for _, k := range fingerprint.Kinds() {
		p, ok := h.Params[k]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "| %s | %d | %d |\n", k, p.Turns, p.Repetitions)
	}
	fmt.Fprintf(b, "\nThe Ashlock fingerprint uses the %s probe on a grid of step %g.\n\n", h.Probe, h.Step)
}

func ashlockSnippet(probe string, step float64, p fingerprint.Params) string {
	var b strings.Builder
	b.WriteString("player, _ := game.ByName(name)\n")
	fmt.Fprintf(&b, "probe, _ := game.ByName(%q)\n", probe)
	fmt.Fprintf(&b, "params := fingerprint.Params{Turns: %d, Repetitions: %d}\n", p.Turns, p.Repetitions)
	fmt.Fprintf(&b, "result, err := fingerprint.ComputeAshlock(ctx, player, probe, %g, params, nil)\n", step)
	return b.String()
}

// relLink returns target as seen from base. Mixed absolute and relative
// paths are resolved against the working directory first.
func relLink(base, target string) (string, error) {
	if filepath.IsAbs(base) != filepath.IsAbs(target) {
		var err error
		if base, err = filepath.Abs(base); err != nil {
			return "", fmt.Errorf("linking %s: %w", target, err)
		}
		if target, err = filepath.Abs(target); err != nil {
			return "", fmt.Errorf("linking %s: %w", target, err)
		}
	}
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.ToSlash(target), nil
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel, nil
}

// Write renders doc and writes it to path, creating the parent directory.
func Write(path string, doc *Document) error {
	dir := filepath.Dir(path)
	text, err := doc.Render(dir)
	if err != nil {
		return err
	}
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
