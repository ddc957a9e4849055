// Package dashboard generates a static, self-contained index.html over a
// directory tree of rendered digest PDFs. It reads only filesystem metadata
// and has no coupling to the matching pipeline.
package dashboard

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/harborne/mentionwatch/internal/logger"
)

// Entry is one PDF on disk.
type Entry struct {
	Group    string
	RelPath  string
	Name     string
	Modified time.Time
}

// RootGroup is the synthetic group for PDFs directly under the root.
const RootGroup = "_root"

// Collect walks root one level deep: each subdirectory is a group, plus the
// root itself. Entries within a group are newest-first by modification time.
func Collect(root string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read output root: %w", err)
	}

	var subdirs []string
	for _, de := range dirEntries {
		if de.IsDir() {
			subdirs = append(subdirs, de.Name())
		}
	}
	sort.Slice(subdirs, func(i, j int) bool {
		return strings.ToLower(subdirs[i]) < strings.ToLower(subdirs[j])
	})

	var entries []Entry
	for _, sub := range subdirs {
		group, err := collectGroup(root, sub, sub)
		if err != nil {
			logger.Warn("skipping group", "dir", sub, "error", err)
			continue
		}
		entries = append(entries, group...)
	}

	rootGroup, err := collectGroup(root, "", RootGroup)
	if err != nil {
		return nil, err
	}
	entries = append(entries, rootGroup...)
	return entries, nil
}

func collectGroup(root, sub, groupName string) ([]Entry, error) {
	dir := filepath.Join(root, sub)
	names, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, p := range names {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			continue
		}
		out = append(out, Entry{
			Group:    groupName,
			RelPath:  filepath.ToSlash(rel),
			Name:     filepath.Base(p),
			Modified: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Modified.After(out[j].Modified)
	})
	return out, nil
}

type pageData struct {
	Generated time.Time
	Groups    []string
	Years     []int
	Entries   []Entry
}

// Build collects PDFs under root and writes index.html there.
func Build(root string) error {
	entries, err := Collect(root)
	if err != nil {
		return err
	}

	groupSet := make(map[string]bool)
	yearSet := make(map[int]bool)
	for _, e := range entries {
		groupSet[e.Group] = true
		yearSet[e.Modified.Year()] = true
	}
	var groups []string
	for g := range groupSet {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	var years []int
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	out := filepath.Join(root, "index.html")
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	data := pageData{
		Generated: time.Now(),
		Groups:    groups,
		Years:     years,
		Entries:   entries,
	}
	if err := pageTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	logger.Info("dashboard written", "path", out, "files", len(entries))
	return nil
}

var pageTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"fmtTime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	"year":    func(t time.Time) string { return t.Format("2006") },
}).Parse(pageHTML))
