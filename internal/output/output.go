package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/FranksOps/dorkhound/internal/dork"
)

// csvHeader is the fixed column layout of CSV exports.
var csvHeader = []string{"Query", "Title", "URL", "Domain", "Snippet"}

// Filename builds a timestamped export name: {prefix}_{YYYYMMDD_HHMMSS}.{ext}.
func Filename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format("20060102_150405"), ext)
}

// WriteCSV writes one row per result, preceded by a header row. Queries
// appear in first-seen order; a query with no results contributes no rows.
func WriteCSV(w io.Writer, rs *dork.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, query := range rs.Queries() {
		for _, r := range rs.Get(query) {
			if err := cw.Write([]string{query, r.Title, r.URL, r.Domain, r.Snippet}); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteJSON writes the query-to-results mapping as indented JSON.
func WriteJSON(w io.Writer, rs *dork.ResultSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rs.Map()); err != nil {
		return fmt.Errorf("encode json results: %w", err)
	}
	return nil
}

const consoleTmpl = `{{range .Queries}}
[+] {{.Query}} ({{len .Results}} results)
{{- range $i, $r := .Results}}
  {{inc $i}}. {{$r.Title}}
     {{$r.URL}}
{{- if $r.Snippet}}
     {{$r.Snippet}}
{{- end}}
{{- end}}
{{end}}`

type consoleQuery struct {
	Query   string
	Results []consoleResult
}

type consoleResult struct {
	Title   string
	URL     string
	Snippet string
}

// WriteConsole writes a human-readable listing of every query and its
// numbered results to the provided writer.
func WriteConsole(w io.Writer, rs *dork.ResultSet) error {
	tmpl, err := template.New("console").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).Parse(consoleTmpl)
	if err != nil {
		return fmt.Errorf("parse console template: %w", err)
	}

	var queries []consoleQuery
	for _, query := range rs.Queries() {
		cq := consoleQuery{Query: query}
		for _, r := range rs.Get(query) {
			cq.Results = append(cq.Results, consoleResult{
				Title:   r.Title,
				URL:     r.URL,
				Snippet: r.Snippet,
			})
		}
		queries = append(queries, cq)
	}

	data := struct{ Queries []consoleQuery }{Queries: queries}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render console output: %w", err)
	}
	return nil
}

// save creates a timestamped file under dir and streams the result set into
// it through write. It returns the path of the created file.
func save(dir, prefix, ext string, rs *dork.ResultSet, write func(io.Writer, *dork.ResultSet) error) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}

	path := filepath.Join(dir, Filename(prefix, ext, time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}

	if err := write(f, rs); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close output file: %w", err)
	}
	return path, nil
}

// SaveCSV writes the result set to {prefix}_{timestamp}.csv under dir.
func SaveCSV(dir, prefix string, rs *dork.ResultSet) (string, error) {
	return save(dir, prefix, "csv", rs, WriteCSV)
}

// SaveJSON writes the result set to {prefix}_{timestamp}.json under dir.
func SaveJSON(dir, prefix string, rs *dork.ResultSet) (string, error) {
	return save(dir, prefix, "json", rs, WriteJSON)
}
