package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Requirement — одна строка манифеста вида name>=version
type Requirement struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Line    int    `json:"line"`
}

func (r Requirement) String() string {
	return r.Name + ">=" + r.Version
}

// Manifest — распарсенный манифест моделей (requirements.txt)
type Manifest struct {
	Path         string        `json:"path"`
	Requirements []Requirement `json:"requirements"`
}

type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("manifest line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
}

// Parse читает манифест построчно: пустые строки и комментарии (#) пропускаются,
// остальные строки обязаны иметь форму name>=version.
func Parse(r io.Reader) ([]Requirement, error) {
	scanner := bufio.NewScanner(r)

	var reqs []Requirement
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		req, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return reqs, nil
}

func parseLine(line string, lineNo int) (Requirement, error) {
	idx := strings.Index(line, ">=")
	if idx < 0 {
		return Requirement{}, &ParseError{Line: lineNo, Reason: fmt.Sprintf("expected name>=version, got %q", line)}
	}

	name := strings.TrimSpace(line[:idx])
	version := strings.TrimSpace(line[idx+2:])

	if name == "" {
		return Requirement{}, &ParseError{Line: lineNo, Reason: "empty package name"}
	}
	if version == "" {
		return Requirement{}, &ParseError{Line: lineNo, Reason: fmt.Sprintf("empty version for %q", name)}
	}

	return Requirement{Name: name, Version: version, Line: lineNo}, nil
}

func ParseFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	reqs, err := Parse(f)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}

	return &Manifest{Path: path, Requirements: reqs}, nil
}

// Find ищет пакет по имени; дефисы и подчёркивания считаются эквивалентными.
func (m *Manifest) Find(name string) (Requirement, bool) {
	want := normalize(name)
	for _, r := range m.Requirements {
		if normalize(r.Name) == want {
			return r, true
		}
	}
	return Requirement{}, false
}

func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Requirements)
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}
