// Package repoconfig reads and writes the repository-local .embr/config
// file: a small Git-style INI format with plain sections ([core],
// [model], [storage], [git]) and quoted subsections
// ([git "hooks.pre-commit"]).
//
// No library in the retrieval pack carries a general-purpose INI parser
// (the teacher and its peers all use YAML via koanf for their own
// configuration), and the format here is small and fully bit-exact to
// spec, so it is hand-parsed rather than pulled in from a third-party INI
// package — see DESIGN.md for the stdlib-justification entry.
package repoconfig

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// HeaderComment is the first line written to every repository config file.
const HeaderComment = "# EmbeddingBridge config file"

// section is one [name] or [name "sub"] block, keys kept in insertion
// order so repeated loads/writes are stable.
type section struct {
	name string
	sub  string
	keys []string
	vals map[string]string
}

// INI is an ordered collection of sections.
type INI struct {
	sections []*section
}

// New returns an empty INI document.
func New() *INI {
	return &INI{}
}

func (c *INI) find(name, sub string) *section {
	for _, s := range c.sections {
		if s.name == name && s.sub == sub {
			return s
		}
	}
	return nil
}

// Section returns the section for (name, sub), creating it if absent.
// sub is "" for a plain [name] section.
func (c *INI) Section(name, sub string) *section {
	if s := c.find(name, sub); s != nil {
		return s
	}
	s := &section{name: name, sub: sub, vals: make(map[string]string)}
	c.sections = append(c.sections, s)
	return s
}

// Sections returns every section whose name matches, plain and quoted
// alike — used to enumerate all "[git \"hooks.*\"]" entries.
func (c *INI) Sections(name string) []*section {
	var out []*section
	for _, s := range c.sections {
		if s.name == name {
			out = append(out, s)
		}
	}
	return out
}

func (s *section) Name() string { return s.name }
func (s *section) Sub() string  { return s.sub }

// Get returns the value for key, and whether it was present.
func (s *section) Get(key string) (string, bool) {
	v, ok := s.vals[key]
	return v, ok
}

// GetDefault returns the value for key, or def if absent.
func (s *section) GetDefault(key, def string) string {
	if v, ok := s.vals[key]; ok {
		return v
	}
	return def
}

// Set assigns key=value, appending key to the insertion order the first
// time it is set.
func (s *section) Set(key, value string) {
	if _, ok := s.vals[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.vals[key] = value
}

// Keys returns this section's keys in insertion order.
func (s *section) Keys() []string { return append([]string(nil), s.keys...) }

// Parse reads an INI document from data.
func Parse(data []byte) (*INI, error) {
	const op = "repoconfig.Parse"
	cfg := New()

	scanner := bufio.NewScanner(bytes.NewReader(data))
	var current *section
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			name, sub, err := parseSectionHeader(line)
			if err != nil {
				return nil, ebterr.Wrap(op, ebterr.KindConfig, err)
			}
			current = cfg.Section(name, sub)
			continue
		}
		if current == nil {
			return nil, ebterr.New(op, ebterr.KindConfig, "key=value line outside of any section: "+line)
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, ebterr.New(op, ebterr.KindConfig, "malformed line (missing '='): "+line)
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		current.Set(key, val)
	}
	if err := scanner.Err(); err != nil {
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return cfg, nil
}

func parseSectionHeader(line string) (name, sub string, err error) {
	if !strings.HasSuffix(line, "]") {
		return "", "", fmt.Errorf("malformed section header: %s", line)
	}
	body := line[1 : len(line)-1]
	if q := strings.IndexByte(body, '"'); q >= 0 {
		name = strings.TrimSpace(body[:q])
		rest := body[q+1:]
		endQ := strings.LastIndexByte(rest, '"')
		if endQ < 0 {
			return "", "", fmt.Errorf("unterminated quoted subsection: %s", line)
		}
		sub = rest[:endQ]
		return name, sub, nil
	}
	return strings.TrimSpace(body), "", nil
}

// Bytes renders the document, preceded by HeaderComment.
func (c *INI) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(HeaderComment)
	buf.WriteByte('\n')
	buf.Write(c.BytesNoHeader())
	return buf.Bytes()
}

// BytesNoHeader renders the document without HeaderComment, for INI
// files other than .embr/config itself (e.g. per-remote records).
func (c *INI) BytesNoHeader() []byte {
	var buf bytes.Buffer
	for _, s := range c.sections {
		if s.sub == "" {
			fmt.Fprintf(&buf, "[%s]\n", s.name)
		} else {
			fmt.Fprintf(&buf, "[%s \"%s\"]\n", s.name, s.sub)
		}
		for _, k := range s.keys {
			fmt.Fprintf(&buf, "\t%s = %s\n", k, s.vals[k])
		}
	}
	return buf.Bytes()
}
