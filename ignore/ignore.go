// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ignore provides glob-file helpers that classify paths within a
// directory tree as ignored or visible, the way an editor's file navigator
// hides build output, vendored dependencies, and VCS internals from fuzzy
// search without excluding them from the underlying index.
package ignore

import (
	"bufio"
	"io"
	"strings"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

const lineComment = "#"

// FileName is the conventional name of an ignore file at the root of a
// directory tree.
var FileName = ".fuzzypathignore"

// DefaultPatterns are applied to every tree ahead of its own ignore file,
// the way a file navigator hides VCS internals and common build output
// even for a project that ships no ignore file of its own. A tree's own
// patterns are layered on top and can re-include anything a default
// pattern hides (see rule, below).
var DefaultPatterns = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"vendor",
	"target",
	"dist",
	"build",
}

// rule is one compiled line of an ignore file: a glob plus whether it
// re-includes a path instead of excluding it.
type rule struct {
	pattern glob.Glob
	negate  bool
}

// Matcher holds the compiled ignore rules for one directory tree, in file
// order. Matching follows gitignore precedence: the last rule whose
// pattern matches a path decides whether that path is ignored, so a
// narrower pattern later in the file can re-include something an earlier,
// broader pattern excluded.
type Matcher struct {
	rules []rule
}

// compilePattern turns one non-comment, non-empty ignore-file line into a
// glob pattern: a leading '!' negates the rule, a leading '/' is dropped
// (every pattern is matched from the tree root), and a pattern with no
// glob metacharacters gets an implicit trailing ** so "vendor" matches
// everything under vendor/, not just an entry named exactly "vendor".
func compilePattern(line string) (rule, error) {
	var r rule
	if strings.HasPrefix(line, "!") {
		r.negate = true
		line = line[1:]
	}
	line = strings.TrimPrefix(line, "/")
	if !strings.ContainsAny(line, "][*?") {
		line += "**"
	}
	pattern, err := glob.Compile(line, '/')
	if err != nil {
		return rule{}, err
	}
	r.pattern = pattern
	return r, nil
}

// defaultRules compiles DefaultPatterns once per Matcher construction. They
// come first in rule order so a tree's own file can override them by
// precedence.
func defaultRules() []rule {
	rules := make([]rule, 0, len(DefaultPatterns))
	for _, p := range DefaultPatterns {
		r, err := compilePattern(p)
		if err != nil {
			// DefaultPatterns are fixed literals without glob
			// metacharacters; a compile failure here is a programming
			// error, not a runtime condition to recover from.
			panic(errors.Wrapf(err, "compiling default ignore pattern %q", p))
		}
		rules = append(rules, r)
	}
	return rules
}

// ParseFile parses an ignore file according to the following rules:
//
//   - each line is a glob pattern relative to the root of the tree
//   - patterns without any glob characters get an implicit trailing **
//   - a line prefixed with ! re-includes a path an earlier pattern excluded
//   - lines starting with # are comments
//   - empty lines are ignored
//
// The returned Matcher already includes DefaultPatterns ahead of the
// file's own rules, so ParseFile on an empty reader still yields a Matcher
// that hides VCS internals and common build output.
func ParseFile(r io.Reader) (*Matcher, error) {
	rules := defaultRules()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, lineComment) {
			continue
		}
		compiled, err := compilePattern(line)
		if err != nil {
			return nil, errors.Wrapf(err, "compiling ignore pattern %q", line)
		}
		rules = append(rules, compiled)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading ignore file")
	}
	return &Matcher{rules: rules}, nil
}

// Match reports whether path is ignored: the last rule that matches it
// wins, so a negated pattern later in the tree's ignore file can re-include
// a path a default or earlier pattern excluded. A nil or rule-less Matcher
// matches nothing, so walking a tree with no ignore file and no applicable
// default still treats every file as visible.
func (m *Matcher) Match(path string) bool {
	if m == nil {
		return false
	}
	ignored := false
	for _, r := range m.rules {
		if r.pattern.Match(path) {
			ignored = !r.negate
		}
	}
	return ignored
}
