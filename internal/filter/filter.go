// Package filter applies JDK-exclusion plus user-supplied include/exclude
// package prefixes to fully qualified class names.
package filter

import "strings"

// jdkPrefixes are the package roots considered part of the JDK/runtime,
// excluded when Options.ExcludeJDK is set.
var jdkPrefixes = []string{
	"java.",
	"javax.",
	"sun.",
	"com.sun.",
	"jdk.",
	"com.oracle.",
	"org.w3c.",
	"org.xml.",
	"org.ietf.",
}

// Options configures a Filter. Zero value admits everything, JDK classes
// included.
type Options struct {
	ExcludeJDK      bool
	IncludePrefixes []string // if non-empty, fqn must match one (exact or package-prefix)
	ExcludePrefixes []string
}

// Filter is an immutable, precomputed admission predicate.
type Filter struct {
	opts Options
}

// New builds a Filter from opts.
func New(opts Options) *Filter {
	return &Filter{opts: opts}
}

func isJDKClass(fqn string) bool {
	for _, p := range jdkPrefixes {
		if strings.HasPrefix(fqn, p) {
			return true
		}
	}
	return false
}

// matchesPrefix reports whether fqn equals prefix exactly, or falls under
// prefix as a package (prefix followed by '.').
func matchesPrefix(fqn, prefix string) bool {
	if fqn == prefix {
		return true
	}
	return strings.HasPrefix(fqn, prefix+".")
}

// Admits reports whether fqn passes this filter: JDK exclusion first (if
// enabled), then exclude-prefixes, then include-prefixes (if any are
// configured, fqn must match at least one). Exclude always wins over
// include.
func (f *Filter) Admits(fqn string) bool {
	if f.opts.ExcludeJDK && isJDKClass(fqn) {
		return false
	}
	for _, ex := range f.opts.ExcludePrefixes {
		if matchesPrefix(fqn, ex) {
			return false
		}
	}
	if len(f.opts.IncludePrefixes) == 0 {
		return true
	}
	for _, in := range f.opts.IncludePrefixes {
		if matchesPrefix(fqn, in) {
			return true
		}
	}
	return false
}

// AdmitsEdge reports whether a call edge between two owner FQNs should be
// retained — both endpoints must be admitted.
func (f *Filter) AdmitsEdge(sourceOwnerFQN, targetOwnerFQN string) bool {
	return f.Admits(sourceOwnerFQN) && f.Admits(targetOwnerFQN)
}
