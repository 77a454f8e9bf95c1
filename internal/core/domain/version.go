package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// Version is a parsed semantic version.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	original   string
}

// ParseVersion parses a full major.minor.patch version with an optional pre-release and build suffix.
// A leading "v" or "=" is accepted.
func ParseVersion(s string) (Version, error) {
	v, ok := parsePartial(s)
	if !ok || v.parts != 3 {
		return Version{}, zerr.With(zerr.Wrap(ErrInvalidVersion, "malformed version"), "version", s)
	}
	v.Version.original = strings.TrimSpace(s)
	return v.Version, nil
}

// String returns the version as it was written.
func (v Version) String() string {
	if v.original != "" {
		return v.original
	}
	s := strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

// Compare orders v against other by semver precedence.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
func (v Version) Compare(other Version) int {
	return semver.Compare(v.canonical(), other.canonical())
}

func (v Version) canonical() string {
	s := "v" + strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

func (v Version) sameTuple(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor && v.Patch == other.Patch
}

// CompareVersions orders two version strings by semver precedence.
func CompareVersions(a, b string) (int, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// Satisfies reports whether version falls inside rng.
// Supported ranges are caret, tilde, the comparison operators, x-ranges, hyphen ranges,
// space separated intersections and "||" unions. An empty range, "*" and "latest" match any release.
func Satisfies(version, rng string) (bool, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return false, err
	}
	r, err := ParseRange(rng)
	if err != nil {
		return false, err
	}
	return r.Contains(v), nil
}

// PickLatest returns the highest version of the given set.
func PickLatest(versions []string) (string, error) {
	if len(versions) == 0 {
		return "", ErrEmptyVersionSet
	}

	latest := ""
	var latestVersion Version
	for _, s := range versions {
		v, err := ParseVersion(s)
		if err != nil {
			return "", err
		}
		if latest == "" || v.Compare(latestVersion) > 0 {
			latest, latestVersion = s, v
		}
	}
	return latest, nil
}

// Range is a parsed version range: a union of comparator sets.
type Range struct {
	sets     [][]comparator
	original string
}

type comparator struct {
	op      string
	version Version
}

func (c comparator) matches(v Version) bool {
	cmp := v.Compare(c.version)
	switch c.op {
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	default:
		return cmp == 0
	}
}

// ParseRange parses a version range expression.
func ParseRange(rng string) (Range, error) {
	r := Range{original: rng}
	for alt := range strings.SplitSeq(rng, "||") {
		set, err := parseComparatorSet(alt)
		if err != nil {
			return Range{}, zerr.With(zerr.With(err, "range", rng), "comparator", strings.TrimSpace(alt))
		}
		r.sets = append(r.sets, set)
	}
	return r, nil
}

// String returns the range as it was written.
func (r Range) String() string {
	return r.original
}

// Contains reports whether v is inside the range.
// A pre-release only matches a set that names a pre-release of the same major.minor.patch.
func (r Range) Contains(v Version) bool {
	for _, set := range r.sets {
		if setContains(set, v) {
			return true
		}
	}
	return false
}

func setContains(set []comparator, v Version) bool {
	for _, c := range set {
		if !c.matches(v) {
			return false
		}
	}
	if v.Prerelease == "" {
		return true
	}
	for _, c := range set {
		if c.version.Prerelease != "" && c.version.sameTuple(v) {
			return true
		}
	}
	return false
}

func parseComparatorSet(s string) ([]comparator, error) {
	fields := strings.Fields(s)

	if len(fields) == 3 && fields[1] == "-" {
		return hyphenRange(fields[0], fields[2])
	}

	// Operators separated from their version ("> 1.2.3") are joined back.
	var tokens []string
	for i := 0; i < len(fields); i++ {
		tok := fields[i]
		if isOperator(tok) && i+1 < len(fields) {
			tok += fields[i+1]
			i++
		}
		tokens = append(tokens, tok)
	}

	if len(tokens) == 0 {
		return []comparator{}, nil
	}

	var set []comparator
	for _, tok := range tokens {
		cs, err := desugar(tok)
		if err != nil {
			return nil, err
		}
		set = append(set, cs...)
	}
	return set, nil
}

func isOperator(s string) bool {
	switch s {
	case "^", "~", "~>", ">", ">=", "<", "<=", "=":
		return true
	}
	return false
}

func splitOperator(tok string) (string, string) {
	for _, op := range []string{">=", "<=", "~>", ">", "<", "=", "^", "~"} {
		if strings.HasPrefix(tok, op) {
			return op, strings.TrimSpace(tok[len(op):])
		}
	}
	return "", tok
}

// partial is a version where trailing components may be missing or wildcards.
type partial struct {
	Version
	parts int
}

func isWildcard(s string) bool {
	return s == "x" || s == "X" || s == "*"
}

func parsePartial(s string) (partial, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "=")
	s = strings.TrimPrefix(s, "v")
	if s == "" || isWildcard(s) {
		return partial{}, true
	}

	core, build, _ := strings.Cut(s, "+")
	core, pre, hasPre := strings.Cut(core, "-")

	nums := strings.Split(core, ".")
	if len(nums) > 3 {
		return partial{}, false
	}

	var p partial
	for i, n := range nums {
		if isWildcard(n) {
			break
		}
		if n == "" || (len(n) > 1 && n[0] == '0') {
			return partial{}, false
		}
		x, err := strconv.Atoi(n)
		if err != nil || x < 0 {
			return partial{}, false
		}
		switch i {
		case 0:
			p.Major = x
		case 1:
			p.Minor = x
		case 2:
			p.Patch = x
		}
		p.parts++
	}

	if hasPre {
		if p.parts != 3 {
			return partial{}, false
		}
		p.Prerelease = pre
	}

	// Validate the suffixes with the module semver rules.
	check := "v" + strconv.Itoa(p.Major) + "." + strconv.Itoa(p.Minor) + "." + strconv.Itoa(p.Patch)
	if hasPre {
		check += "-" + pre
	}
	if build != "" {
		check += "+" + build
	}
	if !semver.IsValid(check) {
		return partial{}, false
	}
	return p, true
}

func invalidRange(tok string) error {
	return zerr.With(zerr.Wrap(ErrInvalidVersionRange, "malformed comparator"), "token", tok)
}

func desugar(tok string) ([]comparator, error) {
	if tok == "latest" {
		return nil, nil
	}

	op, rest := splitOperator(tok)
	p, ok := parsePartial(rest)
	if !ok {
		return nil, invalidRange(tok)
	}

	switch op {
	case "^":
		return caret(p), nil
	case "~", "~>":
		return tilde(p), nil
	case "", "=":
		return exactOrX(p), nil
	default:
		return primitive(op, p), nil
	}
}

func ver(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

func lower(p partial) comparator {
	return comparator{op: ">=", version: p.Version}
}

func caret(p partial) []comparator {
	switch {
	case p.parts == 0:
		return nil
	case p.Major > 0 || p.parts == 1:
		return []comparator{lower(p), {op: "<", version: ver(p.Major+1, 0, 0)}}
	case p.Minor > 0 || p.parts == 2:
		return []comparator{lower(p), {op: "<", version: ver(0, p.Minor+1, 0)}}
	default:
		return []comparator{lower(p), {op: "<", version: ver(0, 0, p.Patch+1)}}
	}
}

func tilde(p partial) []comparator {
	switch p.parts {
	case 0:
		return nil
	case 1:
		return []comparator{lower(p), {op: "<", version: ver(p.Major+1, 0, 0)}}
	default:
		return []comparator{lower(p), {op: "<", version: ver(p.Major, p.Minor+1, 0)}}
	}
}

func exactOrX(p partial) []comparator {
	switch p.parts {
	case 0:
		return nil
	case 1:
		return []comparator{lower(p), {op: "<", version: ver(p.Major+1, 0, 0)}}
	case 2:
		return []comparator{lower(p), {op: "<", version: ver(p.Major, p.Minor+1, 0)}}
	default:
		return []comparator{{op: "=", version: p.Version}}
	}
}

func primitive(op string, p partial) []comparator {
	if p.parts == 0 {
		if op == "<" || op == ">" {
			// Nothing is below or above every version.
			return []comparator{{op: "<", version: ver(0, 0, 0)}}
		}
		return nil
	}
	if p.parts == 3 {
		return []comparator{{op: op, version: p.Version}}
	}

	next := ver(p.Major+1, 0, 0)
	if p.parts == 2 {
		next = ver(p.Major, p.Minor+1, 0)
	}
	switch op {
	case ">":
		return []comparator{{op: ">=", version: next}}
	case "<=":
		return []comparator{{op: "<", version: next}}
	default:
		return []comparator{{op: op, version: p.Version}}
	}
}

func hyphenRange(from, to string) ([]comparator, error) {
	lo, ok := parsePartial(from)
	if !ok {
		return nil, invalidRange(from)
	}
	hi, ok := parsePartial(to)
	if !ok {
		return nil, invalidRange(to)
	}

	var set []comparator
	if lo.parts > 0 {
		set = append(set, lower(lo))
	}
	switch hi.parts {
	case 0:
	case 3:
		set = append(set, comparator{op: "<=", version: hi.Version})
	default:
		set = append(set, primitive("<=", hi)...)
	}
	return set, nil
}
