// Package update compares installed Firefox versions against the remote
// release channels and classifies each channel's status.
package update

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// segmentPattern matches one dot-separated version segment with an optional
// pre-release qualifier, e.g. "0", "12", "0b9", "0a1".
var segmentPattern = regexp.MustCompile(`^(\d+)(?:([ab])(\d+)?)?$`)

// Version is a parsed Firefox-style version: dot-separated numeric segments
// where the final segment may carry a pre-release qualifier.
// Examples: "115.0", "115.0.2", "128.0b9", "143.0a1", "115.12.0esr".
type Version struct {
	Segments  []int
	Qualifier string // "a1", "b9", ...; empty for releases
}

// ParseVersion parses a Firefox version string. The "esr" marker is stripped
// before parsing; ESR and mainline builds never share a channel, so it does
// not participate in ordering.
func ParseVersion(s string) (*Version, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimSuffix(trimmed, "esr")
	if trimmed == "" {
		return nil, fmt.Errorf("empty version string")
	}

	parts := strings.Split(trimmed, ".")
	v := &Version{Segments: make([]int, 0, len(parts))}
	for i, part := range parts {
		m := segmentPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("invalid version format: %s", s)
		}
		// Qualifiers are only valid on the last segment.
		if m[2] != "" && i != len(parts)-1 {
			return nil, fmt.Errorf("invalid version format: %s", s)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("invalid version format: %s", s)
		}
		v.Segments = append(v.Segments, n)
		if m[2] != "" {
			v.Qualifier = m[2] + m[3]
		}
	}

	return v, nil
}

// String returns the canonical representation, with the qualifier attached
// to the final segment.
func (v *Version) String() string {
	parts := make([]string, len(v.Segments))
	for i, seg := range v.Segments {
		parts[i] = strconv.Itoa(seg)
	}
	return strings.Join(parts, ".") + v.Qualifier
}

// segment returns the i-th segment, treating missing segments as zero so
// "115.0" compares equal to "115.0.0".
func (v *Version) segment(i int) int {
	if i < len(v.Segments) {
		return v.Segments[i]
	}
	return 0
}

// Compare returns 1 if v > other, 0 if equal, -1 if v < other.
// Numeric segments are compared left to right with zero padding. When the
// numbers tie, a release outranks any pre-release of the same number, and
// pre-releases order by letter then numeric suffix (143.0a1 < 143.0b2 < 143.0).
func (v *Version) Compare(other *Version) int {
	n := len(v.Segments)
	if len(other.Segments) > n {
		n = len(other.Segments)
	}
	for i := 0; i < n; i++ {
		a, b := v.segment(i), other.segment(i)
		if a != b {
			if a > b {
				return 1
			}
			return -1
		}
	}

	switch {
	case v.Qualifier == other.Qualifier:
		return 0
	case v.Qualifier == "":
		return 1
	case other.Qualifier == "":
		return -1
	}
	return compareQualifiers(v.Qualifier, other.Qualifier)
}

// IsGreaterThan returns true if v > other.
func (v *Version) IsGreaterThan(other *Version) bool {
	return v.Compare(other) > 0
}

// IsLessThan returns true if v < other.
func (v *Version) IsLessThan(other *Version) bool {
	return v.Compare(other) < 0
}

// compareQualifiers orders two non-empty pre-release qualifiers by their
// letter, then by their numeric suffix ("a" sorts before "b", "b2" before "b10").
func compareQualifiers(a, b string) int {
	if a[0] != b[0] {
		if a[0] > b[0] {
			return 1
		}
		return -1
	}
	an, _ := strconv.Atoi(a[1:])
	bn, _ := strconv.Atoi(b[1:])
	switch {
	case an > bn:
		return 1
	case an < bn:
		return -1
	}
	return 0
}

// CompareVersions compares two version strings.
// Returns:
//   - 1 if v1 > v2
//   - 0 if v1 == v2
//   - -1 if v1 < v2
//   - error if either version is invalid
func CompareVersions(v1, v2 string) (int, error) {
	ver1, err := ParseVersion(v1)
	if err != nil {
		return 0, fmt.Errorf("invalid version v1: %w", err)
	}

	ver2, err := ParseVersion(v2)
	if err != nil {
		return 0, fmt.Errorf("invalid version v2: %w", err)
	}

	return ver1.Compare(ver2), nil
}
