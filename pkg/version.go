package pkg

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// Version of a project or of the engine, of the form MAJOR.MINOR.PATCH.
type Version [3]int

var versionRegex = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// ParseVersion parses a version of the form MAJOR.MINOR.PATCH.
func ParseVersion(s string) (Version, error) {
	var v Version
	if err := v.UnmarshalText([]byte(s)); err != nil {
		return Version{}, err
	}
	return v, nil
}

func (v *Version) UnmarshalText(src []byte) error {
	parts := versionRegex.FindStringSubmatch(string(src))
	if parts == nil {
		return errors.Errorf("pkg: %q is not a valid version", string(src))
	}

	for i, p := range parts[1:] {
		n, err := strconv.Atoi(p)
		if err != nil {
			return errors.Wrapf(err, "pkg: %q is not a valid version", string(src))
		}
		v[i] = n
	}
	return nil
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// Compare returns -1, 0 or 1 if v is lower than, equal to or greater than o.
func (v Version) Compare(o Version) int {
	for i := range v {
		switch {
		case v[i] < o[i]:
			return -1
		case v[i] > o[i]:
			return 1
		}
	}
	return 0
}

// VersionRange is a range of accepted versions. It has exactly the form
// "MAJOR.MINOR.PATCH <= v < MAJOR.MINOR.PATCH".
type VersionRange struct {
	Min Version
	Max Version
}

var versionRangeRegex = regexp.MustCompile(`^(\d+\.\d+\.\d+) <= v < (\d+\.\d+\.\d+)$`)

func (vr *VersionRange) UnmarshalText(src []byte) error {
	versions := versionRangeRegex.FindStringSubmatch(string(src))
	if versions == nil {
		return errors.Errorf("pkg: %q is not a valid version range", string(src))
	}

	if err := vr.Min.UnmarshalText([]byte(versions[1])); err != nil {
		return err
	}
	if err := vr.Max.UnmarshalText([]byte(versions[2])); err != nil {
		return err
	}

	if vr.Min.Compare(vr.Max) >= 0 {
		return errors.Errorf("pkg: version range %q is empty", string(src))
	}
	return nil
}

func (vr VersionRange) MarshalText() ([]byte, error) {
	return []byte(vr.String()), nil
}

func (vr VersionRange) String() string {
	return fmt.Sprintf("%s <= v < %s", vr.Min, vr.Max)
}

// Contains reports whether v is inside the range.
func (vr VersionRange) Contains(v Version) bool {
	return vr.Min.Compare(v) <= 0 && v.Compare(vr.Max) < 0
}

// IsZero reports whether the range was never set.
func (vr VersionRange) IsZero() bool {
	return vr == VersionRange{}
}
