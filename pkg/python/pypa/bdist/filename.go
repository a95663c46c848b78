// Package bdist implements the filename parts of the PyPA binary
// distribution format ("wheel", originally PEP 427).
//
// https://packaging.python.org/specifications/binary-distribution-format/
package bdist

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/datawire/wheelhouse/pkg/python/pep425"
)

// ErrMalformedFilename indicates a filename that does not follow the wheel
// "{distribution}-{version}-{python tag}-{abi tag}-{platform tag}.whl"
// convention.
var ErrMalformedFilename = errors.New("malformed wheel filename")

// FileNameData is the result of parsing a wheel filename: exactly five
// dash-delimited fields, of which the last three are the compatibility tag.
type FileNameData struct {
	Distribution     string
	Version          string
	CompatibilityTag pep425.Tag
}

// As the fields of the filename are separated by a dash, a dash cannot appear
// within any field.
var reFilename = regexp.MustCompile(`^` +
	`(?P<distribution>[^-]+)` +
	`-(?P<version>[^-]+)` +
	`-(?P<python>[^-]+)` +
	`-(?P<abi>[^-]+)` +
	`-(?P<platform>[^-]+)` +
	`\.whl$`)

// ParseFilename parses a wheel filename in to its five dash-delimited fields.
// Each field must be a non-empty run of dash-free characters, and the last
// field must carry the (case-sensitive) ".whl" suffix.  Anything else --
// too few fields, too many fields (which includes the optional six-field
// build-tag form), an empty field, a missing suffix -- is rejected with an
// error wrapping ErrMalformedFilename.
//
// ParseFilename is a pure function; it never touches the filesystem.
func ParseFilename(filename string) (*FileNameData, error) {
	match := reFilename.FindStringSubmatch(filename)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedFilename, filename)
	}
	return &FileNameData{
		Distribution: match[reFilename.SubexpIndex("distribution")],
		Version:      match[reFilename.SubexpIndex("version")],
		CompatibilityTag: pep425.Tag{
			Python:   match[reFilename.SubexpIndex("python")],
			ABI:      match[reFilename.SubexpIndex("abi")],
			Platform: match[reFilename.SubexpIndex("platform")],
		},
	}, nil
}

// GenerateFilename is the inverse of ParseFilename.  It is the caller's
// responsibility that each field value is itself valid (non-empty and
// dash-free); GenerateFilename joins the fields verbatim, with no escaping.
func GenerateFilename(data FileNameData) string {
	return data.Distribution +
		"-" + data.Version +
		"-" + data.CompatibilityTag.String() +
		".whl"
}
