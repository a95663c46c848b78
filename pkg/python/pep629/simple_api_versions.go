// Package pep629 implements PEP 629 -- Versioning PyPI's Simple API.
//
// https://www.python.org/dev/peps/pep-0629/
package pep629

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/datawire/dlib/dlog"
	"golang.org/x/net/html"

	"github.com/datawire/wheelhouse/pkg/htmlutil"
)

// MetaName is the name= of the <meta> element that declares which version of
// the simple repository API an index page speaks.
const MetaName = "pypi:repository-version"

// SupportedVersion is the newest API version that this package knows about.
// It is both what the index generator stamps in to the pages it writes and
// what the crawler checks fetched pages against.
const SupportedVersion = "1.0"

func parseVersion(str string) (major, minor int, err error) {
	parts := strings.SplitN(str, ".", 2)
	if len(parts) == 2 {
		var majorErr, minorErr error
		major, majorErr = strconv.Atoi(parts[0])
		minor, minorErr = strconv.Atoi(parts[1])
		if majorErr == nil && minorErr == nil {
			return major, minor, nil
		}
	}
	return 0, 0, fmt.Errorf("invalid repository version: %q", str)
}

// GetVersion returns the API version that an index page declares.  Pages that
// declare no version are version "1.0".
func GetVersion(doc *html.Node) (string, error) {
	// <meta name="pypi:repository-version" content="1.0">
	var verStr string
	err := htmlutil.VisitHTML(doc, nil, func(node *html.Node) error {
		if node.Type != html.ElementNode || node.Data != "meta" {
			return nil
		}
		name, _ := htmlutil.GetAttr(node, "", "name")
		if name != MetaName {
			return nil
		}
		_verStr, ok := htmlutil.GetAttr(node, "", "content")
		if ok {
			verStr = _verStr
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if verStr == "" {
		verStr = SupportedVersion
	}
	if _, _, err := parseVersion(verStr); err != nil {
		return "", err
	}
	return verStr, nil
}

// HTMLVersionCheck is a pep503.Client.HTMLHook that rejects pages from
// servers speaking an incompatible major version of the API.
func HTMLVersionCheck(ctx context.Context, doc *html.Node) error {
	verStr, err := GetVersion(doc)
	if err != nil {
		return err
	}
	major, minor, err := parseVersion(verStr)
	if err != nil {
		return err
	}
	supMajor, supMinor, _ := parseVersion(SupportedVersion)
	if major > supMajor {
		return fmt.Errorf("server's pypi:repository version (%s) is not compatible with this client", verStr)
	}
	if major == supMajor && minor > supMinor {
		dlog.Warnf(ctx, "server's pypi:repository version (%s) is newer than this client", verStr)
	}
	return nil
}
