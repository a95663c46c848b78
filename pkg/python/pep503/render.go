package pep503

import (
	"html"
	"sort"
	"strings"

	"github.com/datawire/wheelhouse/pkg/python/pep629"
)

// The serving side of the repository API: rendering the static index pages
// that the Client half of this package crawls.  The markup vocabulary is the
// minimum that PEP 503 requires an installer to understand -- a document with
// anchor elements -- plus the PEP 629 version declaration.

func renderHead(page *strings.Builder, title string) {
	page.WriteString("<!DOCTYPE html>\n")
	page.WriteString("<html>\n")
	page.WriteString("<head>\n")
	page.WriteString(`  <meta name="` + pep629.MetaName + `" content="` + pep629.SupportedVersion + "\"/>\n")
	page.WriteString("  <title>" + html.EscapeString(title) + "</title>\n")
	page.WriteString("</head>\n")
	page.WriteString("<body>\n")
	page.WriteString("  <h1>" + html.EscapeString(title) + "</h1>\n")
}

func renderFoot(page *strings.Builder) {
	page.WriteString("</body>\n")
	page.WriteString("</html>\n")
}

// RenderProjectPage renders the index page for a single project.  It emits
// one link per filename, in ascending lexicographic filename order, with
// href = baseURL + "/" + filename (any trailing slashes on baseURL are
// trimmed first, to avoid a double slash) and the bare filename as the link
// text.
//
// The output is byte-for-byte deterministic in the *set* of filenames: the
// order of the input slice does not matter, and duplicates collapse.
func RenderProjectPage(pkgname string, filenames []string, baseURL string) string {
	base := strings.TrimRight(baseURL, "/")

	sorted := make([]string, 0, len(filenames))
	seen := make(map[string]struct{}, len(filenames))
	for _, filename := range filenames {
		if _, dup := seen[filename]; dup {
			continue
		}
		seen[filename] = struct{}{}
		sorted = append(sorted, filename)
	}
	sort.Strings(sorted)

	var page strings.Builder
	renderHead(&page, "Links for "+pkgname)
	for _, filename := range sorted {
		page.WriteString(`  <a href="` + html.EscapeString(base+"/"+filename) + `">` +
			html.EscapeString(filename) + "</a><br/>\n")
	}
	renderFoot(&page)
	return page.String()
}

// RenderRootPage renders the root index page.  It emits one relative link per
// project ("{name}/", pointing at that project's own page), in ascending
// lexicographic order of normalized name.  The input names are normalized
// before use, so callers may pass raw distribution names.
func RenderRootPage(pkgnames []string) string {
	seen := make(map[string]struct{}, len(pkgnames))
	sorted := make([]string, 0, len(pkgnames))
	for _, pkgname := range pkgnames {
		normalized := Normalize(pkgname)
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		sorted = append(sorted, normalized)
	}
	sort.Strings(sorted)

	var page strings.Builder
	renderHead(&page, "Simple Index")
	for _, pkgname := range sorted {
		page.WriteString(`  <a href="` + html.EscapeString(pkgname+"/") + `">` +
			html.EscapeString(pkgname) + "</a><br/>\n")
	}
	renderFoot(&page)
	return page.String()
}
