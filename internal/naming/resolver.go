package naming

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/mpakhapoca/mget/internal/utils"
	"github.com/rs/zerolog"
)

// fallbackBaseName is used when neither the URL nor Content-Disposition
// carries a name but the content type still yields an extension.
const fallbackBaseName = "download"

var (
	contentTypeRegex = regexp.MustCompile(`^[\w.+-]+/(\w+)`)
	filenameRegex    = regexp.MustCompile(`[^a-zA-Z0-9_\-\. ]+`)
	counterRegex     = regexp.MustCompile(`^ \((\d+)\)$`)
)

// ExtensionParseError is returned when a content type is not type/subtype
// shaped.
type ExtensionParseError = utils.ExtensionParseError

// NameParts is the result of splitting a file name on its last dot. HasExt is
// false when the name has no dot at all, which is an expected outcome and
// not an error.
type NameParts struct {
	Base   string
	Ext    string
	HasExt bool
}

func (p NameParts) FullName() string {
	return p.Base + "." + p.Ext
}

func SplitName(name string) NameParts {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return NameParts{Base: name}
	}
	return NameParts{Base: name[:idx], Ext: name[idx+1:], HasExt: true}
}

// SegmentFromURL returns the last path segment of rawURL. ok is false when
// the segment is empty or made only of whitespace and dots.
func SegmentFromURL(rawURL string) (segment string, ok bool, err error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false, err
	}
	// split before decoding; an escaped slash stays escaped in the name
	p := parsed.EscapedPath()
	segment = p[strings.LastIndex(p, "/")+1:]
	if unescaped, err := url.PathUnescape(segment); err == nil && !strings.Contains(unescaped, "/") {
		segment = unescaped
	}
	if strings.Trim(segment, " \n\t.") == "" {
		return "", false, nil
	}
	return segment, true, nil
}

// ExtensionFromContentType extracts the subtype of a type/subtype media type,
// e.g. "application/zip; charset=binary" gives "zip". Parameters are never
// inspected, so a malformed one does not make the type unusable.
func ExtensionFromContentType(contentType string) (string, error) {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	m := contentTypeRegex.FindStringSubmatch(mediaType)
	if m == nil {
		return "", &ExtensionParseError{ContentType: contentType}
	}
	return m[1], nil
}

// FilenameFromDisposition returns the sanitised file name announced in a
// Content-Disposition header, or "" when there is none.
func FilenameFromDisposition(contentDisposition string) string {
	if contentDisposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentDisposition)
	if err != nil {
		return ""
	}
	filename := ""
	if fn, ok := params["filename"]; ok && fn != "" {
		filename = filenameRegex.ReplaceAllString(fn, "_")
	} else if fn, ok := params["filename*"]; ok && strings.HasPrefix(fn, "UTF-8''") {
		unescaped, err := url.PathUnescape(strings.TrimPrefix(fn, "UTF-8''"))
		if err != nil {
			return ""
		}
		filename = filenameRegex.ReplaceAllString(unescaped, "_")
	}
	if strings.Trim(filename, " _.") == "" {
		return ""
	}
	return filename
}

// NextFreeName picks "base (N+1).ext" where N is the highest counter found
// among names that share base. A base that itself ends in " (digits)" is
// indistinguishable from a counter and is treated as one.
func NextFreeName(base, ext string, names []string) string {
	highest := 0
	for _, name := range names {
		if !strings.HasPrefix(name, base) {
			continue
		}
		stem := name
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			stem = name[:idx]
		}
		m := counterRegex.FindStringSubmatch(strings.TrimPrefix(stem, base))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		highest = max(highest, n)
	}
	return fmt.Sprintf("%s (%d).%s", base, highest+1, ext)
}

// Resolver derives collision-free file names inside one output directory.
// The directory listing is a snapshot; another process may still create the
// same name before the file is opened.
type Resolver struct {
	dir string
	log zerolog.Logger
}

func NewResolver(outputDir string) *Resolver {
	return &Resolver{dir: outputDir, log: utils.GetLogger("naming")}
}

// Resolve builds the target for rawURL. header may be nil when no response
// is available yet, in which case the URL alone must carry an extension.
func (r *Resolver) Resolve(rawURL string, header http.Header) (utils.FileTarget, error) {
	if header == nil {
		header = http.Header{}
	}
	segment, ok, err := SegmentFromURL(rawURL)
	if err != nil {
		return utils.FileTarget{}, &utils.NamingError{URL: rawURL, Reason: "invalid URL", Err: err}
	}
	if !ok {
		segment = FilenameFromDisposition(header.Get("Content-Disposition"))
	}

	var parts NameParts
	if segment == "" {
		parts = NameParts{Base: fallbackBaseName}
	} else {
		parts = SplitName(segment)
	}

	if !parts.HasExt {
		contentType := header.Get("Content-Type")
		if contentType == "" {
			return utils.FileTarget{}, &utils.NamingError{URL: rawURL, Reason: "no extension in URL and no Content-Type header"}
		}
		ext, err := ExtensionFromContentType(contentType)
		if err != nil {
			return utils.FileTarget{}, &utils.NamingError{URL: rawURL, Reason: "no usable extension", Err: err}
		}
		parts.Ext, parts.HasExt = ext, true
		r.log.Debug().Str("contentType", contentType).Str("ext", ext).Msg("Extension derived from Content-Type")
	}

	fullName, err := r.avoidCollision(parts)
	if err != nil {
		return utils.FileTarget{}, &utils.NamingError{URL: rawURL, Reason: "cannot list output directory", Err: err}
	}
	return utils.FileTarget{
		BaseName:     parts.Base,
		Extension:    parts.Ext,
		FullName:     fullName,
		AbsolutePath: filepath.Join(r.dir, fullName),
	}, nil
}

func (r *Resolver) avoidCollision(parts NameParts) (string, error) {
	candidate := parts.FullName()
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, os.ErrNotExist) {
		return candidate, nil
	}
	if err != nil {
		return "", err
	}
	var names []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), parts.Base) {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return candidate, nil
	}
	renamed := NextFreeName(parts.Base, parts.Ext, names)
	r.log.Debug().Str("candidate", candidate).Str("renamed", renamed).Msg("Name already taken in output directory")
	return renamed, nil
}
