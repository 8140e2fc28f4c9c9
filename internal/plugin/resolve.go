package plugin

import (
	"path/filepath"
	"strings"
)

const (
	pathSeparators = `/\`
	repoSuffix     = ".git"
)

// IsLocal reports whether repo has the shape of a filesystem path: a drive
// letter followed by a colon (C:), or a leading %, ~ or /.
func IsLocal(repo string) bool {
	if repo == "" {
		return false
	}
	if len(repo) >= 2 && isASCIILetter(repo[0]) && repo[1] == ':' {
		return true
	}
	return strings.ContainsRune("%~/", rune(repo[0]))
}

// InferName returns the last path segment of repo with one trailing ".git"
// removed. InferName("owner/tool.git") == "tool".
func InferName(repo string) string {
	trimmed := strings.TrimRight(repo, pathSeparators)
	base := trimmed[strings.LastIndexAny(trimmed, pathSeparators)+1:]
	return strings.TrimSuffix(base, repoSuffix)
}

// ExpandURI substitutes repo into format, or returns repo unchanged when it
// already carries a scheme or host separator.
func ExpandURI(format, repo string) (string, error) {
	if strings.Contains(repo, ":") {
		return repo, nil
	}
	if !strings.Contains(repo, "/") {
		return "", invalid(repo, "expected a local path, a URI, or owner/name")
	}
	return strings.Replace(format, URIPlaceholder, repo, 1), nil
}

// Resolve computes the full plugin record for decl.
func Resolve(decl Declaration, defaults Defaults) (Config, error) {
	if strings.TrimSpace(decl.Repo) == "" {
		return Config{}, invalid(decl.Repo, "repository is empty")
	}

	name := decl.Name
	if name == "" {
		name = InferName(decl.Repo)
	}
	if name == "" {
		return Config{}, invalid(decl.Repo, "cannot infer a plugin name")
	}

	cfg := Config{
		Name:   name,
		Repo:   decl.Repo,
		Groups: append([]string(nil), decl.Groups...),
	}

	if IsLocal(decl.Repo) {
		cfg.Directory = trimSeparators(decl.Repo)
	} else {
		uri, err := ExpandURI(defaults.URIFormat, decl.Repo)
		if err != nil {
			return Config{}, err
		}
		cfg.URI = uri
		cfg.Directory = filepath.Join(defaults.Home, name)
	}

	raw := decl.Autoload
	if raw == nil {
		raw = defaults.Autoload
	}
	cfg.Autoload = ResolveAutoload(raw, cfg.Tags())

	return cfg, nil
}

// trimSeparators strips trailing separators but never empties a root path.
func trimSeparators(path string) string {
	trimmed := strings.TrimRight(path, pathSeparators)
	if trimmed == "" {
		return path[:1]
	}
	return trimmed
}

func isASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
