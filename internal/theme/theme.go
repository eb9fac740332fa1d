package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/adrg/xdg"
)

// importPattern matches @import "a.css", @import 'a.css' and @import url("a.css").
var importPattern = regexp.MustCompile(`@import\s+(?:url\(\s*)?["']([^"']+)["']\s*\)?\s*;?`)

// Theme is a stylesheet for toast popups with its imports inlined.
type Theme struct {
	Name string
	// Path is the user file the theme was read from, empty when bundled.
	Path string
	CSS  string
	// Sources are the files on disk CSS was built from, Path first.
	Sources []string
}

// Bundled reports whether the theme ships with the binary.
func (t *Theme) Bundled() bool {
	return t.Path == ""
}

// ThemesDir returns the user themes directory,
// $XDG_CONFIG_HOME/toaststack/themes.
func ThemesDir() string {
	return filepath.Join(xdg.ConfigHome, "toaststack", "themes")
}

// Resolve finds the theme called name. A file in the user themes directory
// overrides a bundled theme of the same name. An unknown name resolves to
// the bundled default with found set to false.
func Resolve(name string) (t *Theme, found bool, err error) {
	if name == "" {
		name = DefaultThemeName
	}

	file := filepath.Join(ThemesDir(), name+".css")
	if _, serr := os.Stat(file); serr == nil {
		t, err := Load(name, file)
		if err != nil {
			return nil, false, err
		}
		return t, true, nil
	}

	if t, ok := bundledTheme(name); ok {
		return t, true, nil
	}
	return Default(), false, nil
}

// Load reads a theme file and inlines its imports.
func Load(name, file string) (*Theme, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme %q: %w", name, err)
	}
	file = filepath.Clean(file)
	t := &Theme{Name: name, Path: file, Sources: []string{file}}
	t.CSS = t.inline(string(data), filepath.Dir(file), map[string]bool{file: true})
	return t, nil
}

// Default returns the bundled default theme.
func Default() *Theme {
	t, _ := bundledTheme(DefaultThemeName)
	return t
}

func bundledTheme(name string) (*Theme, bool) {
	css, ok := bundledCSS(name + ".css")
	if !ok {
		return nil, false
	}
	t := &Theme{Name: name}
	t.CSS = t.inline(css, "", map[string]bool{"bundled:" + name + ".css": true})
	return t, true
}

// inline replaces each @import with the stylesheet it names. A relative
// import is looked up in dir and then among the bundled files, so a user
// theme can build on "_base.css". A file is inlined at most once.
func (t *Theme) inline(css, dir string, seen map[string]bool) string {
	return importPattern.ReplaceAllStringFunc(css, func(stmt string) string {
		ref := importPattern.FindStringSubmatch(stmt)[1]

		if dir != "" {
			file := ref
			if !filepath.IsAbs(file) {
				file = filepath.Join(dir, ref)
			}
			file = filepath.Clean(file)
			if seen[file] {
				return "/* skipped repeated @import " + ref + " */"
			}
			if data, err := os.ReadFile(file); err == nil {
				seen[file] = true
				t.Sources = append(t.Sources, file)
				return "/* " + ref + " */\n" + t.inline(string(data), filepath.Dir(file), seen)
			}
		}

		key := "bundled:" + filepath.Base(ref)
		if seen[key] {
			return "/* skipped repeated @import " + ref + " */"
		}
		if data, ok := bundledCSS(filepath.Base(ref)); ok {
			seen[key] = true
			return "/* " + ref + " (bundled) */\n" + t.inline(data, "", seen)
		}
		return "/* @import " + ref + " not found */"
	})
}

// Info describes an available theme.
type Info struct {
	Name string
	// Path is empty for bundled themes.
	Path string
}

// Bundled reports whether the theme ships with the binary.
func (i Info) Bundled() bool {
	return i.Path == ""
}

// List returns every theme Resolve can find, sorted by name. A user theme
// hides the bundled theme of the same name.
func List() ([]Info, error) {
	byName := make(map[string]Info)
	for _, name := range BundledNames() {
		byName[name] = Info{Name: name}
	}

	dir := ThemesDir()
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to list themes in %s: %w", dir, err)
	}
	for _, e := range entries {
		file := e.Name()
		if e.IsDir() || filepath.Ext(file) != ".css" || strings.HasPrefix(file, "_") {
			continue
		}
		name := strings.TrimSuffix(file, ".css")
		byName[name] = Info{Name: name, Path: filepath.Join(dir, file)}
	}

	infos := make([]Info, 0, len(byName))
	for _, info := range byName {
		infos = append(infos, info)
	}
	slices.SortFunc(infos, func(a, b Info) int { return strings.Compare(a.Name, b.Name) })
	return infos, nil
}
