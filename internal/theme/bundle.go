package theme

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed themes/*.css
var bundled embed.FS

// DefaultThemeName is the bundled theme used when none is configured.
const DefaultThemeName = "default"

// BundledNames returns the names of the themes shipped with the binary.
// Partials, whose file names start with an underscore, are not themes.
func BundledNames() []string {
	matches, err := fs.Glob(bundled, "themes/*.css")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		file := path.Base(m)
		if strings.HasPrefix(file, "_") {
			continue
		}
		names = append(names, strings.TrimSuffix(file, ".css"))
	}
	return names
}

func bundledCSS(file string) (string, bool) {
	data, err := bundled.ReadFile("themes/" + file)
	if err != nil {
		return "", false
	}
	return string(data), true
}
