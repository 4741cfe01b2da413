// Package i18n implements the localization service: five built-in
// JSON language packs, a dot-notation key resolution chain that falls
// back to English and then to the key itself, and persistence of the
// user's language preference under $XDG_CONFIG_HOME.
package i18n

import (
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Language is a supported locale code.
type Language string

const (
	English Language = "en"
	German  Language = "de"
	French  Language = "fr"
	Italian Language = "it"
	Spanish Language = "es"
)

// All lists every built-in language, in the order they appear in a
// language-picker widget.
var All = []Language{English, German, French, Italian, Spanish}

//go:embed locales/*.json
var builtinFS embed.FS

// pack is a loaded language file's raw nested map, so dot-separated
// keys like "menu.file.save" resolve through nested objects.
type pack map[string]any

// Catalog holds every loaded language pack and the current language.
type Catalog struct {
	packs   map[Language]pack
	current Language
}

// NewCatalog builds a Catalog from raw JSON bytes per language.
// NewCatalog itself performs no I/O; see Builtin for the shipped
// packs.
func NewCatalog(sources map[Language][]byte) (*Catalog, error) {
	c := &Catalog{packs: make(map[Language]pack), current: English}
	for lang, raw := range sources {
		var p pack
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, errors.Wrapf(err, "i18n: decode %s pack", lang)
		}
		c.packs[lang] = p
	}
	return c, nil
}

// Builtin loads the five embedded language packs.
func Builtin() (*Catalog, error) {
	sources := make(map[Language][]byte, len(All))
	for _, lang := range All {
		raw, err := builtinFS.ReadFile("locales/" + string(lang) + ".json")
		if err != nil {
			return nil, errors.Wrapf(err, "i18n: read embedded %s pack", lang)
		}
		sources[lang] = raw
	}
	return NewCatalog(sources)
}

// LoadPackFile merges an external language pack into the catalog,
// overriding any built-in keys it redefines. The format is chosen by
// extension: .json, or .yaml/.yml for hand-edited packs.
func (c *Catalog) LoadPackFile(lang Language, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "i18n: read pack %s", path)
	}
	var p pack
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return errors.Wrapf(err, "i18n: decode yaml pack %s", path)
		}
	default:
		if err := json.Unmarshal(raw, &p); err != nil {
			return errors.Wrapf(err, "i18n: decode json pack %s", path)
		}
	}
	if existing, ok := c.packs[lang]; ok {
		mergePack(existing, p)
	} else {
		c.packs[lang] = p
	}
	return nil
}

// mergePack overlays src onto dst, descending into nested maps so an
// override pack only needs the keys it changes.
func mergePack(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				mergePack(dv, sv)
				continue
			}
		}
		dst[k] = v
	}
}

// SetLanguage switches the active language. No-op (returns false) if
// the language was never loaded.
func (c *Catalog) SetLanguage(lang Language) bool {
	if _, ok := c.packs[lang]; !ok {
		return false
	}
	c.current = lang
	return true
}

// Language returns the currently active language.
func (c *Catalog) Language() Language { return c.current }

// Resolve looks up a dot-notation key (e.g. "menu.file.save") in the
// active language, falling back to English, then to the literal key
// string if neither pack has it.
func (c *Catalog) Resolve(key string) string {
	if p, ok := c.packs[c.current]; ok {
		if v, ok := lookup(p, key); ok {
			return v
		}
	}
	if c.current != English {
		if p, ok := c.packs[English]; ok {
			if v, ok := lookup(p, key); ok {
				return v
			}
		}
	}
	return key
}

func lookup(p pack, key string) (string, bool) {
	parts := strings.Split(key, ".")
	var cur any = map[string]any(p)
	for _, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		next, ok := m[part]
		if !ok {
			return "", false
		}
		cur = next
	}
	s, ok := cur.(string)
	return s, ok
}

// preferencePath returns $XDG_CONFIG_HOME/tuikit/language, or
// ~/.config/tuikit/language if XDG_CONFIG_HOME is unset. The file
// holds a single line: the language code.
func preferencePath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "i18n: resolve home directory")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "tuikit", "language"), nil
}

// LoadPreference reads a previously persisted language preference. It
// returns (English, false, nil) if no preference file exists yet or
// the stored code is not a known language.
func LoadPreference() (Language, bool, error) {
	path, err := preferencePath()
	if err != nil {
		return English, false, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return English, false, nil
		}
		return English, false, errors.Wrap(err, "i18n: read language preference")
	}
	code := Language(strings.TrimSpace(string(raw)))
	for _, lang := range All {
		if lang == code {
			return code, true, nil
		}
	}
	return English, false, nil
}

// SavePreference persists lang by writing to a temp file in the same
// directory and renaming it into place, so a crash mid-write never
// leaves a truncated preference file behind.
func SavePreference(lang Language) error {
	path, err := preferencePath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "i18n: create config directory")
	}

	tmp, err := os.CreateTemp(dir, ".language-*.tmp")
	if err != nil {
		return errors.Wrap(err, "i18n: create temp file")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(string(lang) + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "i18n: write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "i18n: close temp file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "i18n: rename temp file into place")
	}
	return nil
}
