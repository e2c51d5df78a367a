// Package localization provides the display labels and user-facing messages
// of the application. Translations are JSON files named by language code
// (e.g. "id.json"); Indonesian is the default and the fallback.
package localization

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
)

// DefaultLang is used when a request names no language or an unknown one.
const DefaultLang = "id"

//go:embed locales/*.json
var locales embed.FS

// Localizer manages the translations for the application.
type Localizer struct {
	translations map[string]map[string]string
	mu           sync.RWMutex
}

var (
	defaultLocalizer *Localizer
	defaultOnce      sync.Once
)

// Default returns the localizer built from the embedded translations.
func Default() *Localizer {
	defaultOnce.Do(func() {
		l, err := NewLocalizer(locales, "locales")
		if err != nil {
			panic(err)
		}
		defaultLocalizer = l
	})
	return defaultLocalizer
}

// NewLocalizer loads every *.json file of dir in fsys.
func NewLocalizer(fsys fs.FS, dir string) (*Localizer, error) {
	l := &Localizer{
		translations: make(map[string]map[string]string),
	}

	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read localization directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read localization file %s: %w", file.Name(), err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("failed to parse localization file %s: %w", file.Name(), err)
		}

		l.translations[strings.TrimSuffix(file.Name(), ".json")] = translations
	}

	return l, nil
}

// GetString returns the string for key in lang, falling back to the default
// language and then to the key itself.
func (l *Localizer) GetString(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if value, ok := l.translations[lang][key]; ok {
		return value
	}
	if value, ok := l.translations[DefaultLang][key]; ok {
		return value
	}
	return key
}

// Label returns the display label of an enumerated value, e.g.
// Label("id", "document_type", "surat_usaha"). Unknown values are returned as is.
func (l *Localizer) Label(lang, group, value string) string {
	key := group + "." + value
	if s := l.GetString(lang, key); s != key {
		return s
	}
	return value
}

// Languages lists the loaded language codes.
func (l *Localizer) Languages() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	langs := make([]string, 0, len(l.translations))
	for lang := range l.translations {
		langs = append(langs, lang)
	}
	return langs
}
