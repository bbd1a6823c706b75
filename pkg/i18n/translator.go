package i18n

// Translator resolves keys against a fixed translation tree, typically a
// snapshot taken from a Store for the duration of one render.
type Translator struct {
	tree     map[string]any
	language string
}

// NewTranslator creates a Translator for language over tree.
func NewTranslator(language string, tree map[string]any) *Translator {
	if tree == nil {
		tree = map[string]any{}
	}
	return &Translator{tree: tree, language: language}
}

// T resolves key and fills placeholders. Missing keys return the key.
func (t *Translator) T(key string, placeholders ...M) string {
	return ReplacePlaceholders(Resolve(t.tree, key), placeholders...)
}

// Has reports whether key resolves to a translation.
func (t *Translator) Has(key string) bool {
	_, ok := lookup(t.tree, key)
	return ok
}

// Language returns the translator's locale.
func (t *Translator) Language() string {
	return t.language
}
