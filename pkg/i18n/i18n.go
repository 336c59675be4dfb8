package i18n

import "strings"

// DefaultLanguage is used when a language code has no table.
const DefaultLanguage = "fr"

// Table is a nested mapping of translation keys. Leaves are strings,
// inner nodes are Tables.
type Table map[string]interface{}

// Bundle holds one Table per language code.
type Bundle struct {
	tables map[string]Table
}

// NewBundle builds a bundle from language tables.
func NewBundle(tables map[string]Table) *Bundle {
	return &Bundle{tables: tables}
}

// Default returns the bundle with the built-in FR/EN/AR tables.
func Default() *Bundle {
	return NewBundle(builtinTables)
}

// Resolve walks the dotted key through the table of the given language.
// An unknown language falls back to the default language table. When
// any segment is missing, a node is not a table, or the leaf is empty,
// the key itself is returned.
func (b *Bundle) Resolve(lang, key string) string {
	table, ok := b.tables[lang]
	if !ok {
		table = b.tables[DefaultLanguage]
	}
	if table == nil {
		return key
	}

	var current interface{} = table
	for _, segment := range strings.Split(key, ".") {
		node, ok := current.(Table)
		if !ok {
			// Also accept plain maps so callers can feed decoded JSON.
			plain, isMap := current.(map[string]interface{})
			if !isMap {
				return key
			}
			node = Table(plain)
		}
		current, ok = node[segment]
		if !ok {
			return key
		}
	}

	leaf, ok := current.(string)
	if !ok || leaf == "" {
		return key
	}
	return leaf
}

// Dir returns the document text direction for a language code.
func Dir(lang string) string {
	if lang == "ar" {
		return "rtl"
	}
	return "ltr"
}
