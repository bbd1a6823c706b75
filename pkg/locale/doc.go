// Package locale resolves requested locale tags against an ordered catalog of
// available locales.
//
// Resolution follows a fixed precedence so that browser or OS tags that carry
// more (or less) region information than the catalog still land somewhere
// sensible:
//
//  1. exact match ("en-GB" → "en-GB");
//  2. bare primary subtag ("en-GB" → "en");
//  3. first catalog entry sharing the primary subtag, in catalog order
//     ("en-GB" → "en-US");
//  4. no match.
//
// Catalog order matters for step 3, so [ParseCatalog] keeps the order of the
// YAML document it is given:
//
//	cat, err := locale.ParseCatalog([]byte("en-US: English\nzh-CN: 简体中文\n"))
//	tag, ok := cat.BestMatch("en-GB") // "en-US", true
package locale
