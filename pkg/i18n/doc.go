// Package i18n loads locale data for the archive site, keeps the active
// locale's translation tree, and resolves dotted translation keys.
//
// # Locale data
//
// Each locale is a single resource named after its tag ("en-US.yml",
// "zh-CN.json") holding a nested mapping of keys to strings. Resources are
// fetched through a [Source]:
//
//	src := i18n.NewCachedSource(i18n.NewFSSource(os.DirFS("assets/locales")))
//
// [S3Source] reads the same layout from an S3-compatible bucket.
//
// # Store
//
// A [Store] tracks the selected locale, its load status and its data. Any
// given locale file may be incomplete, so every load fetches the requested
// locale and the default locale concurrently and deep-merges them with the
// requested locale winning:
//
//	store, err := i18n.NewStore(ctx, catalog, src, env)
//	if err != nil {
//		return err
//	}
//	_ = store.SetLocale(ctx, "zh-CN")
//	title := store.T("home.title")
//
// Selecting a locale that is not in the catalog fails with [ErrInvalidLocale]
// and leaves the store untouched. When loads overlap, only the most recent
// one is applied; earlier ones return [ErrSuperseded].
//
// # Lookup
//
// [Resolve] walks a tree by dotted key and falls back to the key itself, so a
// missing translation never breaks rendering:
//
//	i18n.Resolve(tree, "hello.world") // "x"
//	i18n.Resolve(tree, "hello.nope")  // "hello.nope"
//
// Placeholders use the {{name}} form, see [ReplacePlaceholders].
package i18n
