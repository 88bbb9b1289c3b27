// Package lingo translates application messages from layered bundles.
//
// An [Engine] resolves a key through three tiers, highest priority first:
//
//   - External: overrides read from a base directory, or from object storage
//     with pkg/storage. Optional; swapped at runtime with SetBaseDirectory.
//   - Internal: bundles shipped with the application, typically an embed.FS.
//   - Default: the en_us bundle from the same resources, the last resort.
//
// Within a tier the most specific resource wins: it_it, then it, then the
// root bundle. Templates use the MessageFormat dialect:
//
//	files.count={0,plural,=0{no files} one{# file} other{# files}}
//	order.total=Total: {0,number,currency} on {1,date,short}
//
// Translation never fails. A missing key yields the fallback, a broken
// template is logged and rendered readable, and a missing tier is skipped.
//
// # Quick Start
//
//	tr, err := lingo.New("i18n.messages",
//	    lingo.WithResources(resources),
//	    lingo.WithLocale(lingo.ParseLocale("de_de")),
//	)
//	if err != nil {
//	    return err
//	}
//	tr.T("files.count", 3) // "3 Dateien"
//
// # Several Locales
//
// A [Registry] keeps one engine per locale and matches Accept-Language:
//
//	reg, _ := lingo.NewRegistry("i18n.messages",
//	    []lingo.Locale{lingo.DefaultLocale, lingo.ParseLocale("it_it")},
//	    lingo.WithResources(resources),
//	)
//	e, _ := reg.Get(reg.Match(r.Header.Get("Accept-Language")))
//
// # Packages
//
//   - pkg/i18n: the engine, bundle formats, loaders and the message formatter
//   - pkg/storage: S3-compatible External tier loader
//   - pkg/cache: in-memory and Redis caches for loaded resources
//   - pkg/watcher: reload on file changes
//   - pkg/job: cron-scheduled reloads
//   - pkg/health: readiness checks for bundles and dependencies
//   - pkg/logger: slog setup with Sentry and context extractors
//
// The lingo command (cmd/lingo) wraps all of this as a CLI and an HTTP service.
package lingo
