// Package i18n resolves localized message templates by key through three layered
// bundle tiers and formats them with positional arguments.
//
// # Tiers
//
// An Engine owns one namespace, e.g. "i18n.messages", and looks keys up in order:
//
//   - External: optional user overrides under a base directory (or S3, or any Loader).
//   - Internal: packaged resources for the current locale.
//   - Default: packaged resources for en_US, whatever the current locale is.
//
// Resources are named after the namespace and the canonical locale string:
// "i18n.messages" with it_IT and the properties format reads "i18n/messages/it_it.lang".
// Within a tier the language and root resources are layered below the regional one,
// so "i18n/messages/it.lang" and "i18n/messages.lang" fill gaps in "it_it.lang".
//
// # Basic Usage
//
//	//go:embed i18n
//	var resources embed.FS
//
//	engine, err := i18n.New("i18n.messages",
//		i18n.WithResources(resources),
//		i18n.WithLocaleString("it_it"),
//		i18n.WithBaseDirectory(os.Getenv("OVERRIDES_DIR")),
//		i18n.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//
//	engine.T("greeting")                                   // template of "greeting", or "greeting"
//	engine.Translate("missing", "fallback should be {0}", "formatted")
//	// Output: "fallback should be formatted"
//
// # Templates
//
// Templates follow the MessageFormat conventions: {0}, {1,number,currency},
// {2,date,short}, {0,choice,0#no files|1#one file|1<{0} files} and
// {0,plural,one{# file} other{# files}}. Text in single quotes is literal and ''
// is an apostrophe. Without arguments a template is returned as is, apart from ''
// becoming '.
//
// Broken templates degrade instead of failing. A placeholder that is not numeric,
// like {name}, is rewritten to [name] and the template compiled again; if that fails
// too the fallback is returned. Arguments that do not fit a typed placeholder render
// the template with every placeholder as [index].
//
// # Formats
//
// KindProperties (".lang", the default), KindJSON, KindYAML and KindTOML are built in.
// Structured formats take scalar values and single-scalar arrays; nested objects are
// ignored rather than flattened. KindCustom uses a Format supplied with WithCustomFormat.
//
// # Concurrency
//
// Translation methods are safe for concurrent use. Setters (SetCurrentLocale,
// SetBaseDirectory, SetResourceType) reload synchronously under a mutex and publish
// the new chain atomically, so readers never observe a half-built chain.
//
// For hosts serving several locales at once, Registry keeps one Engine per locale and
// picks one for an Accept-Language header with Match.
package i18n
