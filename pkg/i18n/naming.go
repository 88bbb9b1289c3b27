package i18n

import "strings"

// BundleName returns namespace qualified by the canonical locale string,
// e.g. "messages.it_it". The root locale and locales without a language
// yield the bare namespace.
func BundleName(namespace string, locale Locale) string {
	if locale.IsRoot() {
		return namespace
	}
	return namespace + "." + locale.String()
}

// ResourceName maps a namespace and locale to a slash-separated resource path:
// "app.messages" with it_it and "json" becomes "app/messages/it_it.json".
// For the root locale it becomes "app/messages.json".
func ResourceName(namespace string, locale Locale, ext string) string {
	return strings.ReplaceAll(BundleName(namespace, locale), ".", "/") + "." + ext
}
