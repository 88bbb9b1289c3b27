package i18n

import "context"

type localeContextKey struct{}
type translatorContextKey struct{}

// WithLocaleContext stores the request locale in ctx.
func WithLocaleContext(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, localeContextKey{}, l)
}

// LocaleFromContext returns the locale stored by WithLocaleContext.
func LocaleFromContext(ctx context.Context) (Locale, bool) {
	l, ok := ctx.Value(localeContextKey{}).(Locale)
	return l, ok
}

// WithTranslator stores t in ctx.
func WithTranslator(ctx context.Context, t Translator) context.Context {
	return context.WithValue(ctx, translatorContextKey{}, t)
}

// TranslatorFromContext returns the Translator stored in ctx, or Nop.
func TranslatorFromContext(ctx context.Context) Translator {
	if t, ok := ctx.Value(translatorContextKey{}).(Translator); ok && t != nil {
		return t
	}
	return Nop
}
