package i18n

// Translator is what consumers of translated text depend on.
// *Engine satisfies it; tests can pass a TranslatorFunc.
type Translator interface {
	T(key string, args ...any) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(key string, args ...any) string

func (f TranslatorFunc) T(key string, args ...any) string {
	return f(key, args...)
}

// Nop is a Translator that returns the key, formatted with args when it is a template.
var Nop Translator = TranslatorFunc(func(key string, args ...any) string {
	if len(args) == 0 {
		return key
	}
	msg, err := CompileMessage(key, DefaultLocale)
	if err != nil {
		return key
	}
	out, err := msg.Format(args...)
	if err != nil {
		return msg.Defanged()
	}
	return out
})

var _ Translator = (*Engine)(nil)
