package i18n

import "errors"

// Configuration errors. These are the only errors surfaced by constructors and setters.
var (
	ErrEmptyNamespace       = errors.New("i18n: namespace cannot be empty")
	ErrNilLoader            = errors.New("i18n: loader cannot be nil")
	ErrNilFormat            = errors.New("i18n: format cannot be nil")
	ErrUnknownFormat        = errors.New("i18n: unknown resource type")
	ErrInvalidConfiguration = errors.New("i18n: invalid configuration")
)

// Resource errors returned by loaders and bundle formats.
var (
	ErrInvalidFile         = errors.New("i18n: invalid translation file")
	ErrResourceNotFound    = errors.New("i18n: resource not found")
	ErrExecutableResource  = errors.New("i18n: refusing to load executable resource")
	ErrInvalidResourceName = errors.New("i18n: invalid resource name")
)

// Degradation errors. Translation calls recover from these locally and never return them;
// they show up in logs and tier status.
var (
	ErrTierUnavailable   = errors.New("i18n: bundle tier unavailable")
	ErrMalformedTemplate = errors.New("i18n: malformed message template")
	ErrArgumentMismatch  = errors.New("i18n: argument does not match template")
)
