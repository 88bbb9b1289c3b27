package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	cobra.EnableTraverseRunHooks = true
}

// NewRootCommand creates and returns the root cobra command for lingo.
// Exported for testability (SetArgs/SetOut).
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lingo",
		Short: "Layered message bundle translator",
		Long: `lingo resolves message templates through three bundle tiers
(external overrides, internal resources and the en_us default) and formats
them with locale-aware number, date, choice and plural rules.

Settings come from the environment (LINGO_*, LOG_*, STORAGE_*, REDIS_URL),
an optional .env file, and the flags below, in increasing priority.`,
		Version: Version,
		// Silence usage on RunE errors (cobra prints usage by default on error)
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("env-file", ".env", "Optional dotenv file read before the environment")
	pf.StringP("namespace", "n", "", "Bundle namespace, e.g. i18n.messages")
	pf.StringP("locale", "l", "", "Locale to translate for, e.g. it_it")
	pf.StringP("base-dir", "d", "", "Directory (or bucket prefix) with external overrides")
	pf.StringP("format", "f", "", "Resource type: lang, properties, json, yaml, toml")
	pf.StringP("resources", "r", "", "Directory with the internal and default bundles")
	pf.String("log-level", "", "Log level: trace, debug, info, warn, error")
	pf.String("log-format", "", "Log format: json, text")
	pf.StringP("output", "o", "text", "Output format: text, json")

	rootCmd.AddCommand(
		newTranslateCommand(),
		newKeysCommand(),
		newCheckCommand(),
		newServeCommand(),
		newVersionCommand(),
	)

	return rootCmd
}
