package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

func newTranslateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <key> [args...]",
		Short: "Translate one key",
		Long: `Resolve key through the external, internal and default tiers and
format it with args. Numeric args are passed as numbers, so plural and
number placeholders format them.

A missing key prints the fallback (the key itself unless --fallback is set).`,
		Example: `  # Plain lookup
  lingo translate greeting Ann

  # Italian, with a fallback template
  lingo translate -l it_it files.count 3 --fallback "{0} files"

  # Machine-readable output including the tier that answered
  lingo translate greeting Ann -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTranslate,
	}
	cmd.Flags().String("fallback", "", "Template used when the key is missing")
	return cmd
}

func runTranslate(cmd *cobra.Command, args []string) error {
	engine, done, err := engineFor(cmd)
	if err != nil {
		return err
	}
	defer done()

	key := args[0]
	fallback := key
	if cmd.Flags().Changed("fallback") {
		fallback, _ = cmd.Flags().GetString("fallback")
	}

	_, tier, found := engine.Lookup(key)
	value := engine.Translate(key, fallback, i18n.ParseArgs(args[1:])...)

	if output(cmd) == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"key":    key,
			"locale": engine.CurrentLocale().String(),
			"value":  value,
			"tier":   tier.String(),
			"found":  found,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}
