package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

func newKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List translation keys",
		Long:  "List the keys available for the locale across all tiers, or in one tier.",
		Example: `  # Every key the Italian engine can resolve
  lingo keys -l it_it

  # Only keys overridden in the external directory
  lingo keys -d ./overrides --tier external`,
		Args: cobra.NoArgs,
		RunE: runKeys,
	}
	cmd.Flags().String("tier", "", "Restrict to one tier: external, internal, default")
	return cmd
}

func runKeys(cmd *cobra.Command, args []string) error {
	tierName, _ := cmd.Flags().GetString("tier")
	tier := i18n.TierNone
	if tierName != "" {
		var ok bool
		if tier, ok = parseTier(tierName); !ok {
			return fmt.Errorf("unknown tier %q", tierName)
		}
	}

	engine, done, err := engineFor(cmd)
	if err != nil {
		return err
	}
	defer done()

	keys := engine.Keys()
	if tier != i18n.TierNone {
		keys = engine.TierKeys(tier)
	}
	if keys == nil {
		keys = []string{}
	}

	if output(cmd) == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(keys)
	}
	w := cmd.OutOrStdout()
	for _, k := range keys {
		fmt.Fprintln(w, k)
	}
	return nil
}

func parseTier(name string) (i18n.Tier, bool) {
	for _, t := range []i18n.Tier{i18n.TierExternal, i18n.TierInternal, i18n.TierDefault} {
		if strings.EqualFold(name, t.String()) {
			return t, true
		}
	}
	return i18n.TierNone, false
}
