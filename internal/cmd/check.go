package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

// errCheckFailed is returned (wrapped in ExitError) when check finds problems.
var errCheckFailed = errors.New("bundle check failed")

type tierReport struct {
	Tier      string   `json:"tier"`
	Locale    string   `json:"locale"`
	Attempted bool     `json:"attempted"`
	Loaded    bool     `json:"loaded"`
	Keys      int      `json:"keys"`
	Resources []string `json:"resources,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type problem struct {
	Key   string `json:"key,omitempty"`
	Tier  string `json:"tier"`
	Error string `json:"error"`
}

type localeReport struct {
	Locale   string       `json:"locale"`
	Tiers    []tierReport `json:"tiers"`
	Problems []problem    `json:"problems"`
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate bundles for every supported locale",
		Long: `Load the bundle chain of every supported locale and compile every
template of every tier, including templates shadowed by a higher tier.

Fails when the default tier cannot be loaded or a template is malformed.
Missing external or internal tiers are reported but are not failures.`,
		Example: `  # Check the primary locale plus LINGO_LOCALES
  lingo check -r ./resources

  # CI-friendly output
  lingo check -r ./resources -o json`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, flush, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer flush()

	reg, err := newRegistry(cfg, log, nil)
	if err != nil {
		return err
	}
	defer func() { _ = reg.Close() }()

	var (
		reports  []localeReport
		problems int
	)
	for _, l := range cfg.SupportedLocales() {
		e, err := reg.Get(l)
		if err != nil {
			return err
		}
		r := checkEngine(e)
		problems += len(r.Problems)
		reports = append(reports, r)
	}

	if output(cmd) == "json" {
		if err := json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
			"ok":      problems == 0,
			"locales": reports,
		}); err != nil {
			return err
		}
	} else {
		printReports(cmd.OutOrStdout(), reports)
	}

	if problems > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%w: %d problem(s)", errCheckFailed, problems)}
	}
	return nil
}

func checkEngine(e *i18n.Engine) localeReport {
	locale := e.CurrentLocale()
	r := localeReport{Locale: locale.String(), Problems: []problem{}}

	for _, st := range e.Status() {
		tr := tierReport{
			Tier:      st.Tier.String(),
			Locale:    st.Locale.String(),
			Attempted: st.Attempted,
			Loaded:    st.Loaded,
			Keys:      st.Keys,
			Resources: st.Resources,
		}
		if st.Err != nil {
			tr.Error = st.Err.Error()
		}
		r.Tiers = append(r.Tiers, tr)

		if st.Tier == i18n.TierDefault && !st.Loaded {
			r.Problems = append(r.Problems, problem{Tier: tr.Tier, Error: tr.Error})
		}
	}

	for _, tier := range []i18n.Tier{i18n.TierExternal, i18n.TierInternal, i18n.TierDefault} {
		for _, key := range e.TierKeys(tier) {
			template, _ := e.TierTemplate(tier, key)
			if _, err := i18n.CompileMessage(template, locale); err != nil {
				r.Problems = append(r.Problems, problem{Key: key, Tier: tier.String(), Error: err.Error()})
			}
		}
	}
	return r
}

func printReports(w io.Writer, reports []localeReport) {
	for _, r := range reports {
		fmt.Fprintf(w, "%s\n", r.Locale)
		for _, t := range r.Tiers {
			switch {
			case !t.Attempted:
				fmt.Fprintf(w, "  %-9s skipped\n", t.Tier)
			case t.Loaded:
				fmt.Fprintf(w, "  %-9s %d keys %v\n", t.Tier, t.Keys, t.Resources)
			default:
				fmt.Fprintf(w, "  %-9s unavailable: %s\n", t.Tier, t.Error)
			}
		}
		for _, p := range r.Problems {
			if p.Key == "" {
				fmt.Fprintf(w, "  FAIL %s tier: %s\n", p.Tier, p.Error)
				continue
			}
			fmt.Fprintf(w, "  FAIL %s [%s]: %s\n", p.Key, p.Tier, p.Error)
		}
	}
}
