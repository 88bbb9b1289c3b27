package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

// Bundles reports whether every engine returned by engines has its Default tier loaded.
// A missing External or Internal tier is a normal degraded state and does not fail the check.
func Bundles(engines func() []*i18n.Engine) CheckFunc {
	return func(ctx context.Context) error {
		var errs []error
		for _, e := range engines() {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, st := range e.Status() {
				if st.Tier != i18n.TierDefault || st.Loaded {
					continue
				}
				errs = append(errs, fmt.Errorf("%w: %s default tier for %s: %v",
					i18n.ErrTierUnavailable, e.BaseName(), e.CurrentLocale(), st.Err))
			}
		}
		return errors.Join(errs...)
	}
}
