package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/quintans/go-trigger/internal/config"
	"github.com/quintans/go-trigger/trigger"
)

func (a *app) checkCommand() *cobra.Command {
	var after string
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a trigger file",
		Long: `Validate every trigger of a YAML trigger file and print its next fire time.
Fails if any trigger is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.Load(args[0])
			if err != nil {
				return err
			}
			loc, err := trigger.LoadLocation(f.Timezone)
			if err != nil {
				return err
			}
			from, err := parseTime(after, loc)
			if err != nil {
				return fmt.Errorf("invalid --after: %w", err)
			}
			if from.IsZero() {
				from = a.clock.Now()
			}

			named, err := f.Build(trigger.WithClock(a.clock))
			if err != nil {
				return err
			}
			a.logger.Info("%d triggers loaded from %s", len(named), args[0])

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, n := range named {
				next := "never"
				if t, ok := n.Trigger.NextFireTime(from, time.Time{}); ok {
					next = t.Format(time.RFC3339)
				} else {
					a.logger.Warn("trigger '%s' does not fire after %s", n.Name, from.Format(time.RFC3339))
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", n.Name, next, n.Trigger.Description())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&after, "after", "", "reference time (default now)")
	return cmd
}
