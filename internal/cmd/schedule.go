package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/felixgeelhaar/commander/internal/ato"
	"github.com/felixgeelhaar/commander/internal/log"
	"github.com/felixgeelhaar/commander/internal/scheduler"
	"github.com/felixgeelhaar/commander/internal/settings"
	"github.com/felixgeelhaar/commander/internal/telemetry"
	"github.com/felixgeelhaar/commander/internal/ux"
)

type scheduleOptions struct {
	atoPath      string
	settingsPath string
	seed         uint64
	out          string
}

func newScheduleCommand() *cobra.Command {
	defaults := ux.NewPathDefaults()
	opts := &scheduleOptions{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Re-schedule an air-tasking order",
		Long: `Assign times over target to every package of an air-tasking order file.

Use this after editing an order by hand: packages without an origin are
treated as manually created and fly as soon as possible when the settings
ask for it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("ato") {
				opts.atoPath = defaults.ATOFile()
			}
			if !cmd.Flags().Changed("settings") {
				opts.settingsPath = defaults.SettingsFile()
			}
			if !cmd.Flags().Changed("seed") {
				opts.seed = uint64(time.Now().UnixNano())
			}
			return runSchedule(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.atoPath, "ato", "", "air-tasking order file (default ato.yaml)")
	flags.StringVar(&opts.settingsPath, "settings", "", "settings file (default settings.yaml when present)")
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed (default time based)")
	flags.StringVarP(&opts.out, "out", "o", "", "write the scheduled orders to this YAML file")
	return cmd
}

func runSchedule(cmd *cobra.Command, opts *scheduleOptions) error {
	cctx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := ux.ValidateRequiredFile(opts.atoPath, "Air-tasking order", "--ato"); err != nil {
		return err
	}

	ctx, span := telemetry.StartCommandSpan(cmd.Context(), "schedule")
	defer span.End()

	s, err := settings.Load(opts.settingsPath)
	if err != nil {
		telemetry.RecordError(span, err)
		return ux.FormatError(err, "loading settings")
	}

	orders, err := ato.LoadFile(opts.atoPath)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	logger := log.DefaultLogger()
	rng := scheduler.NewRand(opts.seed)
	reports := make(ux.OrderReports, 0, len(orders))
	for _, order := range orders {
		scheduler.New(ato.NewDoctrineEstimator(), s, rng,
			scheduler.WithLogger(logger.With("side", order.Side.String())),
		).Schedule(ctx, order.Packages)

		report, err := ux.NewOrderReport(order)
		if err != nil {
			telemetry.RecordError(span, err)
			return err
		}
		reports = append(reports, report)
	}

	if opts.out != "" {
		if err := ato.SaveFile(opts.out, orders...); err != nil {
			telemetry.RecordError(span, err)
			return err
		}
		logger.Info("air-tasking orders written", "path", opts.out)
	}
	telemetry.RecordSuccess(span, attribute.Int("orders", len(orders)))

	formatter, err := cctx.Formatter(cmd)
	if err != nil {
		return err
	}
	return formatter.Format(reports)
}
