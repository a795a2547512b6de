package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/commander/internal/ato"
	"github.com/felixgeelhaar/commander/internal/coalition"
	"github.com/felixgeelhaar/commander/internal/commander"
	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/health"
	"github.com/felixgeelhaar/commander/internal/log"
	"github.com/felixgeelhaar/commander/internal/metrics"
	"github.com/felixgeelhaar/commander/internal/objective"
	"github.com/felixgeelhaar/commander/internal/settings"
	"github.com/felixgeelhaar/commander/internal/telemetry"
	"github.com/felixgeelhaar/commander/internal/theater"
	"github.com/felixgeelhaar/commander/internal/ux"
)

const sideBoth = "both"

type planOptions struct {
	theaterPath  string
	settingsPath string
	side         string
	turn         int
	seed         uint64
	out          string
	watch        bool
	metricsAddr  string
}

func newPlanCommand() *cobra.Command {
	defaults := ux.NewPathDefaults()
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan the air-tasking order for a turn",
		Long: `Plan mission packages for one or both sides of a theater snapshot.

Each side runs an independent planning pass: campaign goals are decomposed
into packages in priority order (front line defense, air defense
suppression, air infrastructure, strategic targets), aircraft are claimed
from the side's squadrons and the resulting order is scheduled.

With --watch the snapshot is re-planned every time it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("theater") {
				opts.theaterPath = defaults.TheaterFile()
			}
			if !cmd.Flags().Changed("settings") {
				opts.settingsPath = defaults.SettingsFile()
			}
			if !cmd.Flags().Changed("seed") {
				opts.seed = uint64(time.Now().UnixNano())
			}
			return runPlan(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.theaterPath, "theater", "", "theater snapshot (default theater.yaml)")
	flags.StringVar(&opts.settingsPath, "settings", "", "settings file (default settings.yaml when present)")
	flags.StringVar(&opts.side, "side", sideBoth, "side to plan for (blue, red, both)")
	flags.IntVar(&opts.turn, "turn", -1, "turn number (default the snapshot's turn)")
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed for scheduling (default time based)")
	flags.StringVarP(&opts.out, "out", "o", "", "write the planned orders to this YAML file")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "re-plan whenever the theater snapshot changes")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while watching")
	return cmd
}

func runPlan(cmd *cobra.Command, opts *planOptions) error {
	cctx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if opts.metricsAddr != "" && !opts.watch {
		return fmt.Errorf("--metrics-addr requires --watch")
	}

	sides, err := parseSides(opts.side)
	if err != nil {
		return err
	}
	if err := ux.ValidateRequiredFile(opts.theaterPath, "Theater snapshot", "--theater"); err != nil {
		return err
	}

	s, err := settings.Load(opts.settingsPath)
	if err != nil {
		return ux.FormatError(err, "loading settings")
	}

	formatter, err := cctx.Formatter(cmd)
	if err != nil {
		return err
	}

	registry, m := metrics.NewRegistry()
	p := &passRunner{
		opts:    opts,
		sides:   sides,
		s:       s,
		logger:  log.DefaultLogger(),
		metrics: m,
		output:  formatter,
	}

	if !opts.watch {
		_, err := p.run(cmd.Context())
		return err
	}

	passes := health.NewPassChecker()
	replan := func(ctx context.Context) error {
		packages, err := p.run(ctx)
		passes.Record(packages, err)
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	if opts.metricsAddr != "" {
		checks := health.NewManager()
		checks.AddChecker(health.NewSnapshotChecker(opts.theaterPath))
		checks.AddChecker(passes)

		g.Go(func() error {
			return metrics.Serve(ctx, opts.metricsAddr, registry,
				metrics.Route{Pattern: "/healthz", Handler: health.Handler(checks)})
		})
	}
	g.Go(func() error {
		if err := replan(ctx); err != nil {
			p.logger.WithError(err).Error("planning failed")
		}
		return watchFile(ctx, opts.theaterPath, p.logger, func() error {
			return replan(ctx)
		})
	})
	return g.Wait()
}

func parseSides(value string) ([]domain.Side, error) {
	if value == sideBoth {
		return []domain.Side{domain.SideBlue, domain.SideRed}, nil
	}
	side, err := domain.NewSide(value)
	if err != nil {
		return nil, fmt.Errorf("invalid argument %q for --side: must be blue, red or both", value)
	}
	return []domain.Side{side}, nil
}

// passRunner plans every requested side of the current snapshot.
type passRunner struct {
	opts    *planOptions
	sides   []domain.Side
	s       *settings.Settings
	logger  *log.Logger
	metrics *metrics.Metrics
	output  ux.Formatter
}

// run plans and reports the current snapshot, returning how many packages
// were planned.
func (p *passRunner) run(ctx context.Context) (int, error) {
	ctx, span := telemetry.StartCommandSpan(ctx, "plan")
	defer span.End()

	snapshot, err := theater.LoadSnapshot(p.opts.theaterPath)
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, err
	}

	turn := snapshot.Turn
	if p.opts.turn >= 0 {
		turn = p.opts.turn
	}
	span.SetAttributes(
		attribute.String("theater", snapshot.Name),
		attribute.Int("turn", turn),
		attribute.Int("sides", len(p.sides)),
	)

	// The sides plan independently against the same read-only snapshot.
	reports := make(ux.PassReports, len(p.sides))
	orders := make([]*ato.AirTaskingOrder, len(p.sides))
	g, gctx := errgroup.WithContext(ctx)
	for i, side := range p.sides {
		g.Go(func() error {
			c := coalition.FromSnapshot(snapshot, side)
			pc := commander.NewContext(side, turn, p.s, p.opts.seed, c)

			result, err := commander.New(objective.NewFinder(snapshot, side),
				commander.WithLogger(p.logger.With("side", side.String())),
				commander.WithMetrics(p.metrics),
			).Plan(gctx, pc)
			if err != nil {
				return fmt.Errorf("%s pass: %w", side, err)
			}

			order, err := ux.NewOrderReport(c.ATO())
			if err != nil {
				return err
			}
			orders[i] = c.ATO()
			reports[i] = &ux.PassReport{
				OrderReport:        *order,
				Turn:               turn,
				Seed:               p.opts.seed,
				SaturationPackages: result.SaturationPackages,
				Procurement:        result.ProcurementRequests,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		return 0, err
	}

	packages := 0
	for _, o := range orders {
		packages += o.Len()
	}

	if p.opts.out != "" {
		if err := ato.SaveFile(p.opts.out, orders...); err != nil {
			telemetry.RecordError(span, err)
			return 0, err
		}
		p.logger.Info("air-tasking orders written", "path", p.opts.out)
	}

	telemetry.RecordSuccess(span, attribute.Int("packages", packages))
	return packages, p.output.Format(reports)
}
