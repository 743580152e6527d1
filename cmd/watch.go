package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/shenikar/rescue_dashboard/internal/models"
	"github.com/shenikar/rescue_dashboard/internal/service"
	"github.com/spf13/cobra"
)

// watchOptions - параметры проекции для команды watch
type watchOptions struct {
	query    string
	typ      string
	urgency  string
	verified string
	sorted   bool
}

func (o watchOptions) filter() (models.FilterState, error) {
	var f models.FilterState
	if o.typ != "" {
		t := models.IncidentType(o.typ)
		if !t.Valid() {
			return f, fmt.Errorf("invalid incident type: %s", o.typ)
		}
		f.Type = &t
	}
	if o.urgency != "" {
		u := models.Urgency(o.urgency)
		if !u.Valid() {
			return f, fmt.Errorf("invalid urgency: %s", o.urgency)
		}
		f.Urgency = &u
	}
	if o.verified != "" {
		v, err := strconv.ParseBool(o.verified)
		if err != nil {
			return f, fmt.Errorf("invalid verified flag: %s", o.verified)
		}
		f.Verified = &v
	}
	return f, nil
}

func watchCommand(a *app) *cobra.Command {
	opts := watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the filtered incident feed in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.filter()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := a.buildCore(ctx)
			if err != nil {
				return err
			}
			defer c.close()

			if err := c.incidents.Start(ctx); err != nil {
				a.log.WithError(err).Warn("Initial snapshot is unavailable")
			}

			printer := &feedPrinter{out: cmd.OutOrStdout(), now: time.Now}
			projection := service.NewProjection(c.incidents, nil)
			defer projection.Close()
			projection.SetQuery(opts.query)
			projection.SetFilter(f)
			projection.SetSortByUrgency(opts.sorted)

			printer.print(projection.View(), c.incidents.Stats())
			watchFeed(ctx, projection, c.incidents, printer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Free-text search over description and location")
	cmd.Flags().StringVar(&opts.typ, "type", "", "Incident type filter")
	cmd.Flags().StringVar(&opts.urgency, "urgency", "", "Urgency filter: high, medium or low")
	cmd.Flags().StringVar(&opts.verified, "verified", "", "Verification filter: true or false")
	cmd.Flags().BoolVar(&opts.sorted, "sort-urgency", false, "Sort high urgency first")
	return cmd
}

// watchFeed перепечатывает ленту при каждом изменении коллекции до отмены контекста
func watchFeed(ctx context.Context, projection *service.Projection, incidents service.IncidentService, printer *feedPrinter) {
	changed := make(chan struct{}, 1)
	cancel := incidents.OnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-changed:
			printer.print(projection.View(), incidents.Stats())
		}
	}
}

type feedPrinter struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

func (p *feedPrinter) print(view []models.Incident, stats models.DashboardStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	fmt.Fprintf(p.out, "--- %s | total %d | high %d | responders %d | avg %.0f min | showing %d\n",
		now.Format(time.TimeOnly), stats.TotalIncidents, stats.HighUrgency,
		stats.ActiveResponders, stats.AvgResponseTime, len(view))
	for _, inc := range view {
		age := ""
		if ts, ok := inc.ParsedTimestamp(); ok {
			age = models.RelativeAge(ts, now)
		}
		verified := " "
		if inc.IsVerified() {
			verified = "V"
		}
		fmt.Fprintf(p.out, "[%s] %-6s %-17s %-24s %s (%s)\n",
			verified, inc.Urgency, inc.Type, inc.Location, inc.Description, age)
	}
}
