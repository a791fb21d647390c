package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/aum7/aumchi/src/models"
	"github.com/aum7/aumchi/src/tracker"
	"github.com/aum7/aumchi/src/trailing"
	"github.com/aum7/aumchi/src/worker"
)

type tickRecord struct {
	Timestamp string  `csv:"timestamp"`
	Bid       float64 `csv:"bid"`
	Ask       float64 `csv:"ask"`
}

type lineRecord struct {
	Name    string  `csv:"name"`
	Comment string  `csv:"comment"`
	Time1   string  `csv:"time1"`
	Y1      float64 `csv:"y1"`
	Time2   string  `csv:"time2"`
	Y2      float64 `csv:"y2"`
}

type firedSignal struct {
	Timestamp time.Time
	Kind      string
	LineName  string
	Price     float64
}

type RunArgs struct {
	ConfigFile string
	TicksFile  string
	LinesFile  string
}

var rootCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay csv ticks and signal lines through the tracking engine",
	Run: func(cmd *cobra.Command, args []string) {
		configFile, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		ticksFile, err := cmd.Flags().GetString("ticks")
		if err != nil {
			log.Fatalf("error getting ticks: %v", err)
		}

		linesFile, err := cmd.Flags().GetString("lines")
		if err != nil {
			log.Fatalf("error getting lines: %v", err)
		}

		if err := run(RunArgs{
			ConfigFile: configFile,
			TicksFile:  ticksFile,
			LinesFile:  linesFile,
		}); err != nil {
			log.Fatalf("error running replay: %v", err)
		}
	},
}

func loadTicks(path string) ([]models.Tick, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loadTicks: failed to open %s: %w", path, err)
	}
	defer f.Close()

	var records []*tickRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("loadTicks: failed to parse %s: %w", path, err)
	}

	ticks := make([]models.Tick, 0, len(records))
	for _, r := range records {
		timestamp, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("loadTicks: invalid timestamp %q: %w", r.Timestamp, err)
		}
		ticks = append(ticks, models.Tick{Timestamp: timestamp, Bid: r.Bid, Ask: r.Ask})
	}

	return ticks, nil
}

func loadLines(path string) ([]models.TrendLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loadLines: failed to open %s: %w", path, err)
	}
	defer f.Close()

	var records []*lineRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("loadLines: failed to parse %s: %w", path, err)
	}

	lines := make([]models.TrendLine, 0, len(records))
	for _, r := range records {
		t1, err := time.Parse(time.RFC3339, r.Time1)
		if err != nil {
			return nil, fmt.Errorf("loadLines: invalid time1 %q: %w", r.Time1, err)
		}
		t2, err := time.Parse(time.RFC3339, r.Time2)
		if err != nil {
			return nil, fmt.Errorf("loadLines: invalid time2 %q: %w", r.Time2, err)
		}

		name := r.Name
		if name == "" {
			name = fmt.Sprintf("signalLine %s", uuid.NewString())
		}

		lines = append(lines, models.TrendLine{
			Name:    name,
			Comment: r.Comment,
			Time1:   t1,
			Y1:      r.Y1,
			Time2:   t2,
			Y2:      r.Y2,
		})
	}

	return lines, nil
}

func run(args RunArgs) error {
	cfg := models.DefaultEngineConfig()
	if args.ConfigFile != "" {
		var err error
		if cfg, err = models.LoadEngineConfig(args.ConfigFile); err != nil {
			return err
		}
	}

	ticks, err := loadTicks(args.TicksFile)
	if err != nil {
		return err
	}

	lines, err := loadLines(args.LinesFile)
	if err != nil {
		return err
	}

	chart := models.NewInMemoryChart()
	for _, line := range lines {
		chart.Upsert(line)
	}

	trailEngine := trailing.NewEngine(cfg.TrailOrderLinePips, cfg.TrailOrderLineBarsBack, cfg.TrailTimeframe())
	registry := tracker.NewRegistry(tracker.Config{
		TriggerOrderOnce:  cfg.TriggerOrderOnce,
		EnableCloseOrders: cfg.EnableCloseOrders,
	}, chart, trailEngine, func() bool { return cfg.EnableTrading })

	var fired []firedSignal
	var alerts []firedSignal
	var currentTick models.Tick

	registry.SetAlertFunc(func(alert models.Alert) {
		alerts = append(alerts, firedSignal{
			Timestamp: currentTick.Timestamp,
			Kind:      alert.OrderType.String(),
			LineName:  alert.LineName,
			Price:     alert.Price,
		})
	})

	registry.Scan(chart.Lines())

	feed := worker.NewTickFeed(cfg.PipSize, models.DefaultTimeframe, cfg.TrailTimeframe())

	for _, tick := range ticks {
		currentTick = tick
		snapshot := feed.Update(tick)
		for _, signal := range registry.Tick(snapshot) {
			fired = append(fired, firedSignal{
				Timestamp: tick.Timestamp,
				Kind:      signal.Kind.String(),
				LineName:  signal.LineName,
				Price:     signal.Price,
			})
		}
	}

	p := message.NewPrinter(language.English)
	p.Printf("Replayed %d ticks over %d lines: %d signals, %d alerts\n", len(ticks), len(lines), len(fired), len(alerts))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Time", "Kind", "Line", "Price"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnSeparator("")

	for _, s := range append(fired, alerts...) {
		table.Append([]string{
			s.Timestamp.Format(time.RFC3339),
			s.Kind,
			s.LineName,
			p.Sprintf("%.5f", s.Price),
		})
	}

	table.Render()
	return nil
}

func main() {
	rootCmd.PersistentFlags().String("config", "", "Path to engine config yaml (optional)")
	rootCmd.PersistentFlags().String("ticks", "", "Path to ticks csv (timestamp,bid,ask)")
	rootCmd.PersistentFlags().String("lines", "", "Path to lines csv (name,comment,time1,y1,time2,y2)")

	rootCmd.MarkPersistentFlagRequired("ticks")
	rootCmd.MarkPersistentFlagRequired("lines")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
