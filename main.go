package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/aum7/aumchi/src/eventconsumers"
	"github.com/aum7/aumchi/src/eventproducers"
	pubsub "github.com/aum7/aumchi/src/eventpubsub"
	"github.com/aum7/aumchi/src/models"
	"github.com/aum7/aumchi/src/tracker"
	"github.com/aum7/aumchi/src/trailing"
	"github.com/aum7/aumchi/src/utils"
	"github.com/aum7/aumchi/src/worker"
)

const defaultConfigFile = "aumchi.yaml"

func main() {
	if err := utils.InitEnvironmentVariables(); err != nil {
		log.Fatalf("failed to init environment variables: %v", err)
	}

	configFile := os.Getenv("AUMCHI_CONFIG")
	if configFile == "" {
		configFile = defaultConfigFile
	}

	cfg, err := models.LoadEngineConfig(configFile)
	if err != nil {
		log.Warnf("falling back to default engine config: %v", err)
	}

	pubsub.Init()

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	chart := models.NewInMemoryChart()
	broker := models.NewPaperBroker()
	tickerCh := make(chan models.Tick)

	trailEngine := trailing.NewEngine(cfg.TrailOrderLinePips, cfg.TrailOrderLineBarsBack, cfg.TrailTimeframe())
	registry := tracker.NewRegistry(tracker.Config{
		TriggerOrderOnce:  cfg.TriggerOrderOnce,
		EnableCloseOrders: cfg.EnableCloseOrders,
	}, chart, trailEngine, func() bool { return cfg.EnableTrading })

	// keep the paper broker quoted
	pubsub.Subscribe(pubsub.NewTickEvent, func(snapshot models.MarketSnapshot) {
		broker.OnTick(snapshot.Tick)
	})

	eventconsumers.NewLineTracker(&wg, registry).Start(ctx, chart.Lines())
	eventconsumers.NewTrader(&wg, cfg, broker, registry).Start(ctx)
	eventconsumers.NewPositionManager(&wg, cfg, broker).Start(ctx)
	eventconsumers.NewAlertNotifier(&wg, eventconsumers.LogSoundPlayer{}, cfg.SoundFile).Start(ctx)
	eventconsumers.NewStatusUI(&wg).Start(ctx)
	eventconsumers.NewBarTracker(&wg).Start(ctx)

	eventproducers.NewConsoleClient(&wg, os.Stdin, chart, tickerCh).Start(ctx)

	feed := worker.NewTickFeed(cfg.PipSize, models.DefaultTimeframe, cfg.TrailTimeframe())
	go worker.Run(ctx, feed, tickerCh)

	log.Info("aumchi started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	cancel()
	wg.Wait()

	log.Info("aumchi stopped")
}
