package eventproducers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	pubsub "github.com/aum7/aumchi/src/eventpubsub"
	"github.com/aum7/aumchi/src/models"
)

// consoleClient bridges a chart host that speaks a line-oriented csv
// protocol on a reader (normally stdin):
//
//	tick,<rfc3339>,<bid>,<ask>
//	line,<name>,<comment>,<rfc3339 t1>,<y1>,<rfc3339 t2>,<y2>
//	del,<name>
//
// Annotation records are applied to the chart store and republished;
// tick records are handed to the feed worker.
type consoleClient struct {
	wg       *sync.WaitGroup
	reader   io.Reader
	chart    *models.InMemoryChart
	tickerCh chan models.Tick
}

func parseTick(record []string) (models.Tick, error) {
	if len(record) != 4 {
		return models.Tick{}, fmt.Errorf("parseTick: expected 4 fields, got %d", len(record))
	}

	timestamp, err := time.Parse(time.RFC3339, record[1])
	if err != nil {
		return models.Tick{}, fmt.Errorf("parseTick: invalid timestamp %q: %w", record[1], err)
	}
	bid, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return models.Tick{}, fmt.Errorf("parseTick: invalid bid %q: %w", record[2], err)
	}
	ask, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return models.Tick{}, fmt.Errorf("parseTick: invalid ask %q: %w", record[3], err)
	}

	return models.Tick{Timestamp: timestamp, Bid: bid, Ask: ask}, nil
}

func parseLine(record []string) (models.TrendLine, error) {
	if len(record) != 7 {
		return models.TrendLine{}, fmt.Errorf("parseLine: expected 7 fields, got %d", len(record))
	}

	t1, err := time.Parse(time.RFC3339, record[3])
	if err != nil {
		return models.TrendLine{}, fmt.Errorf("parseLine: invalid time1 %q: %w", record[3], err)
	}
	y1, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return models.TrendLine{}, fmt.Errorf("parseLine: invalid y1 %q: %w", record[4], err)
	}
	t2, err := time.Parse(time.RFC3339, record[5])
	if err != nil {
		return models.TrendLine{}, fmt.Errorf("parseLine: invalid time2 %q: %w", record[5], err)
	}
	y2, err := strconv.ParseFloat(record[6], 64)
	if err != nil {
		return models.TrendLine{}, fmt.Errorf("parseLine: invalid y2 %q: %w", record[6], err)
	}

	return models.TrendLine{
		Name:    record[1],
		Comment: record[2],
		Time1:   t1,
		Y1:      y1,
		Time2:   t2,
		Y2:      y2,
	}, nil
}

func (c *consoleClient) handleRecord(record []string) error {
	if len(record) == 0 {
		return nil
	}

	switch record[0] {
	case "tick":
		tick, err := parseTick(record)
		if err != nil {
			return err
		}
		c.tickerCh <- tick
	case "line":
		line, err := parseLine(record)
		if err != nil {
			return err
		}
		c.chart.Upsert(line)
		pubsub.Publish(pubsub.LineUpdatedEvent, line)
	case "del":
		if len(record) != 2 {
			return fmt.Errorf("handleRecord: expected 2 fields for del, got %d", len(record))
		}
		c.chart.Remove(record[1])
		pubsub.Publish(pubsub.LineRemovedEvent, record[1])
	default:
		return fmt.Errorf("handleRecord: unknown record type %q", record[0])
	}

	return nil
}

func (c *consoleClient) Start(ctx context.Context) {
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		reader := csv.NewReader(c.reader)
		reader.FieldsPerRecord = -1

		for {
			select {
			case <-ctx.Done():
				log.Info("stopping console producer")
				return
			default:
			}

			record, err := reader.Read()
			if err == io.EOF {
				log.Info("console producer: input stream closed")
				return
			}
			if err != nil {
				log.Errorf("console producer: failed to read record: %v", err)
				continue
			}

			if err := c.handleRecord(record); err != nil {
				log.Errorf("console producer: %v", err)
			}
		}
	}()
}

func NewConsoleClient(wg *sync.WaitGroup, reader io.Reader, chart *models.InMemoryChart, tickerCh chan models.Tick) *consoleClient {
	return &consoleClient{
		wg:       wg,
		reader:   reader,
		chart:    chart,
		tickerCh: tickerCh,
	}
}
