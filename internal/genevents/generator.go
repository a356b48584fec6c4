package genevents

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/eventure/rankd/internal/domain/model"
	"github.com/eventure/rankd/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	maxUserID          = 100
)

// priceRange bounds the ticket price for one category.
type priceRange struct {
	min float64
	max float64
}

// Categories with realistic price ranges.
var categoryPrices = map[string]priceRange{
	"Music":       {20, 150},
	"Festivals":   {50, 200},
	"Sports":      {30, 250},
	"Outdoors":    {0, 100},
	"Workshops":   {10, 50},
	"Conferences": {100, 500},
	"Exhibitions": {0, 100},
	"Community":   {0, 20},
	"Theater":     {30, 150},
	"Family":      {0, 80},
	"Nightlife":   {10, 100},
	"Wellness":    {10, 80},
	"Holiday":     {0, 100},
	"Networking":  {10, 150},
	"Gaming":      {10, 60},
	"Film":        {5, 40},
	"Pets":        {0, 50},
	"Virtual":     {0, 50},
	"Charity":     {0, 50},
	"Science":     {20, 100},
}

// timeSlot is a weighted window of the day an event can start in.
type timeSlot struct {
	startHour int
	endHour   int
	weight    float64
}

var timeSlots = []timeSlot{
	{8, 12, 0.10},  // morning
	{12, 17, 0.35}, // afternoon
	{17, 22, 0.40}, // evening
	{22, 23, 0.15}, // night
}

// daysAheadBucket is a weighted scheduling horizon.
type daysAheadBucket struct {
	min    int
	max    int
	weight float64
}

var daysAheadBuckets = []daysAheadBucket{
	{1, 3, 0.50},
	{4, 14, 0.30},
	{15, 30, 0.15},
	{31, 60, 0.05},
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomIntn returns a random int in [0, n).
func randomIntn(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// randomBetween returns a random float64 in [min, max].
func randomBetween(min, max float64) float64 {
	return min + getRandomFloat()*(max-min)
}

// generateBatch creates the specified number of events for one user.
func generateBatch(ctx context.Context, config *Config, stats *Stats) ([]model.Event, error) {
	logger.Get().Debug(ctx, "generating event batch", logger.Int("numEvents", config.NumEvents))

	events := make([]model.Event, config.NumEvents)
	categories := make([]string, 0, len(categoryPrices))
	for category := range categoryPrices {
		categories = append(categories, category)
	}

	type eventResult struct {
		index int
		event model.Event
		err   error
	}

	resultChan := make(chan eventResult, config.NumEvents)

	workerCount := minInt(config.Workers, config.NumEvents)
	eventsPerWorker := config.NumEvents / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * eventsPerWorker
		end := start + eventsPerWorker
		if worker == workerCount-1 {
			end = config.NumEvents // Last worker gets remaining events
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- eventResult{index: i, err: ctx.Err()}
					return
				default:
					event := generateSingleEvent(i+1, categories, config.MissingRate)
					resultChan <- eventResult{index: i, event: event}
				}
			}
		}(start, end)
	}

	for i := 0; i < config.NumEvents; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during event generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate event %d: %w", result.index, result.err)
			}
			events[result.index] = result.event
		}
	}

	stats.EventsGenerated += len(events)
	return events, nil
}

// generateSingleEvent creates one event. A fraction of events gets fields
// blanked out so the batch also exercises the validity filter.
func generateSingleEvent(contentID int, categories []string, missingRate float64) model.Event {
	category := categories[randomIntn(len(categories))]
	prices := categoryPrices[category]

	event := model.Event{
		ContentID:    contentID,
		Title:        category,
		Description:  "",
		Location:     formatLocation(randomBetween(-90, 90), randomBetween(-180, 180)),
		Start:        generateStart(),
		Source:       "MockSource",
		Type:         category,
		CurrencyCode: "USD",
		Amount:       round2(randomBetween(prices.min, prices.max)),
		URL:          "https://placeholder.url",
		Distance:     round2(randomBetween(0, 100)),
	}

	if missingRate > 0 && getRandomFloat() < missingRate {
		blankRandomField(&event)
	}
	return event
}

// generateStart produces a realistic start time: a weighted scheduling
// horizon of 1-60 days out combined with a weighted time-of-day slot.
func generateStart() time.Time {
	daysAhead := pickDaysAhead()
	slot := pickTimeSlot()

	hour := slot.startHour + randomIntn(slot.endHour-slot.startHour+1)
	minute := []int{0, 15, 30, 45}[randomIntn(4)]

	base := time.Now().UTC().AddDate(0, 0, daysAhead)
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, time.UTC)
}

func pickDaysAhead() int {
	r := getRandomFloat()
	acc := 0.0
	for _, bucket := range daysAheadBuckets {
		acc += bucket.weight
		if r < acc {
			return bucket.min + randomIntn(bucket.max-bucket.min+1)
		}
	}
	last := daysAheadBuckets[len(daysAheadBuckets)-1]
	return last.min + randomIntn(last.max-last.min+1)
}

func pickTimeSlot() timeSlot {
	r := getRandomFloat()
	acc := 0.0
	for _, slot := range timeSlots {
		acc += slot.weight
		if r < acc {
			return slot
		}
	}
	return timeSlots[len(timeSlots)-1]
}

// blankRandomField clears one field so downstream filtering and fallback
// substitution have something to chew on.
func blankRandomField(e *model.Event) {
	switch randomIntn(4) {
	case 0:
		e.Type = ""
	case 1:
		e.Distance = math.NaN()
	case 2:
		e.Amount = math.NaN()
	case 3:
		e.Start = time.Time{}
	}
}

func formatLocation(lat, lon float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lon)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
