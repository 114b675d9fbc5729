package scrape

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonboulle/clockwork"

	"github.com/dkonya/methu-forecast/internal/domain"
)

// currentLookback is how far behind now a slot may start and still count as
// the current conditions.
const currentLookback = 3 * time.Hour

// errNotApplicable signals that a strategy's structural assumptions do not
// hold for this table, so the chain should try the next one. It is never a
// parse failure.
var errNotApplicable = errors.New("strategy not applicable")

// tableStrategy is one way of reading the forecast table. Strategies are
// tried in order; each either produces slots or reports errNotApplicable.
type tableStrategy interface {
	name() string
	parse(table *goquery.Selection, now time.Time) ([]domain.ForecastSlot, error)
}

var (
	tableClassHintRe = regexp.MustCompile(`(?i)tabl|forecast|elorejelzes|pred`)
	tableTextHintRe  = regexp.MustCompile(`°C|hőmérséklet|csapadék`)
)

// ParseStats describes how a parse went, for the caller's logging and metrics.
// The engine itself stays silent.
type ParseStats struct {
	// Strategy that produced the slots: "marker", "heuristic" or "column".
	// Empty when no table was found.
	Strategy string
	// UnknownIcons counts slots whose icon code was missing from the
	// vocabulary and fell back to the exceptional condition.
	UnknownIcons int
}

// Scraper turns a met.hu forecast HTML fragment into a ForecastSnapshot.
//
// A Scraper is immutable after construction: every Parse call allocates only
// local state, so one instance can serve concurrent parses.
type Scraper struct {
	vocab      Vocabulary
	clock      clockwork.Clock
	strategies []tableStrategy
}

// New creates a Scraper around the given vocabulary. A nil clock means real time.
func New(vocab Vocabulary, clock clockwork.Clock) *Scraper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scraper{
		vocab: vocab,
		clock: clock,
		strategies: []tableStrategy{
			markerStrategy{vocab: vocab},
			heuristicStrategy{vocab: vocab},
			columnStrategy{vocab: vocab},
		},
	}
}

// Parse extracts the forecast from a document. Malformed or missing data
// never yields an error: an unrecognizable document structure comes back as
// Found=false, and individual unparseable cells merely leave their fields
// absent. The error return covers only an unreadable document.
func (s *Scraper) Parse(markup, settlement string) (domain.ForecastSnapshot, ParseStats, error) {
	snapshot := domain.ForecastSnapshot{
		Settlement:  settlement,
		Slots:       []domain.ForecastSlot{},
		Days:        []domain.ForecastSlot{},
		RetrievedAt: s.clock.Now(),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return snapshot, ParseStats{}, fmt.Errorf("read document: %w", err)
	}

	if s.isPlaceholder(doc) {
		return snapshot, ParseStats{}, nil
	}

	table := findForecastTable(doc)
	if table == nil {
		return snapshot, ParseStats{}, nil
	}
	snapshot.Found = true

	now := s.clock.Now()
	var stats ParseStats
	var slots []domain.ForecastSlot
	for _, strat := range s.strategies {
		got, err := strat.parse(table, now)
		if errors.Is(err, errNotApplicable) {
			continue
		}
		slots = got
		stats.Strategy = strat.name()
		break
	}

	slots = normalizeOrder(slots)
	for _, slot := range slots {
		if slot.Condition == domain.ConditionExceptional {
			stats.UnknownIcons++
		}
	}

	snapshot.Slots = slots
	snapshot.Days = aggregateDaily(slots)
	snapshot.Current = pickCurrent(slots, now)

	return snapshot, stats, nil
}

// isPlaceholder detects the empty or "idojaras" stub the site returns for
// unknown settlements.
func (s *Scraper) isPlaceholder(doc *goquery.Document) bool {
	text := strings.ToLower(strings.TrimSpace(doc.Text()))
	if text == "" {
		return true
	}
	for _, p := range s.vocab.Placeholders {
		if text == p {
			return true
		}
	}
	return false
}

// findForecastTable locates the forecast data table: first by the class names
// met.hu has used, then by falling back to any table mentioning temperature
// or precipitation.
func findForecastTable(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection

	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		if tableClassHintRe.MatchString(t.AttrOr("class", "")) {
			found = t
			return false
		}
		return true
	})
	if found != nil {
		return found
	}

	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		if tableTextHintRe.MatchString(t.Text()) {
			found = t
			return false
		}
		return true
	})
	return found
}

// normalizeOrder sorts slots chronologically (keeping untimed slots last in
// their original order) and drops later duplicates of the same timestamp,
// which colspan expansion can produce.
func normalizeOrder(slots []domain.ForecastSlot) []domain.ForecastSlot {
	if len(slots) == 0 {
		return []domain.ForecastSlot{}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i].Time, slots[j].Time
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	out := slots[:0]
	var prev *time.Time
	for _, slot := range slots {
		if slot.Time != nil && prev != nil && slot.Time.Equal(*prev) {
			continue
		}
		prev = slot.Time
		out = append(out, slot)
	}
	return out
}

// pickCurrent selects the slot representing current conditions: the first one
// no older than the lookback window, or the last slot when the whole table
// lies in the past.
func pickCurrent(slots []domain.ForecastSlot, now time.Time) *domain.ForecastSlot {
	if len(slots) == 0 {
		return nil
	}
	cutoff := now.Add(-currentLookback)
	for _, slot := range slots {
		if slot.Time != nil && !slot.Time.Before(cutoff) {
			return &slot
		}
	}
	last := slots[len(slots)-1]
	return &last
}
