// Package display owns the state behind the mosque screen: wall-clock time,
// the selected city and its schedule, the rotating messages and the Islamic
// calendar cursor. Browsers and devices consume it through View snapshots.
package display

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/minbar/internal/hijri"
	"github.com/Nixie-Tech-LLC/minbar/internal/model"
	"github.com/Nixie-Tech-LLC/minbar/internal/prayertimes"
)

const (
	DefaultClockInterval   = time.Second
	DefaultMessageInterval = 5 * time.Second
	notifyTimeout          = 5 * time.Second
	notifyQueue            = 32
)

// DefaultMessages are shown when no messages are configured.
var DefaultMessages = []string{
	"Bienvenue à la mosquée",
	"Rappel: Cours de Coran après la prière d'Asr",
	"Vendredi: Khutbah à 13h30",
	"Ramadan commence le 10 mars",
}

type Options struct {
	InitialCity     string
	Messages        []string
	ClockInterval   time.Duration
	MessageInterval time.Duration
	Locale          string
	CalendarMonth   int
	CalendarYear    int
	Notifier        Notifier
	Now             func() time.Time
}

// Clock is the display orchestrator.
type Clock struct {
	provider      prayertimes.Provider
	selector      *CitySelector
	notifier      Notifier
	now           func() time.Time
	clockEvery    time.Duration
	messageEvery  time.Duration
	labels        Labels
	locations     sync.Map // timezone name -> *time.Location
	ctx           context.Context
	cancel        context.CancelFunc
	fetches       sync.WaitGroup
	events        chan Event
	notifyDone    chan struct{}
	subsMu        sync.Mutex
	subs          map[int]chan View
	nextSubID     int
	mu            sync.Mutex
	current       time.Time
	city          string
	schedule      *model.PrayerSchedule
	islamicDate   string
	loading       bool
	rotator       *Rotator
	calendar      hijri.Calendar
	lastNext      string
	fetchSeq      uint64
	cancelPending context.CancelFunc
	closed        bool
}

func NewClock(provider prayertimes.Provider, opts Options) *Clock {
	if opts.InitialCity == "" {
		opts.InitialCity = prayertimes.DefaultCity
	}
	if opts.Messages == nil {
		opts.Messages = DefaultMessages
	}
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = DefaultClockInterval
	}
	if opts.MessageInterval <= 0 {
		opts.MessageInterval = DefaultMessageInterval
	}
	if opts.CalendarMonth == 0 {
		opts.CalendarMonth = hijri.DefaultMonth
	}
	if opts.CalendarYear == 0 {
		opts.CalendarYear = hijri.DefaultYear
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Clock{
		provider:     provider,
		notifier:     opts.Notifier,
		now:          opts.Now,
		clockEvery:   opts.ClockInterval,
		messageEvery: opts.MessageInterval,
		labels:       NewLabels(opts.Locale),
		ctx:          ctx,
		cancel:       cancel,
		subs:         map[int]chan View{},
		current:      opts.Now(),
		city:         opts.InitialCity,
		loading:      true,
		rotator:      NewRotator(opts.Messages),
		calendar:     hijri.New(opts.CalendarMonth, opts.CalendarYear),
	}
	c.selector = NewCitySelector(provider, func(city string) { c.SetCity(city) })
	if c.notifier != nil {
		c.events = make(chan Event, notifyQueue)
		c.notifyDone = make(chan struct{})
		go c.forwardEvents()
	}
	return c
}

// Selector exposes the city selector wired to SetCity.
func (c *Clock) Selector() *CitySelector { return c.selector }

// Run loads the city list and the initial schedule, then drives the clock
// and message tickers until ctx is done. In-flight fetches are cancelled
// and awaited before Run returns.
func (c *Clock) Run(ctx context.Context) error {
	defer c.shutdown()

	c.fetches.Add(1)
	go func() {
		defer c.fetches.Done()
		_ = c.selector.Load(c.ctx)
		c.broadcast()
	}()

	c.mu.Lock()
	city := c.city
	c.mu.Unlock()
	c.SetCity(city)

	clockTicker := time.NewTicker(c.clockEvery)
	defer clockTicker.Stop()
	messageTicker := time.NewTicker(c.messageEvery)
	defer messageTicker.Stop()

	log.Info().
		Str("city", city).
		Dur("clock_interval", c.clockEvery).
		Dur("message_interval", c.messageEvery).
		Msg("display clock started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("display clock stopped")
			return nil
		case <-clockTicker.C:
			c.Tick()
		case <-messageTicker.C:
			c.Rotate()
		}
	}
}

func (c *Clock) shutdown() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	c.fetches.Wait()
	if c.notifyDone != nil {
		<-c.notifyDone
	}
	c.subsMu.Lock()
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
	c.subsMu.Unlock()
}

// Tick refreshes the current time and reports a change of next prayer.
func (c *Clock) Tick() {
	c.mu.Lock()
	c.current = c.now()
	var event *Event
	if c.schedule != nil {
		next := NextPrayer(c.schedule.Prayers, c.localTime(c.current))
		if next != nil && next.Name != c.lastNext {
			c.lastNext = next.Name
			event = &Event{
				Type:        EventNextPrayerChanged,
				City:        c.city,
				NextPrayer:  next,
				IslamicDate: c.islamicDate,
				At:          c.current,
			}
		}
	}
	c.mu.Unlock()

	c.broadcast()
	if event != nil {
		c.emit(*event)
	}
}

// Rotate advances the message rotation.
func (c *Clock) Rotate() {
	c.mu.Lock()
	c.rotator.Advance()
	c.mu.Unlock()
	c.broadcast()
}

// SetCity selects city and starts fetching its schedule. A newer call
// cancels the previous fetch and its result is discarded. The returned
// channel is closed once this fetch has been applied or dropped.
func (c *Clock) SetCity(city string) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(done)
		return done
	}
	if c.cancelPending != nil {
		c.cancelPending()
	}
	fetchCtx, cancel := context.WithCancel(c.ctx)
	c.cancelPending = cancel
	c.fetchSeq++
	seq := c.fetchSeq
	changed := c.city != city
	c.city = city
	c.loading = true
	c.fetches.Add(1)
	c.mu.Unlock()

	c.broadcast()
	if changed {
		c.emit(Event{Type: EventCityChanged, City: city, At: c.now()})
	}

	go func() {
		defer c.fetches.Done()
		defer close(done)
		defer cancel()
		c.fetch(fetchCtx, seq, city)
	}()
	return done
}

func (c *Clock) fetch(ctx context.Context, seq uint64, city string) {
	schedule, err := c.provider.GetSchedule(ctx, city)

	c.mu.Lock()
	if seq != c.fetchSeq {
		c.mu.Unlock()
		log.Debug().Str("city", city).Uint64("seq", seq).Msg("discarding stale schedule")
		return
	}
	c.loading = false
	c.cancelPending = nil
	if err != nil {
		c.mu.Unlock()
		if errors.Is(err, context.Canceled) {
			log.Debug().Str("city", city).Msg("prayer times fetch cancelled")
		} else {
			log.Error().Err(err).Str("city", city).Msg("failed to load prayer times")
		}
		c.broadcast()
		return
	}
	c.schedule = schedule
	c.islamicDate = schedule.IslamicDate
	next := NextPrayer(schedule.Prayers, c.localTime(c.now()))
	c.lastNext = ""
	if next != nil {
		c.lastNext = next.Name
	}
	event := Event{
		Type:        EventScheduleLoaded,
		City:        city,
		NextPrayer:  next,
		IslamicDate: schedule.IslamicDate,
		At:          c.now(),
	}
	c.mu.Unlock()

	log.Info().Str("city", city).Str("islamic_date", schedule.IslamicDate).Msg("prayer times loaded")
	c.broadcast()
	c.emit(event)
}

func (c *Clock) CalendarPrev() {
	c.mu.Lock()
	c.calendar.Prev()
	c.mu.Unlock()
	c.broadcast()
}

func (c *Clock) CalendarNext() {
	c.mu.Lock()
	c.calendar.Next()
	c.mu.Unlock()
	c.broadcast()
}

// SetMessages replaces the rotating messages and restarts from the first.
func (c *Clock) SetMessages(messages []string) {
	c.mu.Lock()
	c.rotator.Reset(messages)
	c.mu.Unlock()
	c.broadcast()
}

func (c *Clock) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotator.Messages()
}

// View returns a snapshot of the display state.
func (c *Clock) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	local := c.localTime(c.current)
	v := View{
		City:          c.city,
		Now:           local,
		DateLabel:     c.labels.Date(local),
		TimeLabel:     c.labels.Time(local),
		IslamicDate:   c.islamicDate,
		Loading:       c.loading,
		Prayers:       []PrayerView{},
		Message:       c.rotator.Current(),
		MessageIndex:  c.rotator.Index(),
		Cities:        c.selector.Options(c.city),
		CitiesLoading: c.selector.Loading(),
		Calendar:      NewCalendarView(c.calendar, c.islamicDate),
	}
	if c.schedule != nil {
		v.CalendarDate = c.schedule.Date
		v.NextPrayer = NextPrayer(c.schedule.Prayers, local)
		v.Prayers = prayerViews(c.schedule.Prayers, v.NextPrayer)
	}
	return v
}

// Subscribe delivers a View after every state change. Slow subscribers only
// see the latest snapshot. The channel is closed when Run returns or when
// the returned func is called.
func (c *Clock) Subscribe() (<-chan View, func()) {
	ch := make(chan View, 1)
	c.subsMu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = ch
	c.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subsMu.Lock()
			defer c.subsMu.Unlock()
			if _, ok := c.subs[id]; ok {
				close(ch)
				delete(c.subs, id)
			}
		})
	}
}

func (c *Clock) broadcast() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	if len(c.subs) == 0 {
		return
	}
	v := c.View()
	for _, ch := range c.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

// emit queues e for the notifier. It never blocks: when the queue is full
// the event is dropped.
func (c *Clock) emit(e Event) {
	if c.events == nil {
		return
	}
	select {
	case c.events <- e:
	default:
		log.Warn().Str("event", string(e.Type)).Msg("notification queue full, dropping display event")
	}
}

// forwardEvents delivers queued events in order until the clock shuts down.
func (c *Clock) forwardEvents() {
	defer close(c.notifyDone)
	for {
		select {
		case <-c.ctx.Done():
			return
		case e := <-c.events:
			ctx, cancel := context.WithTimeout(c.ctx, notifyTimeout)
			if err := c.notifier.Notify(ctx, e); err != nil {
				log.Warn().Err(err).Str("event", string(e.Type)).Msg("failed to publish display event")
			}
			cancel()
		}
	}
}

// localTime moves t into the schedule's timezone when one is known.
// Must be called with c.mu held.
func (c *Clock) localTime(t time.Time) time.Time {
	if c.schedule == nil || c.schedule.Timezone == "" {
		return t
	}
	tz := c.schedule.Timezone
	if loc, ok := c.locations.Load(tz); ok {
		return t.In(loc.(*time.Location))
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Warn().Err(err).Str("timezone", tz).Msg("unknown timezone, using server time")
		c.locations.Store(tz, time.Local)
		return t
	}
	c.locations.Store(tz, loc)
	return t.In(loc)
}
