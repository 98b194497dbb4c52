package feed

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cohesivestack/valgo"
	"github.com/theapemachine/herewego/pkg/errors"
)

// State names the phases a scrape run moves through.
type State int

const (
	StateAwaitingManualAuth State = iota
	StateNavigated
	StateExtracting
	StateScrolling
	StateDone
)

func (state State) String() string {
	return [...]string{"awaiting-manual-auth", "navigated", "extracting", "scrolling", "done"}[state]
}

/*
Driver is a live browser session pointed at a single page.
*/
type Driver interface {
	Navigate(ctx context.Context, url string) error
	HTML(ctx context.Context) (string, error)
	ScrollBy(ctx context.Context, dy int) error
	Close() error
}

// Launcher acquires a Driver. It is called exactly once per scrape.
type Launcher func(ctx context.Context) (Driver, error)

// Confirmer blocks until the operator signals that the manual login is complete.
type Confirmer func(ctx context.Context) error

/*
Options tunes a scrape. The zero value is not usable; start from
DefaultOptions.
*/
type Options struct {
	LoginURL   string
	FeedURL    string
	Settle     time.Duration
	Pause      time.Duration
	Step       int
	MaxScrolls int
}

func DefaultOptions() Options {
	return Options{
		LoginURL:   "https://x.com/login",
		FeedURL:    "https://x.com/FabrizioRomano",
		Settle:     5 * time.Second,
		Pause:      3 * time.Second,
		Step:       500,
		MaxScrolls: 200,
	}
}

// Validate checks the options before any browser is launched.
func (options Options) Validate() error {
	v := valgo.Is(valgo.String(options.LoginURL, "login_url").Not().Blank()).
		Is(valgo.String(options.FeedURL, "feed_url").Not().Blank()).
		Is(valgo.Int(options.Step, "step").GreaterThan(0)).
		Is(valgo.Int(options.MaxScrolls, "max_scrolls").GreaterOrEqualTo(0))

	if !v.Valid() {
		return errors.ErrInvalidInput.Wrap(v.Error())
	}

	return nil
}

/*
Scraper drives a Driver through login, navigation and the extract/scroll
loop, collecting posts until the stop marker is accepted.
*/
type Scraper struct {
	launch  Launcher
	confirm Confirmer
	options Options
	sleep   func(context.Context, time.Duration) error
	state   State
}

type ScraperOption func(*Scraper)

func NewScraper(launch Launcher, confirm Confirmer, options ...ScraperOption) *Scraper {
	scraper := &Scraper{
		launch:  launch,
		confirm: confirm,
		options: DefaultOptions(),
		sleep:   sleep,
	}

	for _, option := range options {
		option(scraper)
	}

	return scraper
}

func WithOptions(options Options) ScraperOption {
	return func(scraper *Scraper) {
		scraper.options = options
	}
}

// WithSleep replaces the pause implementation, mostly so tests do not wait.
func WithSleep(fn func(context.Context, time.Duration) error) ScraperOption {
	return func(scraper *Scraper) {
		scraper.sleep = fn
	}
}

// State returns the phase the most recent run ended in.
func (scraper *Scraper) State() State {
	return scraper.state
}

/*
Scrape runs one session and returns the accepted posts in feed order. A nil
marker scrapes until MaxScrolls is reached. Failing to acquire the browser
is fatal; a failed extraction pass is logged and the loop keeps scrolling.
*/
func (scraper *Scraper) Scrape(ctx context.Context, marker *StopMarker) (posts []Post, err error) {
	if err = scraper.options.Validate(); err != nil {
		return nil, err
	}

	driver, err := scraper.launch(ctx)

	if err != nil {
		return nil, errors.ErrResourceAcquisition.WithMessagef("launch browser").Wrap(err)
	}

	defer func() {
		if closeErr := driver.Close(); closeErr != nil {
			log.Warn("failed to close browser", "error", closeErr)
		}
	}()

	session := NewSession(marker)
	scraper.transition(StateAwaitingManualAuth)

	if err = driver.Navigate(ctx, scraper.options.LoginURL); err != nil {
		return nil, errors.ErrResourceAcquisition.WithMessagef("open login page").Wrap(err)
	}

	if err = scraper.confirm(ctx); err != nil {
		return nil, errors.ErrResourceAcquisition.WithMessagef("manual login").Wrap(err)
	}

	if err = driver.Navigate(ctx, scraper.options.FeedURL); err != nil {
		return nil, errors.ErrResourceAcquisition.WithMessagef("open feed %s", scraper.options.FeedURL).Wrap(err)
	}

	scraper.transition(StateNavigated)

	if err = scraper.sleep(ctx, scraper.options.Settle); err != nil {
		return nil, err
	}

	for scrolls := 0; ; scrolls++ {
		scraper.transition(StateExtracting)

		if scraper.extract(ctx, driver, session) == Done {
			break
		}

		if scraper.options.MaxScrolls > 0 && scrolls >= scraper.options.MaxScrolls {
			log.Warn("scroll limit reached before stop marker", "scrolls", scrolls, "posts", session.Len())
			break
		}

		scraper.transition(StateScrolling)

		if err = driver.ScrollBy(ctx, scraper.options.Step); err != nil {
			log.Warn("scroll failed", "error", err)
		}

		if err = scraper.sleep(ctx, scraper.options.Pause); err != nil {
			return session.Posts(), err
		}
	}

	scraper.transition(StateDone)
	log.Info("scrape finished", "posts", session.Len(), "marker_reached", session.Reached())

	return session.Posts(), nil
}

func (scraper *Scraper) extract(ctx context.Context, driver Driver, session *Session) Step {
	html, err := driver.HTML(ctx)

	if err != nil {
		log.Warn("failed to read page", "error", err)
		return Continue
	}

	candidates, err := ExtractPosts(html)

	if err != nil {
		log.Warn("failed to parse page", "error", err)
		return Continue
	}

	step, accepted := session.Absorb(candidates)
	log.Debug("extraction pass", "candidates", len(candidates), "accepted", accepted, "total", session.Len())

	return step
}

func (scraper *Scraper) transition(state State) {
	log.Debug("scraper state", "from", scraper.state, "to", state)
	scraper.state = state
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
