package feed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

/*
RodDriver is a Driver backed by a rod-controlled Chromium. The window is
visible by default because the login step is done by hand.
*/
type RodDriver struct {
	browser *rod.Browser
	page    *rod.Page
	once    sync.Once
}

// LaunchRod returns a Launcher that starts a local browser through rod's launcher.
func LaunchRod(headless bool) Launcher {
	return func(ctx context.Context) (Driver, error) {
		chromium := launcher.New().Headless(headless).Leakless(true).Context(ctx)
		wsURL, err := chromium.Launch()

		if err != nil {
			return nil, err
		}

		var browser *rod.Browser

		page, err := openOrKill(func() (*rod.Page, error) {
			browser = rod.New().ControlURL(wsURL).Context(ctx)

			if err := browser.Connect(); err != nil {
				return nil, err
			}

			page, err := browser.Page(proto.TargetCreateTarget{})

			if err != nil {
				browser.Close()
				return nil, err
			}

			return page, nil
		}, chromium.Kill)

		if err != nil {
			return nil, err
		}

		return &RodDriver{browser: browser, page: page}, nil
	}
}

// openOrKill runs open and calls kill when it fails, so a launched browser never outlives a failed attach.
func openOrKill[T any](open func() (T, error), kill func()) (T, error) {
	value, err := open()

	if err != nil {
		kill()
	}

	return value, err
}

func (driver *RodDriver) Navigate(ctx context.Context, url string) error {
	page := driver.page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return err
	}

	return page.WaitLoad()
}

func (driver *RodDriver) HTML(ctx context.Context) (string, error) {
	return driver.page.Context(ctx).HTML()
}

func (driver *RodDriver) ScrollBy(ctx context.Context, dy int) error {
	_, err := driver.page.Context(ctx).Eval(`(dy) => window.scrollBy(0, dy)`, dy)
	return err
}

// Close releases the browser. Calls after the first are no-ops.
func (driver *RodDriver) Close() (err error) {
	driver.once.Do(func() {
		err = driver.browser.Close()
	})

	return err
}

/*
ConfirmFromReader prints a prompt to out and blocks until a line arrives on
in. There is no timeout: the operator may take as long as the login needs.
*/
func ConfirmFromReader(in io.Reader, out io.Writer) Confirmer {
	return func(ctx context.Context) error {
		fmt.Fprintln(out, "Please log in manually. Once you see the home page, press Enter to continue.")

		if _, err := bufio.NewReader(in).ReadString('\n'); err != nil && err != io.EOF {
			return err
		}

		return nil
	}
}
