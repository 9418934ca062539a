package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"browsershell/internal/inspect"
	"browsershell/internal/remotectl"
	"browsershell/internal/tui"
	"browsershell/pkg/logging"
)

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, a *Application) error {
	svc := a.services

	// The terminal belongs to the TUI from here on.
	logging.InitForTUI(a.level(), svc.Logs)
	defer logging.InitForCLI(a.level(), os.Stderr)

	if err := a.start(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	var opts []tui.Option
	if svc.History != nil {
		opts = append(opts, tui.WithSuggester(svc.History))
	}
	m := tui.NewModel(gctx, svc.Shell, svc.Host, svc.Waker, opts...)

	g.Go(func() error {
		// Quitting the TUI stops everything else.
		defer cancel()
		if err := tui.Run(gctx, m); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	})
	a.startSideServices(gctx, g)

	err := g.Wait()
	logging.Info("TUI-Lifecycle", "TUI exited.")
	return err
}

// runHeadlessMode runs the shell without a terminal. It only makes sense
// with remote control or the inspector enabled.
func runHeadlessMode(ctx context.Context, a *Application) error {
	svc := a.services
	logging.InitForCLI(a.level(), os.Stderr)

	if !a.settings.RemoteControl.Enabled && !a.settings.Inspector.Enabled {
		logging.Warn("CLI", "Running headless without remote control or inspector; nothing can reach the shell")
	}
	if err := a.start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return tui.RunHeadless(gctx, svc.Shell, svc.Host, svc.Waker)
	})
	a.startSideServices(gctx, g)

	logging.Info("CLI", "Shell running headless. Press Ctrl+C to exit.")
	err := g.Wait()
	logging.Info("CLI", "Shell stopped.")
	return err
}

var errEngineGone = errors.New("engine connection closed")

// startSideServices runs the optional servers and watches the remote engine.
// They all stop when ctx is done.
func (a *Application) startSideServices(ctx context.Context, g *errgroup.Group) {
	svc := a.services
	s := a.settings

	if s.Inspector.Enabled {
		srv := inspect.NewServer(svc.AppStore, svc.WindowStore, svc.Logs, svc.Queues()...)
		g.Go(func() error {
			if err := srv.Serve(ctx, s.Inspector.Addr); err != nil {
				return fmt.Errorf("inspector: %w", err)
			}
			return nil
		})
	}

	if s.RemoteControl.Enabled {
		rc := remotectl.New(svc.Host.Injector(svc.Waker), svc.WindowStore, a.config.Version)
		g.Go(func() error {
			if err := rc.Serve(ctx, s.RemoteControl.Host, s.RemoteControl.Port); err != nil {
				return fmt.Errorf("remote control: %w", err)
			}
			return nil
		})
	}

	if r := svc.Remote; r != nil {
		g.Go(func() error {
			select {
			case <-r.Done():
				if err := r.Err(); err != nil {
					return fmt.Errorf("engine connection closed: %w", err)
				}
				return errEngineGone
			case <-ctx.Done():
				return nil
			}
		})
	}
}
