// Package tui hosts the shell in a terminal using bubbletea.
//
// A Host plays the application, the window and the engine surface for the
// event pump. Key presses and mouse input become host events; every
// bubbletea message is followed by one pump tick on the bubbletea goroutine,
// and the state the pump renders is drawn by Model.View.
//
// Work queued from other goroutines (the remote engine, remote control) wakes
// the loop through a Waker, which the pump sees as EventLoopAwaken.
//
// The terminal cannot show page content. The page area shows the foreground
// tab's title, address and load state instead.
package tui
