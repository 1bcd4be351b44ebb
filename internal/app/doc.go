// Package app is the composition root for crate.
//
// Run builds every long-lived dependency exactly once and hands it to the
// code that needs it:
//
//  1. config.Load reads ~/.config/crate/config.toml, .env and CRATE_* overrides
//  2. logging.New opens the rotating log file
//  3. catalog.NewClient builds the one HTTP client for the catalog service
//  4. loader.NewCatalog and loader.NewDetail share that client
//  5. prefs.Load picks the saved theme
//  6. ui.Run starts the TUI and blocks until the user quits
//
// # Plain Output
//
// When Options.List or Options.AlbumID is set, or the output is not a
// terminal, Run skips the TUI. It drives the same loaders once and prints
// the result using the fallbacks of the detail screen, which makes crate
// usable in pipes and scripts:
//
//	crate -list | cut -f2
//	crate -album 42
//
// A failed load is returned as an error so the process exits non-zero.
//
// # Errors
//
// Config, logging and client construction failures are fatal and wrapped
// with the step that failed. A broken prefs file is logged and the default
// theme is used.
package app
