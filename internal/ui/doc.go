// Package ui implements crate's terminal interface with Bubble Tea.
//
// # Screens
//
//   - Home: the album list, with a spinner while the catalog loads, an
//     "Error: <message>" line when it fails (r retries) and a fuzzy filter
//     opened with "/"
//   - Detail: one album, with header, an "About this album" card, an artist
//     line and placeholder tracks; esc goes back, r reloads
//
// A static mini-player strip shows the album in view and a help overlay
// lists every binding (h or ?). T cycles the theme and persists it.
//
// # Data flow
//
// The screens hold no fetch logic. They read loader state delivered as
// CatalogStateMsg and DetailStateMsg, either from the subscription bridge set
// up by Run or from the command that called Start or Load. Those paths race,
// so each screen keeps the newest state by generation and ignores anything
// from a lifecycle older than its latest request.
//
// Selecting an album opens the detail screen and calls Load with its id.
// Leaving the detail screen calls Stop, so a slow response for an album no
// longer on screen is discarded.
//
// # Fallbacks
//
// Missing album fields are replaced in one place, display.go. The loaders
// expose the raw optional values.
package ui
