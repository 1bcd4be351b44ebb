// Package loader drives the fetch-and-settle flow behind crate's screens.
//
// Catalog lists every album for the home screen. Detail fetches one album by
// id for the detail screen. Both own a state.Store and move it through
// Loading to Loaded or Failed, one fetch per call:
//
//	l := loader.NewDetail(client, loader.WithLogger(log))
//	unsubscribe := l.Subscribe(func(s state.LoadState[catalog.AlbumDetail]) {
//		program.Send(detailStateMsg{s})
//	})
//	defer unsubscribe()
//	l.Load(ctx, "42") // blocks until the fetch settles
//
// # Superseding and stopping
//
// A newer Start or Load cancels the request of the one before it and the
// older result is dropped by generation, even when the fetcher ignores
// cancellation. Stop does the same without opening a new lifecycle, so the
// visible state stays where it was. Cancellation caused by the caller's own
// context is reported as an ordinary failure.
//
// # Failure messages
//
// Every error becomes Failed(FailureMessage(err)). The message is the error
// text, or UnknownError when that text is blank. Nothing is retried.
package loader
