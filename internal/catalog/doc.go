// Package catalog provides an HTTP client for the album catalog API.
//
// # Overview
//
// The catalog API is read-only and exposes two endpoints:
//
//   - GET {base}/albums: JSON array of albums, every field required
//   - GET {base}/albums/{id}: JSON object, every field optional or null
//
// The base URL may carry a path prefix (the public catalog lives under
// /api/). Endpoint paths are resolved relative to it, so the prefix is kept.
//
// # Client Usage
//
// One client is created at startup and shared by every loader:
//
//	client, err := catalog.NewClient(cfg.BaseURL,
//		catalog.WithTimeout(cfg.HTTP.Timeout),
//		catalog.WithLogger(logger),
//	)
//	if err != nil {
//		return fmt.Errorf("init catalog client: %w", err)
//	}
//
//	albums, err := client.ListAlbums(ctx)
//	detail, err := client.GetAlbum(ctx, "42")
//
// # Decoding
//
// Unknown JSON fields are ignored on both endpoints. List entries that omit a
// required field, or send it as null, fail with a DecodeError naming the
// field. Detail objects decode into AlbumDetail whose fields are *string; an
// empty object {} decodes to an AlbumDetail with every field nil.
//
// # Error Handling
//
// Errors fall into three kinds:
//
//   - *NetworkError: the request never produced a response (connection
//     refused, DNS, timeout, cancelled context)
//   - *DecodeError: the body did not match the expected shape
//   - *StatusError: the server answered with a non-2xx status; a 404 also
//     matches ErrNotFound through errors.Is
//
// Each call is a single attempt. The client never caches and never retries;
// a retry is a fresh call by the caller.
package catalog
