// Package moviepilot provides a client for interacting with the MoviePilot API.
//
// MoviePilot is a media library automation server (search, recognition,
// subscriptions, downloads). Unlike the Starr apps, its API is authenticated
// with a short-lived JWT obtained from a username/password login rather than
// a static API key, so the client maintains the credential lifecycle itself.
//
// # Authentication
//
// The client logs in lazily: the first request needing auth performs a
// form-encoded POST to /api/v1/login/access-token and caches the returned
// bearer token. Concurrent first requests are collapsed into a single login
// by a double-checked lock. When a request is rejected with 401 or 403, the
// token is invalidated and the request is retried once through a fresh
// login; if the retry is also rejected, the call fails with *AuthError.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := moviepilot.NewClient(
//		"https://moviepilot.example.com",
//		"admin", "password",
//		logger,
//		moviepilot.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	results, err := client.SearchMedia(ctx, "Dune", moviepilot.MediaTypeMedia, 1)
//
// # Error Handling
//
// All failures crossing the client boundary are classified:
//
//   - *AuthError: login failed, or the token was rejected and the single
//     automatic retry is exhausted
//
//   - *APIError: everything else, with Kind distinguishing remote API
//     errors, transport-level failures, and unexpected conditions
//
//     var apiErr *moviepilot.APIError
//     if errors.As(err, &apiErr) && apiErr.IsNetwork() {
//     // remote unreachable
//     }
package moviepilot
