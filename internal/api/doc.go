// Package api is the HTTP client for the profile backend the investigator
// queries.
//
// # Architecture
//
//   - client.go: Source interface and the HTTP Client implementation
//   - types.go: profile, user, post, comment and story payloads
//   - errors.go: APIError and the sentinel errors callers match on
//   - retry.go: exponential backoff retry for transient failures
//
// # Endpoints
//
// All paths are relative to the configured base URL:
//
//	GET /users/{username}            profile of a username
//	GET /users/id/{id}               user details by numeric ID
//	GET /users/{id}/posts            paginated posts
//	GET /users/{id}/followers        paginated followers
//	GET /users/{id}/followings       paginated followings
//	GET /users/{id}/stories          current stories
//	GET /users/{id}/tagged           paginated posts the user is tagged in
//	GET /posts/{id}/comments         paginated comments
//
// List endpoints return {"items": [...], "next_cursor": "..."}; an empty
// cursor marks the last page. The session token is sent as the sessionid
// cookie on every request.
//
// # Usage
//
//	client := api.NewClient(api.Options{
//	    BaseURL: cfg.APIURL,
//	    Session: token,
//	    Cache:   store,
//	})
//	profile, err := client.Profile(ctx, "someone")
package api
