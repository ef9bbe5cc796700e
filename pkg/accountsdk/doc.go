/*
Package accountsdk provides a client SDK for the accounts service.

The package is organized around two types:

  - SDKClient: unauthenticated operations (signup, login, health checks)
  - Session: authenticated operations carrying the session's bearer token

Create an SDKClient to reach public endpoints and open sessions:

	client := accountsdk.NewSDKClient("https://accounts.example.com")

	health, err := client.GetLiveness(ctx)

	session, err := client.Signup(ctx, "ada@example.com", "Ada", "password")

A user has at most one active session, so logging in while a session is
active hands back the same token the earlier login received:

	session, err := client.Login(ctx, "ada@example.com", "password")

Use the Session for account operations:

	profile, err := session.GetProfile(ctx)

	err = session.UpdatePreferences(ctx, map[string]any{"theme": "dark"})

	err = session.Logout(ctx)

Errors from the service are returned as *APIError carrying the HTTP status
and the service's machine-readable error code.
*/
package accountsdk
