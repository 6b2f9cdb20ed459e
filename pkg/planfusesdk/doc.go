/*
Package planfusesdk provides a client SDK for interacting with the PlanFuse service.

# Overview

The planfusesdk package implements a typed client for PlanFuse's
authentication and plan management API. It provides both unauthenticated
operations (via SDKClient) and authenticated operations (via Session).

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: Provides unauthenticated operations and creates authenticated sessions
  - Session: Provides authenticated operations using a bearer session token

Create an SDKClient to interact with public endpoints and log in:

	client := planfusesdk.NewSDKClient("https://planfuse.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Create an account
	user, err := client.Register(ctx, "alice", "correct horse battery")

	// Authenticate to create a session
	session, err := client.Login(ctx, "alice", "correct horse battery")

Use a Session for authenticated operations:

	// Get user information
	userInfo, err := session.GetUserInfo(ctx)

	// Work with plans
	plans, err := session.ListPlans(ctx)
	plan, err := session.CreatePlan(ctx, "weekend trip")
	err = session.DeletePlan(ctx, "weekend trip")

# Multi-Factor Authentication

Accounts with an active TOTP factor do not get a session straight from
Login. Instead Login returns a *MFARequiredError carrying a short-lived
ticket; complete authentication with a code from the authenticator app:

	session, err := client.Login(ctx, "alice", "correct horse battery")
	var mfaErr *planfusesdk.MFARequiredError
	if errors.As(err, &mfaErr) {
		session, err = client.CompleteMFA(ctx, mfaErr, otpCode)
	}

Enrollment is a Session operation:

	enroll, err := session.EnrollTOTP(ctx)   // secret + otpauth URL, shown once
	err = session.ActivateTOTP(ctx, code)    // confirm a code, factor goes live
	err = session.DisableTOTP(ctx, code)     // requires a valid code

# Session Lifetime

Session tokens are valid for 24 hours and each login supersedes any earlier
session for the same user. There is no automatic refresh: call Refresh to
trade the current token for a fresh one, and Logout to revoke the session
server-side.

	err = session.Refresh(ctx) // token and expiry updated in place
	err = session.Logout(ctx)  // token stops verifying immediately

A persisted token can be turned back into a handle without logging in
again:

	session := client.NewSessionFromToken(token, expiresAt)

# Error Handling

Non-2xx responses are returned as *APIError carrying the HTTP status code
and the service's machine-readable error code:

	_, err := client.Login(ctx, "alice", "wrong password")
	var apiErr *planfusesdk.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case planfusesdk.ErrorCodeInvalidCredentials:
			// wrong username or password
		case planfusesdk.ErrorCodeAccountLocked:
			// locked out after repeated failures, retry later
		}
	}

# Thread Safety

Sessions are safe for concurrent use. Token state is guarded by a
read/write lock, so multiple goroutines can share a single Session and
make authenticated requests concurrently.
*/
package planfusesdk
