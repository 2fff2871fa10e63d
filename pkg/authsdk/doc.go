/*
Package authsdk is a client SDK for the userbackend authentication API, and
the home of its wire types.

# Overview

Every API route answers with the envelope

	{"error": <int>, "error_msg": <string>, "data": <any|null>}

where error 0 means success. The SDK decodes data into typed responses and
turns a non-zero error into an *APIError carrying the code, message and HTTP
status.

# Sessions

The service keeps the signed-in user in an HTTP-only cookie. SDKClient owns
a cookie jar, so one client behaves like one browser:

	client := authsdk.NewSDKClient("https://api.example.com")

	if _, err := client.Login(ctx, "alice", "Secret123"); err != nil {
		if authsdk.IsCode(err, authsdk.CodeUnauthorized) {
			// wrong username or password
		}
	}

	status, err := client.LoginStatus(ctx)

# OTP-gated flows

Signup, email change and password reset all run in three steps: request a
code, exchange the code for a proof token, then perform the action with the
token.

	_, err := client.RequestSignup(ctx, authsdk.RequestSignupRequest{
		Email: "a@example.com", Username: "alice", FullName: "Alice",
	})

	// code arrives by email
	verified, err := client.VerifyOTP(ctx, authsdk.VerifyOTPRequest{
		Email: "a@example.com", Username: authsdk.String("alice"), OTP: code,
	})

	_, err = client.Signup(ctx, authsdk.SignupRequest{
		Token: verified.Token, Email: "a@example.com", Username: "alice",
		FullName: "Alice", SchoolName: "HS", Password: "Secret123",
	})

Password reset binds the code to a null username; pass a nil Username to
VerifyOTP for that flow.
*/
package authsdk
