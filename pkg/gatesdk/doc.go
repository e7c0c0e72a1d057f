// Package gatesdk is a typed Go client for the trip gateway HTTP API.
//
// It mirrors the gateway's wire contracts exactly: account endpoints return
// message envelopes, resource endpoints return normalized records, and every
// non-2xx response decodes into an *APIError carrying the status code and
// the public message.
//
// Basic usage:
//
//	client := gatesdk.NewClient("http://localhost:8080")
//	tokens, err := client.Login(ctx, gatesdk.Credentials{Username: "alice", Password: "secret"})
//	if err != nil {
//		// ...
//	}
//	weather, err := client.Weather(ctx, tokens.AccessToken, gatesdk.TripQuery{ZipCode: "98004"})
package gatesdk
