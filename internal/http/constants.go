package httpx

import "time"

const (
	// ClientIDCookie names the cookie that identifies a browser context.
	ClientIDCookie = "client_id"

	// clientIDMaxAge keeps the browser context for a year of inactivity.
	clientIDMaxAge = 365 * 24 * time.Hour

	// maxBodyBytes caps JSON request bodies.
	maxBodyBytes = 1 << 20
)
