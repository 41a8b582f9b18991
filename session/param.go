// Package session resolves the durable account identity a client acts on
// behalf of, provisioning a new account on first use.
package session

import "net/url"

// AccountIDParam is the query-parameter and storage key naming the
// session's account id.
const AccountIDParam = "accountId"

// ParamFromURL extracts the named query parameter from a launch URL.
// It returns "" when the URL does not parse or the parameter is absent.
func ParamFromURL(rawURL, name string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get(name)
}
