package session

import (
	"fmt"
	"net/url"
)

// recoveryToken extracts the access token of a password-recovery link. The
// parameters travel in the fragment; the query is accepted as well.
func recoveryToken(rawURL string) (string, bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false, fmt.Errorf("invalid link: %w", err)
	}

	for _, part := range []string{u.Fragment, u.RawQuery} {
		if part == "" {
			continue
		}
		values, err := url.ParseQuery(part)
		if err != nil {
			continue
		}
		if values.Get("type") == "recovery" && values.Get("access_token") != "" {
			return values.Get("access_token"), true, nil
		}
	}
	return "", false, nil
}
