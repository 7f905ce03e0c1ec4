package contents

import (
	"errors"

	"github.com/google/go-github/v72/github"
)

// StatusOf returns the HTTP status carried by an API error, or 0 for
// transport failures and other errors.
func StatusOf(err error) int {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return rateErr.Response.StatusCode
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return abuseErr.Response.StatusCode
	}
	return 0
}
