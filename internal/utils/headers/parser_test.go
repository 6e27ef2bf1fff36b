package headers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeaders(t *testing.T) {
	in := []string{"user-agent: Bot", "Accept: text/html", "BadHeader", ": empty", "Accept-Language: en-AU", "accept-language: en-NZ"}

	assert.Equal(t, map[string]string{
		"User-Agent":      "Bot",
		"Accept":          "text/html",
		"Accept-Language": "en-NZ",
	}, ParseHeaders(in))
}

func TestParseHeadersKeepsColonsInValue(t *testing.T) {
	assert.Equal(t, map[string]string{"Referer": "https://www.seek.com.au/"}, ParseHeaders([]string{"Referer: https://www.seek.com.au/"}))
}
