package googletrans

import (
	"math/rand"

	"github.com/brianvoe/gofakeit/v6"
)

// userAgents is the built-in desktop browser pool a session picks from when
// no override list and no generator is configured.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36 Edg/123.0.2420.81",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Windows NT 10.0; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:124.0) Gecko/20100101 Firefox/124.0",
}

// pickUserAgent chooses the session User-Agent. Generated agents come from
// gofakeit; otherwise one entry of the pool is chosen with rng.
func pickUserAgent(rng *rand.Rand, pool []string, generate bool) string {
	if generate {
		return gofakeit.NewCrypto().UserAgent()
	}
	if len(pool) == 0 {
		pool = userAgents
	}
	return choose(rng, pool)
}

// choose picks one element with rng, falling back to the global source when
// rng is nil.
func choose(rng *rand.Rand, items []string) string {
	if len(items) == 1 {
		return items[0]
	}
	if rng == nil {
		return items[rand.Intn(len(items))]
	}
	return items[rng.Intn(len(items))]
}
