package pipeline

import (
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// patternCacheSize bounds the number of compiled delimiter patterns.
// A batch run typically uses one br tag and one paragraph pair.
const patternCacheSize = 64

var patternCache = mustNewPatternCache()

func mustNewPatternCache() *lru.Cache[string, *regexp.Regexp] {
	c, err := lru.New[string, *regexp.Regexp](patternCacheSize)
	if err != nil {
		panic("pipeline: " + err.Error())
	}
	return c
}

// compileLiteral compiles expr, where every caller-supplied part has already
// been passed through regexp.QuoteMeta. Compiled patterns are cached.
func compileLiteral(expr string) *regexp.Regexp {
	if re, ok := patternCache.Get(expr); ok {
		return re
	}
	re := regexp.MustCompile(expr)
	patternCache.Add(expr, re)
	return re
}
