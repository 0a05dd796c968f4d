package docs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docsPage = `<!DOCTYPE html>
<html><head><title>BlueprintReadOnly</title></head>
<body>
<nav>Home | Specifiers | About</nav>
<article>
<h1>BlueprintReadOnly</h1>
<p>This property can be read by Blueprint graphs, but cannot be modified by them.
It is commonly paired with VisibleAnywhere for values the engine computes at runtime,
such as derived stats, cached lookups, or anything the designer should see but never edit.</p>
<p>Attempting to write to such a property from a Blueprint is a compile-time error.
The Blueprint editor greys out the setter nodes entirely, so in practice the mistake is
caught long before the game runs. If you need both read and write access from graphs,
use BlueprintReadWrite instead, keeping in mind the two specifiers are mutually exclusive.</p>
<p>Native C++ code is unaffected by this specifier and can always write the value.</p>
</article>
</body></html>`

func TestExcerptExtractsReadableText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(docsPage))
	}))
	defer srv.Close()

	e, err := NewExcerpter(nil)
	require.NoError(t, err)

	excerpt, err := e.Excerpt(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, excerpt, "read by Blueprint graphs")
	assert.NotContains(t, excerpt, "\n", "excerpt should be single-line text")
	assert.LessOrEqual(t, len([]rune(excerpt)), defaultExcerptLen+1)
}

func TestExcerptIsCached(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(docsPage))
	}))
	defer srv.Close()

	e, err := NewExcerpter(nil)
	require.NoError(t, err)

	first, err := e.Excerpt(context.Background(), srv.URL)
	require.NoError(t, err)
	second, err := e.Excerpt(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second call must come from cache")
}

func TestExcerptErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	e, err := NewExcerpter(nil)
	require.NoError(t, err)

	_, err = e.Excerpt(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestTruncateLongText(t *testing.T) {
	long := strings.Repeat("word ", 500)
	got := truncate(collapseWhitespace(long), defaultExcerptLen)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), defaultExcerptLen+1)
}
