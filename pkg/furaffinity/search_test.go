package furaffinity

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "fascraper/pkg/errors"
)

// searchServer serves one page of recorded results followed by an empty
// page, capturing each submitted form
func searchServer(t *testing.T, forms *[]map[string]string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", frontPageHandler(t, nil))
	mux.HandleFunc("/search/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())

		if forms != nil {
			form := make(map[string]string)
			for key := range r.PostForm {
				form[key] = r.PostFormValue(key)
			}
			*forms = append(*forms, form)
		}

		if r.PostFormValue("page") == "1" {
			serveFixture(t, w, "search_results.html")
		} else {
			serveFixture(t, w, "search_results_empty.html")
		}
	})
	return mux
}

func TestSearchWalksPagesUntilExhausted(t *testing.T) {
	var forms []map[string]string
	client := newTestClient(t, searchServer(t, &forms))
	ctx := context.Background()
	require.NoError(t, client.Login(ctx, testCookies()))

	results, err := client.Search(ctx, "wolf", SearchOptions{}).All()
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, SearchResult{
		ID:       44726308,
		Kind:     KindImage,
		Rating:   RatingGeneral,
		Title:    "Winter Wolf",
		Uploader: "Fakeartist",
	}, results[0])
	assert.Equal(t, KindText, results[1].Kind)
	assert.Equal(t, RatingMature, results[1].Rating)
	assert.Equal(t, KindAudio, results[2].Kind)
	assert.Equal(t, RatingAdult, results[2].Rating)

	// page 1 with results, page 2 empty
	require.Len(t, forms, 2)
	assert.Equal(t, "1", forms[0]["page"])
	assert.Equal(t, "2", forms[1]["page"])
}

func TestSearchFormDefaults(t *testing.T) {
	var forms []map[string]string
	client := newTestClient(t, searchServer(t, &forms))
	ctx := context.Background()
	require.NoError(t, client.Login(ctx, testCookies()))

	_, err := client.Search(ctx, "wolf", SearchOptions{MaxPages: 1}).All()
	require.NoError(t, err)

	require.Len(t, forms, 1)
	form := forms[0]
	assert.Equal(t, "wolf", form["q"])
	assert.Equal(t, "72", form["perpage"])
	assert.Equal(t, "relevancy", form["order-by"])
	assert.Equal(t, "desc", form["order-direction"])
	assert.Equal(t, "all", form["range"])
	assert.Equal(t, "extended", form["mode"])
	assert.Equal(t, "Search", form["do_search"])

	// default filters: all ratings, art and photo types
	assert.Equal(t, "on", form["rating-general"])
	assert.Equal(t, "on", form["rating-mature"])
	assert.Equal(t, "on", form["rating-adult"])
	assert.Equal(t, "on", form["type-art"])
	assert.Equal(t, "on", form["type-photo"])
	assert.NotContains(t, form, "type-flash")
	assert.NotContains(t, form, "type-music")
	assert.NotContains(t, form, "type-story")
	assert.NotContains(t, form, "type-poetry")
}

func TestSearchTagsQuery(t *testing.T) {
	var forms []map[string]string
	client := newTestClient(t, searchServer(t, &forms))
	ctx := context.Background()
	require.NoError(t, client.Login(ctx, testCookies()))

	_, err := client.SearchTags(ctx, SearchOptions{}, "wolf", "forest").All()
	require.NoError(t, err)

	require.NotEmpty(t, forms)
	assert.Equal(t, "@keywords wolf forest", forms[0]["q"])
}

func TestSearchTagsForwardsOptions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", frontPageHandler(t, nil))
	var forms []map[string]string
	mux.HandleFunc("/search/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form := make(map[string]string)
		for key := range r.PostForm {
			form[key] = r.PostFormValue(key)
		}
		forms = append(forms, form)
		serveFixture(t, w, "search_results.html")
	})

	client := newTestClient(t, mux)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx, testCookies()))

	opts := SearchOptions{
		Sort:     "date",
		Order:    "asc",
		Range:    "week",
		MaxPages: 2,
		Ratings:  RatingFilter{General: true},
		Types:    TypeFilter{Story: true},
	}
	results, err := client.SearchTags(ctx, opts, "wolf", "winter").All()
	require.NoError(t, err)

	// Tag searches honor options the same way free-text searches do
	require.Len(t, forms, 2)
	assert.Len(t, results, 6)

	form := forms[0]
	assert.Equal(t, "@keywords wolf winter", form["q"])
	assert.Equal(t, "date", form["order-by"])
	assert.Equal(t, "asc", form["order-direction"])
	assert.Equal(t, "week", form["range"])
	assert.Equal(t, "on", form["rating-general"])
	assert.NotContains(t, form, "rating-mature")
	assert.Equal(t, "on", form["type-story"])
	assert.NotContains(t, form, "type-art")
}

func TestSearchMaxPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", frontPageHandler(t, nil))
	pages := 0
	mux.HandleFunc("/search/", func(w http.ResponseWriter, r *http.Request) {
		pages++
		serveFixture(t, w, "search_results.html")
	})

	client := newTestClient(t, mux)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx, testCookies()))

	results, err := client.Search(ctx, "wolf", SearchOptions{MaxPages: 2}).All()
	require.NoError(t, err)

	assert.Equal(t, 2, pages)
	assert.Len(t, results, 6)
}

func TestSearchRequiresLogin(t *testing.T) {
	client := newTestClient(t, searchServer(t, nil))

	pager := client.Search(context.Background(), "wolf", SearchOptions{})
	assert.False(t, pager.Next())

	err := pager.Err()
	require.Error(t, err)
	assert.True(t, errs.IsAuth(err))
}

func TestSearchEmptyFirstPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", frontPageHandler(t, nil))
	mux.HandleFunc("/search/", func(w http.ResponseWriter, r *http.Request) {
		serveFixture(t, w, "search_results_empty.html")
	})

	client := newTestClient(t, mux)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx, testCookies()))

	results, err := client.Search(ctx, "zero-results-query", SearchOptions{}).All()
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchMalformedMarkupIsParseError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", frontPageHandler(t, nil))
	mux.HandleFunc("/search/", func(w http.ResponseWriter, r *http.Request) {
		serveFixture(t, w, "search_results_malformed.html")
	})

	client := newTestClient(t, mux)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx, testCookies()))

	results, err := client.Search(ctx, "wolf", SearchOptions{}).All()
	require.Error(t, err)
	assert.True(t, errs.IsParse(err), "markup drift must surface as a parse error, got %v", err)
	assert.Empty(t, results)
}

func TestParseFiguresRejectsMangledFigure(t *testing.T) {
	doc := docFromString(t, `
		<div id="gallery-search-results">
			<figure class="r-general t-image"><figcaption></figcaption></figure>
		</div>`)

	_, err := parseFigures(doc.Find("#gallery-search-results"))
	require.Error(t, err)
	assert.True(t, errs.IsParse(err))
}
