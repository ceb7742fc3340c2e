package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mlm272/maggiemayer-portfolio/internal/config"
	"github.com/mlm272/maggiemayer-portfolio/internal/lightbox"
	"github.com/mlm272/maggiemayer-portfolio/internal/metrics"
	"github.com/mlm272/maggiemayer-portfolio/internal/models"
	"github.com/mlm272/maggiemayer-portfolio/internal/session"
	"github.com/mlm272/maggiemayer-portfolio/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Static.Root = t.TempDir()
	cfg.Projects = &models.ProjectList{Projects: []models.Project{
		{
			ID:       1,
			Slug:     "gallery",
			Title:    "Gallery Project",
			Category: models.CategoryWeb,
			Images:   []string{"/a b.png", "/images/two.png", "/images/three.png"},
			Featured: true,
		},
		{
			ID:       2,
			Slug:     "single",
			Title:    "Single Image App",
			Category: models.CategoryMobile,
			Images:   []string{"/images/only.png"},
			Featured: true,
		},
		{
			ID:       3,
			Slug:     "draft",
			Title:    "Draft Project",
			Category: models.CategoryWeb,
		},
	}}
	return cfg
}

type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newTestClient(t *testing.T, cfg *config.Config) (*testClient, *store.Store) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h, err := SetupRoutes(cfg, zaptest.NewLogger(t), db)
	require.NoError(t, err)
	return &testClient{t: t, handler: h}, db
}

func (c *testClient) do(method, target string, form url.Values, accept string) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return rec
}

func (c *testClient) lightbox(slug, action string, form url.Values) (lightbox.State, int) {
	rec := c.do(http.MethodPost, "/work/"+slug+"/lightbox/"+action, form, "application/json")
	var st lightbox.State
	if rec.Code == http.StatusOK {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &st))
	}
	return st, rec.Code
}

func TestHomePage(t *testing.T) {
	c, _ := newTestClient(t, testConfig(t))

	rec := c.do(http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Featured Work")
	assert.Contains(t, body, "Gallery Project")
	assert.Contains(t, body, "Single Image App")
	assert.NotContains(t, body, "Draft Project")
	require.Len(t, c.cookies, 1)
	assert.Equal(t, session.CookieName, c.cookies[0].Name)

	rec = c.do(http.MethodGet, "/?category=mobile", nil, "")
	assert.NotContains(t, rec.Body.String(), "Gallery Project")
	assert.Contains(t, rec.Body.String(), "Single Image App")

	rec = c.do(http.MethodGet, "/work?category=bogus", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="work-grid"`)
	assert.Contains(t, rec.Body.String(), "Gallery Project")
	assert.Contains(t, rec.Body.String(), "Single Image App")
}

func TestDetailPage(t *testing.T) {
	c, _ := newTestClient(t, testConfig(t))

	rec := c.do(http.MethodGet, "/work/gallery", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Gallery Project</h1>")
	assert.Contains(t, rec.Body.String(), `src="/a%20b.png"`)
	assert.Contains(t, rec.Body.String(), `data-open="false"`)

	rec = c.do(http.MethodGet, "/work/nonexistent", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Project Not Found")
	assert.Contains(t, rec.Body.String(), "Back to Work")

	rec = c.do(http.MethodGet, "/no/such/page", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404 - Page Not Found")
}

func TestDetailPageEmptyImageGroups(t *testing.T) {
	cfg := testConfig(t)
	cfg.Projects.Projects = append(cfg.Projects.Projects,
		models.Project{
			ID:       4,
			Slug:     "leading-empty",
			Title:    "Leading Empty Group",
			Category: models.CategoryBrand,
			CategorizedImages: []models.ImageGroup{
				{Category: "Coming soon"},
				{Category: "Logos", Images: []string{"/brand/logo one.png"}},
			},
		},
		models.Project{
			ID:                5,
			Slug:              "all-empty",
			Title:             "All Empty Groups",
			Category:          models.CategoryBrand,
			CategorizedImages: []models.ImageGroup{{Category: "Soon"}},
		},
	)
	c, _ := newTestClient(t, cfg)

	rec := c.do(http.MethodGet, "/work/leading-empty", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `src="/brand/logo%20one.png"`)
	assert.NotContains(t, rec.Body.String(), "Coming soon")

	st, code := c.lightbox("leading-empty", "open", url.Values{"index": {"0"}})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/brand/logo%20one.png", st.Path)

	rec = c.do(http.MethodGet, "/work/all-empty", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="hero-image placeholder"`)

	_, code = c.lightbox("all-empty", "open", url.Values{"index": {"0"}})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLightboxFlow(t *testing.T) {
	c, _ := newTestClient(t, testConfig(t))
	c.do(http.MethodGet, "/work/gallery", nil, "")

	st, code := c.lightbox("gallery", "open", url.Values{"index": {"0"}})
	require.Equal(t, http.StatusOK, code)
	assert.True(t, st.Open)
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, "/a%20b.png", st.Path)
	assert.Equal(t, 3, st.Total)
	assert.True(t, st.ShowControls)

	st, _ = c.lightbox("gallery", "prev", nil)
	assert.Equal(t, 2, st.Index)
	st, _ = c.lightbox("gallery", "next", nil)
	assert.Equal(t, 0, st.Index)
	st, _ = c.lightbox("gallery", "key", url.Values{"key": {"ArrowRight"}})
	assert.Equal(t, 1, st.Index)
	assert.Equal(t, "/images/two.png", st.Path)

	st, _ = c.lightbox("gallery", "key", url.Values{"key": {"Escape"}})
	assert.False(t, st.Open)

	// Arrow keys do nothing while closed
	st, _ = c.lightbox("gallery", "key", url.Values{"key": {"ArrowLeft"}})
	assert.False(t, st.Open)

	_, code = c.lightbox("gallery", "open", url.Values{"index": {"7"}})
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = c.lightbox("gallery", "open", url.Values{"index": {"x"}})
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = c.lightbox("gallery", "spin", nil)
	assert.Equal(t, http.StatusNotFound, code)
	_, code = c.lightbox("missing", "next", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLightboxTransitionMetrics(t *testing.T) {
	c, _ := newTestClient(t, testConfig(t))
	c.do(http.MethodGet, "/work/gallery", nil, "")

	transitions := metrics.New().LightboxTransitions
	count := func(action string) float64 {
		return testutil.ToFloat64(transitions.WithLabelValues(action))
	}
	start := map[string]float64{}
	for _, a := range []string{"open", "next", "prev", "close", "key"} {
		start[a] = count(a)
	}
	delta := func(action string) float64 { return count(action) - start[action] }

	// nothing changes while closed
	c.lightbox("gallery", "next", nil)
	c.lightbox("gallery", "prev", nil)
	c.lightbox("gallery", "key", url.Values{"key": {"ArrowRight"}})
	c.lightbox("gallery", "close", nil)
	assert.Zero(t, delta("next"))
	assert.Zero(t, delta("prev"))
	assert.Zero(t, delta("key"))
	assert.Zero(t, delta("close"))

	c.lightbox("gallery", "open", url.Values{"index": {"0"}})
	c.lightbox("gallery", "key", url.Values{"key": {"Enter"}})
	c.lightbox("gallery", "key", url.Values{"key": {"ArrowRight"}})
	c.lightbox("gallery", "next", nil)
	c.lightbox("gallery", "close", nil)
	c.lightbox("gallery", "close", nil)

	assert.Equal(t, 1.0, delta("open"))
	assert.Equal(t, 1.0, delta("key"))
	assert.Equal(t, 1.0, delta("next"))
	assert.Equal(t, 1.0, delta("close"))
}

func TestLightboxResetsOnNavigation(t *testing.T) {
	c, _ := newTestClient(t, testConfig(t))
	c.do(http.MethodGet, "/work/gallery", nil, "")

	st, _ := c.lightbox("gallery", "open", url.Values{"index": {"1"}})
	require.True(t, st.Open)

	c.do(http.MethodGet, "/work/single", nil, "")
	c.do(http.MethodGet, "/work/gallery", nil, "")

	st, _ = c.lightbox("gallery", "next", nil)
	assert.False(t, st.Open)
}

func TestLightboxFragment(t *testing.T) {
	c, _ := newTestClient(t, testConfig(t))
	c.do(http.MethodGet, "/work/single", nil, "")

	rec := c.do(http.MethodPost, "/work/single/lightbox/open", url.Values{"index": {"0"}}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="lightbox"`)
	assert.Contains(t, body, "1 / 1")
	assert.NotContains(t, body, "lightbox-next")
}

func TestSections(t *testing.T) {
	c, _ := newTestClient(t, testConfig(t))

	observe := func(section, ratio string) (map[string]any, int) {
		rec := c.do(http.MethodPost, "/sections/observe", url.Values{"section": {section}, "ratio": {ratio}}, "application/json")
		var out map[string]any
		if rec.Code == http.StatusOK {
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		}
		return out, rec.Code
	}

	out, code := observe("work", "0.2")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "home", out["active"])
	assert.Equal(t, false, out["changed"])

	out, _ = observe("work", "0.31")
	assert.Equal(t, "work", out["active"])
	assert.Equal(t, true, out["changed"])

	out, _ = observe("home", "0.4")
	assert.Equal(t, "work", out["active"])

	_, code = observe("footer", "0.9")
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = observe("about", "1.5")
	assert.Equal(t, http.StatusBadRequest, code)

	rec := c.do(http.MethodPost, "/sections/select", url.Values{"section": {"contact"}}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-section="contact" class="nav-link active"`)

	rec = c.do(http.MethodGet, "/", nil, "")
	assert.Contains(t, rec.Body.String(), `data-section="contact" class="nav-link active"`)
}

func TestContact(t *testing.T) {
	c, db := newTestClient(t, testConfig(t))

	rec := c.do(http.MethodPost, "/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"message": {"Let's work together"},
	}, "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp contactResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.NotEmpty(t, resp.ID)

	msgs, err := db.ListMessages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Ada", msgs[0].Name)

	rec = c.do(http.MethodPost, "/contact", url.Values{"name": {"Ada"}, "email": {"nope"}, "message": {"hi"}}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "email is not valid")
	assert.Contains(t, rec.Body.String(), `id="contact-result"`)
}

func TestContactRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Contact.RatePerMinute = 1
	cfg.Contact.Burst = 1
	c, _ := newTestClient(t, cfg)

	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"hello"}}
	rec := c.do(http.MethodPost, "/contact", form, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPost, "/contact", form, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="contact-result"`)
	assert.Contains(t, rec.Body.String(), "Too many messages")
}

func TestProjectAPI(t *testing.T) {
	c, _ := newTestClient(t, testConfig(t))

	rec := c.do(http.MethodGet, "/api/projects", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 3)

	rec = c.do(http.MethodGet, "/api/projects?category=mobile", nil, "")
	var mobile []models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mobile))
	require.Len(t, mobile, 1)
	assert.Equal(t, "single", mobile[0].Slug)

	rec = c.do(http.MethodGet, "/api/projects?category=brand", nil, "")
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = c.do(http.MethodGet, "/api/projects?category=nope", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodGet, "/api/projects/gallery", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"gallery"`)

	rec = c.do(http.MethodGet, "/api/projects?featured=true", nil, "")
	var featured []models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &featured))
	assert.Len(t, featured, 2)

	rec = c.do(http.MethodGet, "/api/projects?featured=true&category=web", nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &featured))
	require.Len(t, featured, 1)
	assert.Equal(t, "gallery", featured[0].Slug)

	rec = c.do(http.MethodGet, "/api/projects/2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"single"`)

	rec = c.do(http.MethodGet, "/api/projects/nonexistent", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, rec.Body.String())

	rec = c.do(http.MethodGet, "/api/health", nil, "")
	assert.JSONEq(t, `{"status":"ok","projects":3}`, rec.Body.String())

	rec = c.do(http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestMediaAPI(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Join(cfg.Static.Root, "images", "animations", "json")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spin.json"), []byte(`{"fr":24}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Static.Root, "images", "a b.png"), []byte("png"), 0o600))

	c, _ := newTestClient(t, cfg)

	rec := c.do(http.MethodGet, "/api/animations/spin", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var anim map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &anim))
	assert.Equal(t, false, anim["error"])
	assert.Equal(t, map[string]any{"fr": float64(24)}, anim["data"])

	rec = c.do(http.MethodGet, "/api/animations/missing", nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &anim))
	assert.Equal(t, true, anim["error"])

	rec = c.do(http.MethodGet, "/api/media/fallbacks?path="+url.QueryEscape("/social posts/Jump$tart Post.png"), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fb fallbackResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fb))
	assert.Equal(t, "/social%20posts/Jump%24tart%20Post.png", fb.Resolved)
	require.Len(t, fb.Chain, 3)
	assert.Equal(t, "segment", fb.Chain[0].Strategy)
	assert.Equal(t, "uri", fb.Chain[1].Strategy)
	assert.Equal(t, "raw", fb.Chain[2].Strategy)
	assert.Equal(t, "/social posts/Jump$tart Post.png", fb.Chain[2].Src)

	rec = c.do(http.MethodGet, "/api/media/fallbacks", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodGet, "/images/a%20b.png", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	rec = c.do(http.MethodGet, "/assets/site.js", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBasePathAndMetrics(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.BasePath = "/portfolio"
	c, _ := newTestClient(t, cfg)

	rec := c.do(http.MethodGet, "/portfolio/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/portfolio/work/gallery"`)
	assert.Contains(t, rec.Body.String(), `src="/portfolio/a%20b.png"`)

	rec = c.do(http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/portfolio/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "portfolio_http_requests_total")
}
