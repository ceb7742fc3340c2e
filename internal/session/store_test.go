package session

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlm272/maggiemayer-portfolio/internal/lightbox"
	"github.com/mlm272/maggiemayer-portfolio/internal/models"
	"github.com/mlm272/maggiemayer-portfolio/internal/sections"
)

func TestStoreGet(t *testing.T) {
	store := NewStore(10, time.Minute, false)

	rec := httptest.NewRecorder()
	v := store.Get(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, v)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, v.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	t.Run("cookie returns the same view", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookies[0])
		rec := httptest.NewRecorder()

		assert.Same(t, v, store.Get(rec, req))
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("unknown cookie gets a new view", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "stale"})
		rec := httptest.NewRecorder()

		other := store.Get(rec, req)
		assert.NotEqual(t, v.ID, other.ID)
		assert.Len(t, rec.Result().Cookies(), 1)
	})

	assert.Equal(t, 2, store.Len())
}

func TestViewMountResetsLightbox(t *testing.T) {
	a := &models.Project{Slug: "a", Images: []string{"/a1.png", "/a2.png"}}
	b := &models.Project{Slug: "b", Images: []string{"/b1.png"}}

	v := newView("test")
	v.MountProject(a)

	st, err := v.Lightbox(a, func(lb *lightbox.Session) error { return lb.Open(1) })
	require.NoError(t, err)
	assert.True(t, st.Open)
	assert.Equal(t, "/a2.png", st.Path)

	// navigating to another project starts closed
	st = v.MountProject(b)
	assert.False(t, st.Open)
	assert.Equal(t, 1, st.Total)

	// and coming back starts closed too
	st = v.MountProject(a)
	assert.False(t, st.Open)
}

func TestViewLightboxMountsOnDemand(t *testing.T) {
	a := &models.Project{Slug: "a", Images: []string{"/a1.png", "/a2.png"}}
	v := newView("test")

	st, err := v.Lightbox(a, func(lb *lightbox.Session) error {
		lb.Next()
		return nil
	})
	require.NoError(t, err)
	assert.False(t, st.Open)
	assert.Equal(t, 2, st.Total)
}

func TestViewSections(t *testing.T) {
	v := newView("test")
	assert.Equal(t, sections.Home, v.Sections(nil))

	active := v.Sections(func(tr *sections.Tracker) { tr.Observe(sections.Contact, 0.4) })
	assert.Equal(t, sections.Contact, active)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Sections(func(tr *sections.Tracker) { tr.Set(sections.Work) })
			_ = v.Nav()
		}()
	}
	wg.Wait()
	assert.Equal(t, sections.Work, v.Sections(nil))
}
