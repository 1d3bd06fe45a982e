package web_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/chargen/internal/dice"
	"github.com/KirkDiggler/chargen/internal/equipment"
	"github.com/KirkDiggler/chargen/internal/handlers/web"
	"github.com/KirkDiggler/chargen/internal/orchestrators/character"
	"github.com/KirkDiggler/chargen/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/chargen/internal/repositories/character"
	"github.com/KirkDiggler/chargen/internal/testutils"
)

// TestWizardEndToEnd walks a browser-like client through every step
func TestWizardEndToEnd(t *testing.T) {
	client, _ := testutils.CreateTestRedisClient(t)
	repo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
	require.NoError(t, err)

	svc, err := character.New(&character.Config{
		CharacterRepo: repo,
		DiceRoller:    dice.New(nil),
		Equipment:     equipment.MustLoadDefault(),
		IDGenerator:   idgen.NewUUID(),
	})
	require.NoError(t, err)

	h, err := web.NewHandler(&web.Config{CharacterService: svc})
	require.NoError(t, err)

	server := httptest.NewServer(h.Routes())
	defer server.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	browser := &http.Client{Jar: jar}

	post := func(path string, form url.Values) *http.Response {
		resp, err := browser.PostForm(server.URL+path, form)
		require.NoError(t, err)
		return resp
	}

	// make_character redirects through the hub to the first step
	resp := post("/chargen/make_character", url.Values{"player_name": {"Gary"}})
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Request.URL.Path, "/chargen/roll_stats/"))
	key := strings.TrimPrefix(resp.Request.URL.Path, "/chargen/roll_stats/")

	resp = post("/chargen/roll_stats/"+key, url.Values{})
	_ = resp.Body.Close()
	assert.Equal(t, "/chargen/pick_class/"+key, resp.Request.URL.Path)

	resp = post("/chargen/pick_class/"+key, url.Values{
		"character_class": {"elf"},
		"left-stat":       {"str"},
		"right-stat":      {"dex"},
		"name":            {"Elrond"},
	})
	_ = resp.Body.Close()
	assert.Equal(t, "/chargen/roll_hp_and_gear/"+key, resp.Request.URL.Path)

	resp = post("/chargen/roll_hp_and_gear/"+key, url.Values{})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "/chargen/"+key, resp.Request.URL.Path)

	sheet := new(strings.Builder)
	_, err = io.Copy(sheet, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, sheet.String(), "Elrond")
	assert.Contains(t, sheet.String(), "spellbook")

	// a replayed step lands back on the finished sheet
	again := post("/chargen/roll_stats/"+key, url.Values{})
	_ = again.Body.Close()
	assert.Equal(t, http.StatusOK, again.StatusCode)
	assert.Equal(t, "/chargen/"+key, again.Request.URL.Path)
}
