package console

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	apperrors "github.com/league-panel/internal/errors"
	"github.com/league-panel/internal/models"
	"github.com/league-panel/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagerFor(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/cards?active_only=true&skip=20", nil)

	t.Run("middle page", func(t *testing.T) {
		p := &types.Page[int]{Items: make([]int, 20), Total: 60, Skip: 20, Limit: 20, HasNext: true, HasPrev: true}
		pv := pagerFor(r, p, 50)
		assert.Equal(t, 21, pv.From)
		assert.Equal(t, 40, pv.To)
		assert.Equal(t, 60, pv.Total)
		assert.Equal(t, "/cards?active_only=true&skip=0", pv.PrevURL)
		assert.Equal(t, "/cards?active_only=true&skip=40", pv.NextURL)
	})

	t.Run("empty page", func(t *testing.T) {
		pv := pagerFor(r, &types.Page[int]{Items: []int{}}, 20)
		assert.Zero(t, pv.From)
		assert.Zero(t, pv.To)
		assert.Empty(t, pv.PrevURL)
		assert.Empty(t, pv.NextURL)
	})

	t.Run("missing limit falls back to page size", func(t *testing.T) {
		p := &types.Page[int]{Items: make([]int, 5), Total: 30, Skip: 5, HasNext: true, HasPrev: true}
		pv := pagerFor(r, p, 10)
		assert.Equal(t, "/cards?active_only=true&skip=0", pv.PrevURL, "previous never goes below zero")
		assert.Equal(t, "/cards?active_only=true&skip=15", pv.NextURL)
	})
}

func TestSwatchStyle(t *testing.T) {
	accepted := []string{
		"#a335ee",
		"#FFF",
		"#11223344",
		"purple",
		"rgb(163, 53, 238)",
		"rgba(163,53,238,0.5)",
		"hsl(270 80% 57%)",
		"hsla(270, 80%, 57%, .4)",
		"hsl(270deg 80% 57% / 50%)",
	}
	for _, c := range accepted {
		style, ok := swatchStyle(c)
		assert.True(t, ok, c)
		assert.Equal(t, "background-color: "+c, string(style))
	}

	rejected := []string{
		"",
		"#12",
		"red; position: fixed",
		"url(https://evil.example/x.png)",
		"expression(alert(1))",
		"rgb(1, 2)",
		`"><script>`,
	}
	for _, c := range rejected {
		_, ok := swatchStyle(c)
		assert.False(t, ok, c)
	}
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"", "/tokens"},
		{"/cards?skip=20", "/cards?skip=20"},
		{"https://evil.example/", "/tokens"},
		{"//evil.example/", "/tokens"},
		{"/\\evil.example/", "/tokens"},
		{"cards", "/tokens"},
	}

	for _, tt := range tests {
		r := postForm("/tokens/1/delete", url.Values{"next": {tt.next}})
		assert.Equal(t, tt.want, safeNext(r, "/tokens"), tt.next)
	}
}

func TestFlash(t *testing.T) {
	t.Run("round trip clears the cookie", func(t *testing.T) {
		set := httptest.NewRecorder()
		setFlash(set, flashSuccess, "Saved | 100% done")
		c := cookie(set, flashCookie)
		require.NotNil(t, c)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		rec := httptest.NewRecorder()
		f := takeFlash(rec, r)
		require.NotNil(t, f)
		assert.Equal(t, flashSuccess, f.Kind)
		assert.Equal(t, "Saved | 100% done", f.Message)

		cleared := cookie(rec, flashCookie)
		require.NotNil(t, cleared)
		assert.Less(t, cleared.MaxAge, 0)
	})

	t.Run("long messages are cut", func(t *testing.T) {
		set := httptest.NewRecorder()
		setFlash(set, flashError, strings.Repeat("x", 5000))
		c := cookie(set, flashCookie)
		require.NotNil(t, c)
		assert.Len(t, c.Value, maxFlashValue)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		f := takeFlash(httptest.NewRecorder(), r)
		require.NotNil(t, f)
		assert.Equal(t, strings.Repeat("x", maxFlashValue-len("error%7C")-3)+"...", f.Message)
	})

	t.Run("non-ASCII messages fit the cookie limit", func(t *testing.T) {
		message := strings.Repeat("Ошибка запроса ", 200)
		set := httptest.NewRecorder()
		setFlash(set, flashError, message)
		c := cookie(set, flashCookie)
		require.NotNil(t, c)
		assert.LessOrEqual(t, len(c.Value), maxFlashValue)
		assert.Less(t, len(set.Header().Get("Set-Cookie")), 4096)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		f := takeFlash(httptest.NewRecorder(), r)
		require.NotNil(t, f)
		assert.True(t, utf8.ValidString(f.Message))
		require.True(t, strings.HasSuffix(f.Message, "..."))
		kept := strings.TrimSuffix(f.Message, "...")
		assert.True(t, strings.HasPrefix(message, kept))
		assert.Greater(t, len([]rune(kept)), 300)
	})

	t.Run("short non-ASCII messages are kept whole", func(t *testing.T) {
		set := httptest.NewRecorder()
		setFlash(set, flashSuccess, "Выберите токен")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookie(set, flashCookie))
		f := takeFlash(httptest.NewRecorder(), r)
		require.NotNil(t, f)
		assert.Equal(t, "Выберите токен", f.Message)
	})

	t.Run("unknown kinds read as errors", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: flashCookie, Value: url.QueryEscape("weird|boom")})
		f := takeFlash(httptest.NewRecorder(), r)
		require.NotNil(t, f)
		assert.Equal(t, flashError, f.Kind)
	})

	t.Run("absent or malformed", func(t *testing.T) {
		assert.Nil(t, takeFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: flashCookie, Value: "no-separator"})
		assert.Nil(t, takeFlash(httptest.NewRecorder(), r))
	})
}

func TestFormReader(t *testing.T) {
	r := postForm("/x", url.Values{
		"name":   {"  Bitcoin "},
		"count":  {"12"},
		"supply": {""},
		"price":  {"0.000000012345678901"},
		"weight": {"2.5"},
		"active": {"true"},
	})
	f := newFormReader(r)

	assert.Equal(t, "Bitcoin", f.String("name"))
	assert.Equal(t, 12, f.Int("count"))
	assert.Nil(t, f.OptionalInt("supply"))
	assert.True(t, decimal.RequireFromString("0.000000012345678901").Equal(f.Decimal("price")), "decimals keep full precision")
	require.NotNil(t, f.OptionalFloat("weight"))
	assert.Equal(t, 2.5, *f.OptionalFloat("weight"))
	assert.True(t, f.Bool("active"))
	assert.False(t, f.Bool("missing"))
	assert.NoError(t, f.Err())

	bad := newFormReader(postForm("/x", url.Values{"count": {"twelve"}, "id": {"x"}}))
	assert.Zero(t, bad.Int("count"))
	assert.Zero(t, bad.Int64("id"))
	require.Error(t, bad.Err())
	assert.Contains(t, bad.Err().Error(), "count", "the first failure is kept")
}

func TestValidateInput(t *testing.T) {
	err := validateInput(models.CardInput{TokenID: 1})
	require.Error(t, err)
	cat := apperrors.Categorize(err)
	require.NotNil(t, cat)
	assert.Equal(t, "MISSING_FIELD", cat.Code)
	assert.Equal(t, "rarity_id is required", cat.Message)

	assert.NoError(t, validateInput(models.CardInput{TokenID: 1, RarityID: 2}))
}

func TestSelectField(t *testing.T) {
	opts := []optionView{{Value: "0", Label: "Select"}, {Value: "1", Label: "One"}}

	f := selectField("token_id", "Token", "1", opts)
	require.Len(t, f.Options, 2)
	assert.False(t, f.Options[0].Selected)
	assert.True(t, f.Options[1].Selected)
	assert.False(t, opts[1].Selected, "the shared option list is not modified")

	f = selectField("token_id", "Token", "9", opts)
	require.Len(t, f.Options, 3)
	assert.Equal(t, optionView{Value: "9", Label: "#9", Selected: true}, f.Options[2])
}

func TestFormatNumber(t *testing.T) {
	var nilInt *int
	five := 5
	weight := 72.5

	assert.Equal(t, "", formatNumber(nil))
	assert.Equal(t, "", formatNumber(nilInt))
	assert.Equal(t, "5", formatNumber(&five))
	assert.Equal(t, "72.5", formatNumber(&weight))
	assert.Equal(t, "42", formatNumber(int64(42)))
	assert.Equal(t, "1.5", formatNumber(decimal.RequireFromString("1.50")))
}

func TestLoginLimiter(t *testing.T) {
	l := NewLoginLimiter(1, 2)

	a := httptest.NewRequest(http.MethodPost, "/login", nil)
	a.RemoteAddr = "10.0.0.1:5000"
	b := httptest.NewRequest(http.MethodPost, "/login", nil)
	b.RemoteAddr = "10.0.0.2:5000"

	assert.True(t, l.Allow(a))
	assert.True(t, l.Allow(a))
	assert.False(t, l.Allow(a), "burst exhausted")
	assert.True(t, l.Allow(b), "each address has its own bucket")

	unlimited := NewLoginLimiter(0, 0)
	for i := 0; i < 100; i++ {
		require.True(t, unlimited.Allow(a))
	}
}
