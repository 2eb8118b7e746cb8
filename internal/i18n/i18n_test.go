//go:build !integration

package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-console/internal/errs"
	"github.com/stretchr/testify/assert"
)

func TestGetTranslator_Shared(t *testing.T) {
	assert.Same(t, GetTranslator(), GetTranslator())
	assert.Equal(t, []string{"en", "nl", "pt"}, GetTranslator().Locales())
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":       DefaultLocale,
		"  ":     DefaultLocale,
		"pt":     "pt",
		"pt-BR":  "pt",
		"NL_be":  "nl",
		" EN-us": "en",
		"fr":     "fr",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestTranslator_Translate(t *testing.T) {
	translator := NewTranslator()
	translator.messages["en"]["only.english"] = "English only"

	tests := []struct {
		name   string
		key    string
		locale string
		want   string
	}{
		{name: "portuguese", key: ValidationKey(errs.CodeAlreadyScanned), locale: "pt", want: "Este pedido já foi escaneado"},
		{name: "region tag", key: ErrKeyInvalidRequest, locale: "pt-BR", want: "Requisição inválida"},
		{name: "dutch", key: ErrKeyInvalidRequest, locale: "nl", want: "Ongeldig verzoek"},
		{name: "empty locale", key: ErrKeyInvalidRequest, locale: "", want: "Invalid request"},
		{name: "unsupported locale", key: ErrKeyInvalidRequest, locale: "fr", want: "Invalid request"},
		{name: "missing in locale falls back to english", key: "only.english", locale: "pt", want: "English only"},
		{name: "unknown key", key: "unknown.key", locale: "nl", want: "unknown.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translator.Translate(tt.key, tt.locale))
		})
	}
}

func TestGetLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "no header", header: "", want: DefaultLocale},
		{name: "plain tag", header: "nl", want: "nl"},
		{name: "region tag", header: "pt-BR", want: "pt"},
		{name: "uppercase", header: "PT", want: "pt"},
		{name: "first of equal weights", header: "nl, pt", want: "nl"},
		{name: "highest q wins", header: "en;q=0.5, pt;q=0.9", want: "pt"},
		{name: "unsupported first", header: "fr-FR,fr;q=0.9,nl;q=0.8", want: "nl"},
		{name: "nothing supported", header: "fr, de;q=0.7", want: DefaultLocale},
		{name: "q zero excluded", header: "pt;q=0", want: DefaultLocale},
		{name: "malformed q skipped", header: "pt;q=abc, nl;q=0.2", want: "nl"},
		{name: "wildcard", header: "*", want: DefaultLocale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set(AcceptLanguageHeader, tt.header)
			}

			assert.Equal(t, tt.want, GetLocale(c))
		})
	}
}

func TestLocalize(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/shipping/confirm", nil)
	c.Request.Header.Set(AcceptLanguageHeader, "nl-NL,en;q=0.8")

	assert.Equal(t, GetTranslator().Translate(ErrKeyTimeout, "nl"), Localize(c, ErrKeyTimeout))
	assert.NotEqual(t, GetTranslator().Translate(ErrKeyTimeout, "en"), Localize(c, ErrKeyTimeout))
}

func TestMessageSets_Complete(t *testing.T) {
	codes := []string{
		errs.CodeAllocationIncomplete,
		errs.CodeOrderNotFound,
		errs.CodeAlreadyScanned,
		errs.CodeOrderNotScanned,
		errs.CodeTrackingNotReady,
		errs.CodeTrackingIndexOutOfRange,
		errs.CodePackageNotFound,
		errs.CodePackageNotAllowed,
		errs.CodeSKUNotFound,
		errs.CodeQuantityOutOfRange,
		errs.CodeInvalidCost,
		errs.CodeInvalidCourier,
		errs.CodeInvalidService,
		errs.CodeServiceRequired,
		errs.CodeBatchNotLoaded,
	}
	translator := NewTranslator()

	for key := range translator.messages[DefaultLocale] {
		for _, locale := range []string{"pt", "nl"} {
			assert.Contains(t, translator.messages[locale], key, "%s missing in %s", key, locale)
		}
	}
	for _, code := range codes {
		key := ValidationKey(code)
		assert.Contains(t, translator.messages[DefaultLocale], key)
	}
}
