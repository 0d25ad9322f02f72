package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocales(t *testing.T) {
	locales := NewLocales([]string{"en", "pt_BR", "zh-TW", "!!!"})
	assert.Equal(t, 3, locales.Supported())

	tests := []struct {
		code       string
		recognized bool
		canonical  string
	}{
		{code: "en", recognized: true, canonical: "en"},
		{code: "EN", recognized: true, canonical: "en"},
		{code: "pt_BR", recognized: true, canonical: "pt_BR"},
		{code: "pt-br", recognized: true, canonical: "pt_BR"},
		{code: " zh_tw ", recognized: true, canonical: "zh_TW"},
		{code: "fr", recognized: false, canonical: "fr"},
		{code: "pt", recognized: false, canonical: "pt"},
		{code: "", recognized: false, canonical: ""},
		{code: "xx-!!", recognized: false, canonical: "xx-!!"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.recognized, locales.IsRecognizedLocale(tt.code))
			assert.Equal(t, tt.canonical, locales.Canonicalize(tt.code))
		})
	}
}
