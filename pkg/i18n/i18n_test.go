package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   Locale
	}{
		{"", LocaleKo},
		{"ko", LocaleKo},
		{"ko-KR,ko;q=0.9,en-US;q=0.8", LocaleKo},
		{"en-US,en;q=0.9", LocaleEn},
		{"ja,en-US;q=0.7", LocaleJa},
		{"fr-FR,fr;q=0.9", LocaleKo}, // unsupported → fallback
		{"fr-FR,en;q=0.5", LocaleEn},
		{"ja-JP", LocaleJa},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAcceptLanguage(tt.header), tt.header)
	}
}

func TestDefaultBundle(t *testing.T) {
	b := Default()

	assert.Equal(t, "Entry not found", b.T(LocaleEn, "entry.not_found"))
	assert.Equal(t, "FAQ 를 찾을 수 없습니다", b.T(LocaleKo, "entry.not_found"))

	// ja 에 없는 키는 ko 로
	assert.Equal(t, "FAQ 목록을 불러오지 못했습니다", b.T(LocaleJa, "entry.list_failed"))

	assert.Equal(t, "unknown.key", b.T(LocaleEn, "unknown.key"))
	assert.Equal(t, "Too many requests. Retry in 30 seconds", b.T(LocaleEn, "error.too_many_requests", 30))
}

func TestBundle_LoadMessagesOverrides(t *testing.T) {
	b := NewBundle(LocaleEn)
	b.LoadMessages(LocaleEn, map[string]string{"a": "one", "b": "two"})
	b.LoadMessages(LocaleEn, map[string]string{"b": "deux"})

	assert.Equal(t, "one", b.T(LocaleEn, "a"))
	assert.Equal(t, "deux", b.T(LocaleEn, "b"))
	assert.Equal(t, "deux", b.T(LocaleKo, "b"))
}
