package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderName_Valid(t *testing.T) {
	tests := []struct {
		name     string
		provider ProviderName
		expected bool
	}{
		{"manual", ProviderManual, true},
		{"github", ProviderGitHub, true},
		{"google", ProviderGoogle, true},
		{"notion", ProviderNotion, true},
		{"empty", ProviderName(""), false},
		{"unknown", ProviderName("dropbox"), false},
		{"wrong case", ProviderName("GitHub"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.Valid())
		})
	}
}

func TestProviders_AllValid(t *testing.T) {
	providers := Providers()

	assert.Len(t, providers, 4)
	for _, p := range providers {
		assert.True(t, p.Valid(), "provider %q should be valid", p)
	}
}

func TestContentKind_Valid(t *testing.T) {
	for _, k := range ContentKinds() {
		assert.True(t, k.Valid(), "kind %q should be valid", k)
	}
	assert.False(t, ContentKind("application/pdf").Valid())
	assert.False(t, ContentKind("").Valid())
}
