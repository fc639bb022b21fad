package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticle_Validate(t *testing.T) {
	tests := []struct {
		name      string
		article   Article
		wantField string
	}{
		{
			name:    "title and url present",
			article: Article{Title: "Go 1.25 released", URL: "https://go.dev/blog/go1.25"},
		},
		{
			name:    "optional fields may be empty",
			article: Article{Title: "A", URL: "http://x/1", Description: "", Source: "", PublishedAt: ""},
		},
		{
			name:      "missing title",
			article:   Article{URL: "http://x/3"},
			wantField: "title",
		},
		{
			name:      "missing url",
			article:   Article{Title: "No link"},
			wantField: "url",
		},
		{
			name:      "missing both reports title first",
			article:   Article{},
			wantField: "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.article.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}
