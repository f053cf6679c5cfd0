package google

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobdigest/internal/domain"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []domain.JobRecord
	}{
		{
			name: "no items key",
			body: `{"kind":"customsearch#search","searchInformation":{"totalResults":"0"}}`,
			want: []domain.JobRecord{},
		},
		{
			name: "empty items",
			body: `{"items":[]}`,
			want: []domain.JobRecord{},
		},
		{
			name: "items not an array",
			body: `{"items":{"title":"x"}}`,
			want: []domain.JobRecord{},
		},
		{
			name: "full and partial items keep order",
			body: `{"items":[
				{"title":"Cloud Engineer","link":"https://x.com/1","snippet":"AWS, Chennai"},
				{"title":"Junior SRE","link":"https://x.com/2"},
				{"link":"https://x.com/3","snippet":null},
				{"title":"No link"}
			]}`,
			want: []domain.JobRecord{
				{Title: "Cloud Engineer", URL: "https://x.com/1", Snippet: "AWS, Chennai"},
				{Title: "Junior SRE", URL: "https://x.com/2"},
				{URL: "https://x.com/3"},
				{Title: "No link"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract([]byte(tt.body))
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}
