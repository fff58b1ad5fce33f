package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc", PlatformLever},
		{"https://www.naukri.com/job-listings-data-analyst-123", PlatformNaukri},
		{"https://internshala.com/internship/detail/web-dev", PlatformInternshala},
		{"https://www.linkedin.com/jobs/view/42", PlatformLinkedIn},
		{"https://notlever.com/jobs", PlatformUnknown},
		{"https://example.com/careers", PlatformUnknown},
		{"::bad", PlatformUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestContentSelectors(t *testing.T) {
	naukri := ContentSelectors(PlatformNaukri)
	assert.Equal(t, ".job-desc", naukri[0])
	assert.Contains(t, naukri, ".job-description", "generic selectors follow the platform ones")

	assert.Equal(t, JobPostingSelectors(), ContentSelectors(PlatformUnknown))
}

func TestNoiseSelectors(t *testing.T) {
	lever := NoiseSelectors(PlatformLever)
	assert.Contains(t, lever, "form")
	assert.Contains(t, lever, ".posting-apply")

	assert.Equal(t, commonNoise, NoiseSelectors(PlatformUnknown))
}
