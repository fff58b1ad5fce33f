package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board whose markup we know.
type Platform string

const (
	PlatformGreenhouse  Platform = "greenhouse"
	PlatformLever       Platform = "lever"
	PlatformNaukri      Platform = "naukri"
	PlatformInternshala Platform = "internshala"
	PlatformLinkedIn    Platform = "linkedin"
	PlatformUnknown     Platform = "unknown"
)

type platformRule struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var platformRules = []platformRule{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#application"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".posting-description", ".content"},
		noise:    []string{".posting-apply", ".apply-section"},
	},
	{
		platform: PlatformNaukri,
		hosts:    []string{"naukri.com"},
		content:  []string{".job-desc", "[class*='job-desc']", "section.job-details"},
		noise:    []string{".apply-button-container", ".similar-jobs"},
	},
	{
		platform: PlatformInternshala,
		hosts:    []string{"internshala.com"},
		content:  []string{".internship_details", ".detail_view", "#details_container"},
		noise:    []string{".apply_now_button", ".similar_internships_container"},
	},
	{
		platform: PlatformLinkedIn,
		hosts:    []string{"linkedin.com"},
		content:  []string{".show-more-less-html__markup", ".description__text", ".jobs-description"},
		noise:    []string{".sign-up-modal", ".contextual-sign-in-modal"},
	},
}

// commonNoise is dropped on every job board
var commonNoise = []string{
	"form",
	".application-form",
	".apply-button-container",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".eeo-statement",
}

// DetectPlatform identifies the job board from a URL's host.
func DetectPlatform(rawURL string) Platform {
	rule := ruleFor(rawURL)
	if rule == nil {
		return PlatformUnknown
	}
	return rule.platform
}

// ContentSelectors returns where to look for the posting body on p,
// followed by the generic job posting selectors.
func ContentSelectors(p Platform) []string {
	for _, rule := range platformRules {
		if rule.platform == p {
			return append(append([]string{}, rule.content...), JobPostingSelectors()...)
		}
	}
	return JobPostingSelectors()
}

// NoiseSelectors returns elements to strip from pages on p.
func NoiseSelectors(p Platform) []string {
	out := append([]string{}, commonNoise...)
	for _, rule := range platformRules {
		if rule.platform == p {
			out = append(out, rule.noise...)
		}
	}
	return out
}

func ruleFor(rawURL string) *platformRule {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	for i := range platformRules {
		for _, h := range platformRules[i].hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return &platformRules[i]
			}
		}
	}
	return nil
}
