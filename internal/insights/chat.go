package insights

import "strings"

// ChatReply answers the dashboard assistant with a canned, keyword-based reply
func ChatReply(message string) string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "job"):
		return "Check the 'Job Recommendations' tab for AI-matched roles!"
	case strings.Contains(msg, "skill"):
		return "Updating your profile with new skills will improve your matches!"
	case strings.Contains(msg, "course"):
		return "We have courses tailored to your profile in the 'Courses' section."
	default:
		return "I can help with jobs, skills, or courses! Try asking 'What jobs are recommended?'"
	}
}
