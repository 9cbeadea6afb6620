package adapter

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"']+`)
var tagPattern = regexp.MustCompile(`<[^>]+>`)
var spacePattern = regexp.MustCompile(`\s+`)

// seekingSignals maps bio phrases to the signal vocabulary the scorer
// understands. Matching is case-insensitive substring.
var seekingSignals = []struct {
	keyword string
	signal  string
}{
	{"open to", "bio_mentions_open_to"},
	{"looking for", "bio_mentions_looking_for"},
	{"seeking", "bio_mentions_seeking"},
	{"available", "bio_mentions_available"},
	{"laid off", "bio_mentions_laid_off"},
	{"freelance", "freelance_available"},
	{"self-taught", "self_taught"},
	{"bootcamp", "bootcamp_grad"},
	{"career change", "career_changer"},
	{"#buildinpublic", "build_in_public"},
	{"#100daysofcode", "100_days_of_code"},
	{"remote", "wants_remote"},
	{"senior", "senior_level"},
	{"junior", "junior_level"},
}

// Trailing space on "go " and "ai " avoids matching inside other words.
var techKeywords = []string{
	"python", "rust", "go ", "golang", "typescript", "react",
	"machine learning", "ai ", "llm", "kubernetes", "aws", "solidity",
}

var gamingKeywords = []string{
	"game", "arcade", "retro", "pixel", "phaser", "gamedev", "game jam",
	"game dev", "streamer", "youtuber", "youtube", "twitch", "reviewer", "gaming",
}

// BioSignals extracts seeking and tech signals from free-form profile text.
func BioSignals(text string) []string {
	var signals []string
	lower := strings.ToLower(text)

	for _, s := range seekingSignals {
		if strings.Contains(lower, s.keyword) {
			signals = append(signals, s.signal)
		}
	}
	for _, tech := range techKeywords {
		if strings.Contains(lower, tech) {
			signals = append(signals, "tech_"+strings.ReplaceAll(strings.TrimSpace(tech), " ", "_"))
		}
	}
	return signals
}

// GamingSignals extracts gaming interest signals for the openarcade campaign.
func GamingSignals(text string) []string {
	var signals []string
	lower := strings.ToLower(text)
	for _, kw := range gamingKeywords {
		if strings.Contains(lower, kw) {
			signals = append(signals, "gaming_interest_"+strings.ReplaceAll(kw, " ", "_"))
		}
	}
	return signals
}

// ContactURLs picks github, linkedin, and personal website URLs out of text.
// The website slot takes the first URL that is neither github nor linkedin.
func ContactURLs(text string) (github, linkedin, website string) {
	for _, u := range urlPattern.FindAllString(text, -1) {
		switch {
		case strings.Contains(u, "github.com"):
			if github == "" {
				github = u
			}
		case strings.Contains(u, "linkedin.com"):
			if linkedin == "" {
				linkedin = u
			}
		default:
			if website == "" {
				website = u
			}
		}
	}
	return github, linkedin, website
}

// CleanBio strips HTML tags, collapses whitespace, and caps length.
func CleanBio(text string, maxLen int) string {
	clean := tagPattern.ReplaceAllString(text, " ")
	clean = strings.TrimSpace(spacePattern.ReplaceAllString(clean, " "))
	if maxLen > 0 && len(clean) > maxLen {
		clean = clean[:maxLen] + "..."
	}
	return clean
}

func hasSignal(signals []string, name string) bool {
	for _, s := range signals {
		if s == name {
			return true
		}
	}
	return false
}

func hasSignalPrefix(signals []string, prefix string) bool {
	for _, s := range signals {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// categorizeDefault buckets a developer prospect for the default campaign.
func categorizeDefault(bio string, signals []string, query string) string {
	bioLower := strings.ToLower(bio)
	queryLower := strings.ToLower(query)

	switch {
	case strings.Contains(bioLower, "bootcamp") || strings.Contains(queryLower, "bootcamp"):
		return "Bootcamp Graduate"
	case hasSignal(signals, "self_taught") || strings.Contains(queryLower, "self-taught"):
		return "Self-Taught Developer"
	case hasSignal(signals, "career_changer") || strings.Contains(queryLower, "career change"):
		return "Career Changer"
	case strings.Contains(bioLower, "100daysofcode"):
		return "100DaysOfCode"
	case hasSignal(signals, "build_in_public"):
		return "Build in Public"
	case hasSignal(signals, "ai_prompt_engineer") || strings.Contains(queryLower, "prompt engineer"):
		return "AI/Prompt Engineer"
	case hasSignal(signals, "bio_mentions_laid_off"):
		return "Recently Laid Off"
	case hasSignal(signals, "freelance_available"):
		return "Freelancer"
	case hasSignal(signals, "hireable_flag"):
		return "Job Seeker"
	}
	return "Developer"
}

// categorizeGaming buckets a prospect for the openarcade campaign.
func categorizeGaming(signals []string, query string) string {
	switch {
	case hasSignalPrefix(signals, "gaming_interest_youtube"):
		return "Gaming YouTuber"
	case hasSignalPrefix(signals, "gaming_interest_streamer"), hasSignalPrefix(signals, "gaming_interest_twitch"):
		return "Retro Gaming Streamer"
	case hasSignalPrefix(signals, "gaming_interest_reviewer"):
		return "Game Reviewer"
	case hasSignalPrefix(signals, "gaming_interest_retro"), hasSignalPrefix(signals, "gaming_interest_arcade"):
		return "Retro Enthusiast"
	case strings.Contains(strings.ToLower(query), "game jam"), hasSignalPrefix(signals, "gaming_interest_game_jam"):
		return "Game Jam Participant"
	}
	return "Game Developer"
}
