package outreach

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/joenewbry/prospector/pkg/prospect"
	"github.com/joenewbry/prospector/pkg/scoring"
)

const (
	memexGitHub   = "https://github.com/joenewbry/memex"
	openArcadeURL = "https://arcade.digitalsurfacelabs.com"
	senderName    = "Joe"
	senderEmail   = "joenewbry@gmail.com"
)

// Generator produces a personalized outreach message by researching the
// prospect first. An optional LLM pass can rewrite the template draft.
type Generator struct {
	lookup *Lookup
	llm    *LLM
}

// NewGenerator creates an outreach generator. llm may be nil.
func NewGenerator(lookup *Lookup, llm *LLM) *Generator {
	return &Generator{lookup: lookup, llm: llm}
}

// Generate researches the prospect and composes a message for the
// campaign. The returned deep profile records what the research found.
func (g *Generator) Generate(ctx context.Context, p *prospect.Prospect, campaign string) (string, *DeepProfile, error) {
	deep := g.lookup.Research(ctx, p)

	var message string
	if scoring.NormalizeCampaign(campaign) == scoring.CampaignOpenArcade {
		message = composeOpenArcade(p, deep)
	} else {
		message = composeDefault(p, deep)
	}

	if g.llm != nil {
		polished, err := g.llm.Polish(ctx, p, message)
		if err == nil && polished != "" {
			message = polished
		}
	}

	return message, deep, nil
}

func composeDefault(p *prospect.Prospect, deep *DeepProfile) string {
	// Bootcamp partnership outreach is completely different.
	if p.Source == prospect.SourceBootcamps {
		return composeBootcamp(p)
	}

	name := firstName(p)
	story := sourceStory(p)
	hook := findHook(p, deep)

	if deep.IsSenior {
		return composeSenior(name, story, hook, p.Category)
	}
	return composeStandard(name, story, hook, p.Category)
}

func firstName(p *prospect.Prospect) string {
	name := p.DisplayName
	if name == "" {
		name = p.Username
	}
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[0]
}

func rawString(p *prospect.Prospect, key string) string {
	s, _ := p.RawData[key].(string)
	return s
}

func sourceStory(p *prospect.Prospect) string {
	query := rawString(p, "query_matched")
	thread := rawString(p, "thread_title")

	switch p.Source {
	case prospect.SourceGitHub:
		if query != "" {
			return fmt.Sprintf("found your GitHub profile searching for %q", query)
		}
		return "came across your GitHub profile"
	case prospect.SourceHackerNews:
		if thread != "" {
			return fmt.Sprintf("saw your post in the HN %q thread", thread)
		}
		return "found your post in a Hacker News hiring thread"
	case prospect.SourceTwitter:
		if query != "" {
			return fmt.Sprintf("found you via a search for %q on X", query)
		}
		return "came across your post on X"
	case prospect.SourceRSS:
		if title := rawString(p, "post_title"); title != "" {
			return fmt.Sprintf("read your post %q", title)
		}
		return "came across your writing"
	}
	return "found your profile"
}

// findHook picks the most interesting specific thing to mention.
func findHook(p *prospect.Prospect, deep *DeepProfile) string {
	var best *Repo
	for i := range deep.TopRepos {
		r := &deep.TopRepos[i]
		if r.Stars > 0 && (best == nil || r.Stars > best.Stars) {
			best = r
		}
	}
	if best != nil {
		lang := best.Language
		if lang == "" {
			lang = "project"
		}
		desc := ""
		if best.Description != "" {
			desc = " (" + best.Description + ")"
		}
		return fmt.Sprintf("your %s repo %q%s caught my eye", lang, best.Name, desc)
	}

	if deep.Activity != nil && len(deep.Activity.ActiveRepos) > 0 {
		repo := deep.Activity.ActiveRepos[0]
		if idx := strings.LastIndex(repo, "/"); idx >= 0 {
			repo = repo[idx+1:]
		}
		return "I can see you've been actively working on " + repo
	}

	if deep.HN != nil && deep.HN.Karma > 1000 {
		return fmt.Sprintf("with %d karma on HN you clearly have deep community credibility", deep.HN.Karma)
	}

	if len(p.Bio) > 20 {
		bioLower := strings.ToLower(p.Bio)
		for _, marker := range []string{"building", "working on", "created", "shipped", "launched"} {
			if idx := strings.Index(bioLower, marker); idx >= 0 {
				snippet := p.Bio[idx:]
				if len(snippet) > 80 {
					snippet = snippet[:80]
				}
				snippet = strings.SplitN(strings.SplitN(snippet, ".", 2)[0], ",", 2)[0]
				return "saw that you're " + lowerFirst(snippet)
			}
		}
	}

	if deep.GitHub != nil && deep.GitHub.Location != "" {
		return "saw you're based in " + deep.GitHub.Location
	}
	return ""
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// Senior variant asks for advice and references experience.
func composeSenior(name, story, hook, category string) string {
	hookLine := ""
	if hook != "" {
		hookLine = " — " + hook
	}
	return strings.TrimSpace(fmt.Sprintf(`Hey %s,

I %s%s.

I'm building Memex (%s) — continuous screen history that acts as a verifiable trust layer for knowledge workers. Think proof-of-work for everything that happens between git commits.

Given your background, I'd genuinely value your perspective: %s

— %s`, name, story, hookLine, memexGitHub, seniorQuestion(category), senderName))
}

// Standard variant mentions specifics, explains relevance, asks one question.
func composeStandard(name, story, hook, category string) string {
	hookLine := ""
	if hook != "" {
		hookLine = " — " + hook
	}
	return strings.TrimSpace(fmt.Sprintf(`Hey %s,

I %s%s.

I'm building Memex (%s) — continuous screen history as a verifiable trust layer. %s

%s

— %s`, name, story, hookLine, memexGitHub, categoryRelevance(category), standardQuestion(category), senderName))
}

var relevanceByCategory = map[string]string{
	"Self-Taught Developer": "For self-taught devs, it's the credential that doesn't exist yet — proof of what you actually build, every day.",
	"Career Changer":        "For career changers, it bridges the credibility gap — showing your learning velocity and real problem-solving instead of a missing CS degree.",
	"Build in Public":       "For builders in public, it's the difference between curated updates and a continuous, verifiable record of what you actually ship.",
	"AI/Prompt Engineer":    "For AI-native roles where there's no standard credential yet, it captures your actual workflow with LLMs as proof of expertise.",
	"Bootcamp Graduate":     "For bootcamp grads competing against CS degrees, it levels the field by showing how you actually think through problems.",
	"Recently Laid Off":     "It lets you carry a verifiable record of your engineering work between jobs — better than resume bullets or reference calls.",
	"Freelancer":            "For freelancers, it replaces the slow trust-building of reviews and portfolios with immediate proof of how you work.",
	"OSS Contributor":       "For maintainers, it captures the 90% of work that isn't in the commit log — triaging, debugging, code review, research.",
	"Junior Developer":      "For early-career devs, it's a way to stand out by showing your actual problem-solving process, not just finished projects.",
	"Job Seeker":            "It gives job seekers a verifiable record of what they actually do — stronger than any resume claim.",
}

func categoryRelevance(category string) string {
	if r, ok := relevanceByCategory[category]; ok {
		return r
	}
	return "It creates a verifiable record of your actual work — stronger than any resume or portfolio."
}

var seniorQuestions = map[string]string{
	"Senior Developer":   "what would have convinced you to adopt something like this at a previous team?",
	"Recently Laid Off":  "when you think about proving your impact at your last role, what evidence do you wish you had?",
	"Build in Public":    "do you think verifiable screen history would make build-in-public more credible, or would it kill the curated narrative that works?",
	"AI/Prompt Engineer": "how do you think AI-native roles should credential themselves when the field is moving this fast?",
	"Freelancer":         "what's the single biggest trust barrier you face with new clients, and would process transparency help or hurt?",
	"OSS Contributor":    "if sponsors could see your full maintenance effort (not just commits), would that change the funding conversation?",
}

func seniorQuestion(category string) string {
	if q, ok := seniorQuestions[category]; ok {
		return q
	}
	return "what's the biggest trust gap you see in how technical work gets evaluated today?"
}

var standardQuestions = map[string]string{
	"Self-Taught Developer": "Would a verifiable record of your daily coding help your job search, or do employers not care about process?",
	"Career Changer":        "When you're applying, what's the hardest part of proving you can actually build things?",
	"Build in Public":       "Would you share continuous screen history with your audience, or is the curated version more valuable?",
	"AI/Prompt Engineer":    "How do you currently prove your AI expertise to potential clients or employers?",
	"Bootcamp Graduate":     "What's been the biggest barrier in your job search — skills, credibility, or something else?",
	"Recently Laid Off":     "In your current search, what would help you stand out faster?",
	"Freelancer":            "What do you currently show new clients to build trust before they've worked with you?",
	"OSS Contributor":       "If you could show sponsors the full picture of your maintenance work, would it change things?",
	"Junior Developer":      "What's the hardest part of proving what you can do with limited professional experience?",
	"Job Seeker":            "What would make the biggest difference in your job search right now?",
	"100DaysOfCode":         "Would a verifiable record of your daily progress be useful beyond just the tweets?",
}

func standardQuestion(category string) string {
	if q, ok := standardQuestions[category]; ok {
		return q
	}
	return "Would a verifiable record of your actual work process be useful to you?"
}

func composeBootcamp(p *prospect.Prospect) string {
	name := p.DisplayName
	contactRole := rawString(p, "contact_role")
	if contactRole == "" {
		contactRole = "the team"
	}
	pitch := rawString(p, "pitch_angle")
	size := rawString(p, "size")
	locations := rawString(p, "locations")

	var programs string
	if list, ok := p.RawData["programs"].([]any); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		programs = strings.Join(parts, ", ")
	} else if list, ok := p.RawData["programs"].([]string); ok {
		programs = strings.Join(list, ", ")
	}

	return strings.TrimSpace(fmt.Sprintf(`Hi,

I'm reaching out to the %s at %s. I'm building Memex (%s) — open source continuous screen history — and I'd like to offer it completely free to all %s students.

Here's why I think it's a fit for %s specifically: %s.

The idea is simple — students run Memex during their %s coursework, and it creates a verifiable, timestamped record of their entire learning journey. After graduation, instead of just a certificate and a portfolio, they have proof of how they actually work: debugging sessions, design decisions, the messy real process that employers want to see.

For %s (%s, %s), this could be a differentiator for your graduates in a competitive market.

Would you be open to a 15-minute call to see if this makes sense as a student tool?

— %s
%s
%s`, contactRole, name, memexGitHub, name, name, pitch, programs, name, size, locations, senderName, senderEmail, memexGitHub))
}

func composeOpenArcade(p *prospect.Prospect, deep *DeepProfile) string {
	if p.Source == prospect.SourceGaming {
		return composeGamingPlatform(p)
	}
	return composeGamingIndividual(p, deep)
}

func composeGamingIndividual(p *prospect.Prospect, deep *DeepProfile) string {
	name := firstName(p)
	story := gamingSourceStory(p)
	hook := findGamingHook(p, deep)

	hookLine := ""
	if hook != "" {
		hookLine = "\n" + hook + "."
	}

	return strings.TrimSpace(fmt.Sprintf(`Hey %s,

I %s.%s

I built OpenArcade (%s) — 100+ free browser arcade games. Pac-Man, Tetris, Space Invaders, plus modern indie games and remixes. No login, no ads, just play.

%s

— %s`, name, story, hookLine, openArcadeURL, gamingQuestion(p.Category), senderName))
}

func composeGamingPlatform(p *prospect.Prospect) string {
	contactRole := rawString(p, "contact_role")
	if contactRole == "" {
		contactRole = "the team"
	}

	return strings.TrimSpace(fmt.Sprintf(`Hi %s at %s,

I built OpenArcade — a free browser arcade with 100+ games including classic arcade, indie, puzzle, racing, and remixes. All playable instantly in-browser, no downloads or login required.

%s

Would you be open to featuring it or adding it to your directory?

— %s
%s`, contactRole, p.DisplayName, rawString(p, "pitch_angle"), senderName, openArcadeURL))
}

func gamingSourceStory(p *prospect.Prospect) string {
	query := rawString(p, "query_matched")

	switch p.Source {
	case prospect.SourceGitHub:
		if query != "" {
			return fmt.Sprintf("found your GitHub profile searching for %q", query)
		}
		return "came across your GitHub profile"
	case prospect.SourceHackerNews:
		if title := rawString(p, "story_title"); title != "" {
			return fmt.Sprintf("saw your HN post %q", title)
		}
		return "found your post on Hacker News"
	case prospect.SourceTwitter:
		if query != "" {
			return fmt.Sprintf("found you via %q on X", query)
		}
		return "came across your post on X"
	}
	return "found your profile"
}

var gamingRepoKeywords = []string{"game", "arcade", "retro", "pixel", "phaser"}

func findGamingHook(p *prospect.Prospect, deep *DeepProfile) string {
	for _, r := range deep.TopRepos {
		text := strings.ToLower(r.Name + " " + r.Description)
		for _, kw := range gamingRepoKeywords {
			if strings.Contains(text, kw) {
				desc := ""
				if r.Description != "" {
					desc = " (" + r.Description + ")"
				}
				return fmt.Sprintf("Your repo %q%s caught my eye", r.Name, desc)
			}
		}
	}

	if title := rawString(p, "story_title"); title != "" && strings.Contains(strings.ToLower(title), "game") {
		return fmt.Sprintf("Your post about %q resonated", title)
	}

	if len(p.Bio) > 20 {
		bioLower := strings.ToLower(p.Bio)
		for _, marker := range []string{"review", "stream", "play", "retro", "arcade", "classic", "pixel"} {
			if strings.Contains(bioLower, marker) {
				return "Love that you're into " + marker + " gaming"
			}
		}
	}
	return ""
}

var gamingQuestions = map[string]string{
	"Gaming YouTuber":         "Would your audience be into a video showcasing 100+ free browser arcade games? I think it'd make great content.",
	"Retro Gaming Streamer":   "Would you be up for streaming some of these classics? I'd love to see your take on the retro collection.",
	"Game Reviewer":           "Would you be interested in reviewing the collection? I'd love honest feedback on the game selection.",
	"Gaming Content Creator":  "Would a feature on 100+ free browser arcade games fit your content? Happy to give you anything you need for a write-up.",
	"Browser Game Enthusiast": "What classic games do you think are missing? I'm always looking to expand the collection.",
	"Retro Enthusiast":        "What classic arcade games do you think every collection needs? I want to make sure the essentials are covered.",
	"Game Developer":          "As a game dev, what would make you want to contribute a game to a free arcade collection like this?",
	"Indie Game Dev":          "Would you be interested in having one of your games featured in the arcade? Always looking for cool indie titles.",
	"Game Jam Participant":    "Would you want to submit any of your jam games to the arcade? Great way to get more eyes on them.",
}

func gamingQuestion(category string) string {
	if q, ok := gamingQuestions[category]; ok {
		return q
	}
	return "What do you think — would you play these? I'd love your honest take."
}
