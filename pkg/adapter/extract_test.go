package adapter

import (
	"reflect"
	"strings"
	"testing"
)

func TestBioSignals(t *testing.T) {
	tests := []struct {
		name string
		bio  string
		want []string
	}{
		{
			name: "seeking phrases",
			bio:  "Self-taught dev, open to junior roles, freelance on the side",
			want: []string{"bio_mentions_open_to", "freelance_available", "self_taught", "junior_level"},
		},
		{
			name: "tech keywords",
			bio:  "Python and TypeScript, dabbling in machine learning",
			want: []string{"tech_python", "tech_typescript", "tech_machine_learning"},
		},
		{
			name: "hashtags",
			bio:  "Day 12 of #100DaysOfCode, everything #buildinpublic",
			want: []string{"build_in_public", "100_days_of_code"},
		},
		{
			name: "empty bio",
			bio:  "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BioSignals(tt.bio)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BioSignals(%q) = %v, want %v", tt.bio, got, tt.want)
			}
		})
	}
}

func TestBioSignalsWordBoundaries(t *testing.T) {
	// "go " and "ai " carry trailing spaces so "going" and "maintain"
	// do not light up tech signals.
	got := BioSignals("going to maintain my streak")
	for _, s := range got {
		if s == "tech_go" || s == "tech_ai" {
			t.Errorf("false positive signal %q from %v", s, got)
		}
	}
}

func TestGamingSignals(t *testing.T) {
	got := GamingSignals("Retro arcade streamer making a pixel platformer")
	want := []string{
		"gaming_interest_arcade", "gaming_interest_retro",
		"gaming_interest_pixel", "gaming_interest_streamer",
	}
	for _, w := range want {
		if !hasSignal(got, w) {
			t.Errorf("missing %q in %v", w, got)
		}
	}
}

func TestContactURLs(t *testing.T) {
	text := `Resume: https://example.dev/cv.pdf, code at https://github.com/alice,
	profile https://www.linkedin.com/in/alice`

	github, linkedin, website := ContactURLs(text)
	if !strings.Contains(github, "github.com/alice") {
		t.Errorf("github = %q", github)
	}
	if !strings.Contains(linkedin, "linkedin.com/in/alice") {
		t.Errorf("linkedin = %q", linkedin)
	}
	if !strings.Contains(website, "example.dev") {
		t.Errorf("website = %q", website)
	}
}

func TestContactURLsNone(t *testing.T) {
	github, linkedin, website := ContactURLs("no links here")
	if github != "" || linkedin != "" || website != "" {
		t.Errorf("expected empty URLs, got %q %q %q", github, linkedin, website)
	}
}

func TestCleanBio(t *testing.T) {
	in := "<p>Hello   <b>world</b></p>\n\nmore   text"
	got := CleanBio(in, 0)
	if got != "Hello world more text" {
		t.Errorf("CleanBio = %q", got)
	}

	long := CleanBio("aaaaaaaaaa", 4)
	if long != "aaaa..." {
		t.Errorf("truncated = %q", long)
	}
}

func TestCategorizeDefault(t *testing.T) {
	tests := []struct {
		bio     string
		signals []string
		query   string
		want    string
	}{
		{"flatiron bootcamp grad", nil, "", "Bootcamp Graduate"},
		{"", []string{"self_taught"}, "", "Self-Taught Developer"},
		{"", []string{"career_changer"}, "", "Career Changer"},
		{"day 45 of 100daysofcode", nil, "", "100DaysOfCode"},
		{"", []string{"build_in_public"}, "", "Build in Public"},
		{"", nil, "prompt engineer seeking", "AI/Prompt Engineer"},
		{"", []string{"bio_mentions_laid_off"}, "", "Recently Laid Off"},
		{"", []string{"hireable_flag"}, "", "Job Seeker"},
		{"", nil, "", "Developer"},
	}
	for _, tt := range tests {
		if got := categorizeDefault(tt.bio, tt.signals, tt.query); got != tt.want {
			t.Errorf("categorizeDefault(%q, %v, %q) = %q, want %q",
				tt.bio, tt.signals, tt.query, got, tt.want)
		}
	}
}

func TestCategorizeGaming(t *testing.T) {
	tests := []struct {
		signals []string
		query   string
		want    string
	}{
		{[]string{"gaming_interest_youtuber"}, "", "Gaming YouTuber"},
		{[]string{"gaming_interest_twitch"}, "", "Retro Gaming Streamer"},
		{[]string{"gaming_interest_reviewer"}, "", "Game Reviewer"},
		{[]string{"gaming_interest_retro"}, "", "Retro Enthusiast"},
		{nil, "game jam", "Game Jam Participant"},
		{nil, "", "Game Developer"},
	}
	for _, tt := range tests {
		if got := categorizeGaming(tt.signals, tt.query); got != tt.want {
			t.Errorf("categorizeGaming(%v, %q) = %q, want %q", tt.signals, tt.query, got, tt.want)
		}
	}
}

func TestStaticAdapters(t *testing.T) {
	ctx := t.Context()

	bc, err := NewBootcamps().Fetch(ctx, "memex")
	if err != nil {
		t.Fatalf("bootcamps fetch: %v", err)
	}
	if len(bc) != len(bootcampTargets) {
		t.Errorf("bootcamps = %d prospects, want %d", len(bc), len(bootcampTargets))
	}
	for _, p := range bc {
		if p.Category != "Bootcamp Partnership" {
			t.Errorf("%s category = %q", p.Username, p.Category)
		}
		if !hasSignal(p.Signals, "bootcamp_org") {
			t.Errorf("%s missing bootcamp_org signal", p.Username)
		}
	}

	gp, err := NewGamingPlatforms().Fetch(ctx, "openarcade")
	if err != nil {
		t.Fatalf("gaming platforms fetch: %v", err)
	}
	if len(gp) != len(gamingPlatformTargets) {
		t.Errorf("gaming platforms = %d prospects, want %d", len(gp), len(gamingPlatformTargets))
	}
	for _, p := range gp {
		if !hasSignal(p.Signals, "gaming_submission_target") {
			t.Errorf("%s missing gaming_submission_target signal", p.Username)
		}
	}
}

func TestTwitterMockFallback(t *testing.T) {
	tw := NewTwitter("", nil, 0)

	devs, err := tw.Fetch(t.Context(), "memex")
	if err != nil {
		t.Fatalf("mock fetch: %v", err)
	}
	if len(devs) != len(developerMocks) {
		t.Errorf("got %d mock prospects, want %d", len(devs), len(developerMocks))
	}

	gaming, err := tw.Fetch(t.Context(), "openarcade")
	if err != nil {
		t.Fatalf("gaming mock fetch: %v", err)
	}
	if len(gaming) != len(gamingMocks) {
		t.Errorf("got %d gaming mocks, want %d", len(gaming), len(gamingMocks))
	}
	if gaming[0].Category != "Gaming YouTuber" {
		t.Errorf("first gaming mock category = %q", gaming[0].Category)
	}
	for _, p := range gaming {
		if p.RawData["is_mock"] != true {
			t.Errorf("%s missing is_mock marker", p.Username)
		}
	}
}
