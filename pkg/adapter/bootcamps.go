package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/joenewbry/prospector/pkg/prospect"
)

type bootcamp struct {
	name        string
	url         string
	programs    []string
	locations   string
	size        string
	contactRole string
	searchHint  string
	pitchAngle  string
}

// Curated list of active coding bootcamps with contact research targets.
var bootcampTargets = []bootcamp{
	{
		name:        "General Assembly",
		url:         "https://generalassemb.ly",
		programs:    []string{"Software Engineering", "Data Science", "UX Design"},
		locations:   "Global (remote + 20 cities)",
		size:        "35,000+ graduates",
		contactRole: "Director of Student Outcomes",
		searchHint:  "General Assembly Director Student Outcomes OR Career Services",
		pitchAngle:  "accountability during immersive + portfolio proof after graduation",
	},
	{
		name:        "Flatiron School",
		url:         "https://flatironschool.com",
		programs:    []string{"Software Engineering", "Data Science", "Cybersecurity", "Product Design"},
		locations:   "Remote + NYC, Denver, DC, Seattle",
		size:        "10,000+ graduates",
		contactRole: "VP of Education / Career Services Lead",
		searchHint:  "Flatiron School VP Education OR Career Services",
		pitchAngle:  "students document their learning journey as proof for employers",
	},
	{
		name:        "Hack Reactor (Galvanize)",
		url:         "https://www.hackreactor.com",
		programs:    []string{"Software Engineering Immersive"},
		locations:   "Remote + Austin, SF",
		size:        "15,000+ graduates",
		contactRole: "Head of Curriculum / Career Outcomes",
		searchHint:  "Hack Reactor Head Curriculum OR Outcomes",
		pitchAngle:  "verifiable coding hours during intensive 12-week program",
	},
	{
		name:        "App Academy",
		url:         "https://www.appacademy.io",
		programs:    []string{"Full-Stack Web Development"},
		locations:   "Remote + NYC, SF",
		size:        "8,000+ graduates",
		contactRole: "Director of Career Services",
		searchHint:  "App Academy Director Career Services",
		pitchAngle:  "income share model means outcomes matter, screen history proves job-readiness",
	},
	{
		name:        "Springboard",
		url:         "https://www.springboard.com",
		programs:    []string{"Software Engineering", "Data Science", "ML Engineering", "UX Design", "Cybersecurity"},
		locations:   "Fully Remote",
		size:        "20,000+ students",
		contactRole: "VP of Learning / Mentor Program Lead",
		searchHint:  "Springboard VP Learning OR Mentor Program",
		pitchAngle:  "mentor-guided learning, screen history shows mentors exactly where students struggle",
	},
	{
		name:        "Codecademy (Skillsoft)",
		url:         "https://www.codecademy.com",
		programs:    []string{"Full-Stack Engineer", "Data Scientist", "Computer Science"},
		locations:   "Fully Remote",
		size:        "50M+ users, career path cohorts ~5,000/year",
		contactRole: "Head of Enterprise / B2B Partnerships",
		searchHint:  "Codecademy Head Enterprise OR Partnerships",
		pitchAngle:  "Pro members completing career paths get verifiable proof beyond certificates",
	},
	{
		name:        "Lambda School / BloomTech",
		url:         "https://www.bloomtech.com",
		programs:    []string{"Full-Stack Web", "Data Science", "Backend"},
		locations:   "Fully Remote",
		size:        "3,000+ graduates",
		contactRole: "Head of Student Experience",
		searchHint:  "BloomTech Head Student Experience OR Outcomes",
		pitchAngle:  "ISA model, employers need trust in graduate quality and screen history provides it",
	},
	{
		name:        "Thinkful (Chegg Skills)",
		url:         "https://www.thinkful.com",
		programs:    []string{"Software Engineering", "Data Science", "Data Analytics", "UX/UI Design"},
		locations:   "Fully Remote",
		size:        "10,000+ graduates",
		contactRole: "Director of Student Success",
		searchHint:  "Thinkful Director Student Success",
		pitchAngle:  "1-on-1 mentoring sessions documented for both student and mentor review",
	},
	{
		name:        "Le Wagon",
		url:         "https://www.lewagon.com",
		programs:    []string{"Web Development", "Data Science", "Data Analytics"},
		locations:   "45+ cities globally (Berlin, London, Tokyo, etc.)",
		size:        "25,000+ alumni",
		contactRole: "Global Head of Education / City Manager",
		searchHint:  "Le Wagon Head Education OR Global Manager",
		pitchAngle:  "international bootcamp, screen history works in any language or country as proof",
	},
	{
		name:        "Ironhack",
		url:         "https://www.ironhack.com",
		programs:    []string{"Web Development", "UX/UI Design", "Data Analytics", "Cybersecurity"},
		locations:   "12 cities (Madrid, Barcelona, Miami, Berlin, etc.)",
		size:        "15,000+ alumni",
		contactRole: "Head of Outcomes / Career Services Director",
		searchHint:  "Ironhack Head Outcomes OR Career Services",
		pitchAngle:  "European market where bootcamp credentials face even more skepticism from employers",
	},
	{
		name:        "Fullstack Academy",
		url:         "https://www.fullstackacademy.com",
		programs:    []string{"Software Engineering", "Cybersecurity", "Data Analytics"},
		locations:   "Remote + NYC",
		size:        "5,000+ graduates",
		contactRole: "VP of Education / Career Success Lead",
		searchHint:  "Fullstack Academy VP Education OR Career",
		pitchAngle:  "Grace Hopper program for women, screen history addresses bias by showing pure work quality",
	},
	{
		name:        "Coding Dojo",
		url:         "https://www.codingdojo.com",
		programs:    []string{"Full-Stack Development (3 stacks)", "Data Science"},
		locations:   "Remote + Bellevue, Silicon Valley",
		size:        "12,000+ graduates",
		contactRole: "Director of Career Services",
		searchHint:  "Coding Dojo Director Career Services",
		pitchAngle:  "teaches 3 full stacks, screen history proves proficiency across all three",
	},
	{
		name:        "Turing School",
		url:         "https://turing.edu",
		programs:    []string{"Front-End Engineering", "Back-End Engineering", "Launch (beginner)"},
		locations:   "Fully Remote (Denver-based)",
		size:        "3,000+ graduates",
		contactRole: "Director of Professional Development",
		searchHint:  "Turing School Director Professional Development",
		pitchAngle:  "nonprofit mission-driven, screen history aligns with transparency and equity values",
	},
	{
		name:        "Nucamp",
		url:         "https://www.nucamp.co",
		programs:    []string{"Web Development", "Full Stack", "Back End with Python/SQL", "Cybersecurity"},
		locations:   "Fully Remote",
		size:        "affordable ($2,000), high volume, 10,000+ students",
		contactRole: "Head of Partnerships / Academic Director",
		searchHint:  "Nucamp Head Partnerships OR Academic Director",
		pitchAngle:  "most affordable major bootcamp, free tool adds premium value at no cost to students",
	},
	{
		name:        "Codesmith",
		url:         "https://www.codesmith.io",
		programs:    []string{"Software Engineering Immersive"},
		locations:   "Remote + LA, NYC",
		size:        "2,500+ graduates, highly selective",
		contactRole: "Head of Outcomes / Admissions Lead",
		searchHint:  "Codesmith Head Outcomes OR Admissions",
		pitchAngle:  "elite positioning, screen history proves the caliber matches the brand",
	},
	{
		name:        "Tech Elevator",
		url:         "https://www.techelevator.com",
		programs:    []string{"Java/C# Web Development"},
		locations:   "Remote + Cleveland, Columbus, Cincinnati, Pittsburgh, etc.",
		size:        "5,000+ graduates",
		contactRole: "VP of Pathway Programs / Employer Relations",
		searchHint:  "Tech Elevator VP Pathway Programs OR Employer Relations",
		pitchAngle:  "strong employer pipeline, screen history makes graduates more placeable",
	},
	{
		name:        "Makers Academy",
		url:         "https://makers.tech",
		programs:    []string{"Software Development", "DevOps", "Cloud Engineering"},
		locations:   "London + Remote (UK)",
		size:        "3,000+ graduates",
		contactRole: "Head of Education / Employer Partnerships",
		searchHint:  "Makers Academy Head Education OR Employer Partnerships",
		pitchAngle:  "UK market, screen history provides objective evidence for employers skeptical of bootcamps",
	},
	{
		name:        "4Geeks Academy",
		url:         "https://4geeksacademy.com",
		programs:    []string{"Full-Stack Development", "Data Science & ML"},
		locations:   "20+ locations (US, Latin America, Europe)",
		size:        "5,000+ graduates, lifetime career support",
		contactRole: "Head of Career Support / Regional Director",
		searchHint:  "4Geeks Academy Head Career Support",
		pitchAngle:  "lifetime career support commitment, screen history is a permanent credential students keep",
	},
	{
		name:        "Microverse",
		url:         "https://www.microverse.org",
		programs:    []string{"Full-Stack Web Development"},
		locations:   "Fully Remote (global, focus on developing countries)",
		size:        "5,000+ students from 100+ countries",
		contactRole: "Head of Curriculum / Partnerships Lead",
		searchHint:  "Microverse Head Curriculum OR Partnerships",
		pitchAngle:  "ISA model for global students, screen history proves competence regardless of credential",
	},
	{
		name:        "Scrimba",
		url:         "https://scrimba.com",
		programs:    []string{"Frontend Developer Career Path", "AI Engineer Path"},
		locations:   "Fully Remote (interactive screencasts)",
		size:        "1M+ users, bootcamp cohorts ~2,000/year",
		contactRole: "CEO / Head of Community",
		searchHint:  "Scrimba CEO Per Harald Borgen OR Head Community",
		pitchAngle:  "already screencast-native, screen history is a natural extension of interactive coding",
	},
}

// Bootcamps yields partnership prospects from a curated bootcamp list.
// No network access needed; the list is research-driven.
type Bootcamps struct{}

// NewBootcamps creates a new bootcamp adapter.
func NewBootcamps() *Bootcamps { return &Bootcamps{} }

func (b *Bootcamps) Name() prospect.Source { return prospect.SourceBootcamps }

func (b *Bootcamps) Description() string {
	return "Coding bootcamps to offer free access for students: accountability plus portfolio proof"
}

func (b *Bootcamps) Fetch(ctx context.Context, campaign string) ([]prospect.Prospect, error) {
	prospects := make([]prospect.Prospect, 0, len(bootcampTargets))
	for _, bc := range bootcampTargets {
		signals := []string{"bootcamp_org", "education_partner"}
		locLower := strings.ToLower(bc.locations)
		if strings.Contains(locLower, "remote") {
			signals = append(signals, "remote_program")
		}
		if strings.Contains(locLower, "global") || strings.Contains(locLower, "cities") {
			signals = append(signals, "multi_location")
		}
		if strings.Contains(bc.pitchAngle, "ISA") || strings.Contains(strings.ToLower(bc.pitchAngle), "income share") {
			signals = append(signals, "isa_model")
		}

		prospects = append(prospects, prospect.Prospect{
			Source:      prospect.SourceBootcamps,
			Username:    strings.ReplaceAll(strings.ToLower(bc.name), " ", "-"),
			DisplayName: bc.name,
			ProfileURL:  bc.url,
			Bio:         strings.Join(bc.programs, ", ") + ". " + bc.locations + ". " + bc.size + ".",
			Category:    "Bootcamp Partnership",
			Signals:     signals,
			RawData: map[string]any{
				"programs":       bc.programs,
				"locations":      bc.locations,
				"size":           bc.size,
				"contact_role":   bc.contactRole,
				"contact_search": bc.searchHint,
				"pitch_angle":    bc.pitchAngle,
			},
			FetchedAt: time.Now().UTC(),
		})
	}
	return prospects, nil
}
