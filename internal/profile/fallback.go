package profile

import (
	"regexp"
	"strings"
)

// skillVocabulary is the fixed keyword list the deterministic extractor
// tests against. Order is significant: extracted skills preserve it.
var skillVocabulary = []string{
	"Python", "JavaScript", "React", "Node.js", "FastAPI", "MongoDB",
	"SQL", "Docker", "Kubernetes", "AWS", "Git", "Machine Learning",
	"AI", "Data Science", "Project Management", "Leadership",
	"Communication", "Problem Solving",
}

// experiencePatterns match a year range (or "present") adjacent to a role
// phrase, in either order. Both capture groups are kept.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{4}[\s\-]+\d{4}|present).*?([A-Z][a-z]+.*?(?:engineer|developer|manager|analyst|specialist|consultant))`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+.*?(?:engineer|developer|manager|analyst|specialist|consultant)).*?(\d{4}[\s\-]+\d{4}|present)`),
}

// educationPatterns match degree or institution markers adjacent to a year.
var educationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Bachelor|Master|PhD|B\.S\.|M\.S\.|B\.A\.|M\.A\.).*?(\d{4}|\d{2})`),
	regexp.MustCompile(`(?i)(University|College|Institute).*?(\d{4}|\d{2})`),
}

const (
	maxExperienceEntries  = 5
	maxEducationEntries   = 3
	placeholderExperience = "Software Developer 2020-2023"
	summaryLength         = 200
)

// fallbackAnalysis extracts a profile deterministically, without any
// external service. It is the recovery path for every analyzer failure
// and must stay reproducible: fixed vocabulary, fixed patterns, fixed caps.
func fallbackAnalysis(text string) *analysisResult {
	return &analysisResult{
		Skills:     extractSkills(text),
		Experience: extractExperience(text),
		Education:  extractEducation(text),
		Summary:    fallbackSummary(text),
	}
}

// extractSkills returns the vocabulary members present in the text,
// case-insensitively, preserving vocabulary order
func extractSkills(text string) []string {
	lower := strings.ToLower(text)
	skills := []string{}
	for _, skill := range skillVocabulary {
		if strings.Contains(lower, strings.ToLower(skill)) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// extractExperience collects up to 5 "<years> <role>" matches across both
// pattern orders. Zero matches yields a single placeholder entry so the
// profile never reports an empty work history.
func extractExperience(text string) []string {
	experience := []string{}
	for _, pattern := range experiencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			if len(experience) >= maxExperienceEntries {
				return experience
			}
			experience = append(experience, match[1]+" "+match[2])
		}
	}
	if len(experience) == 0 {
		experience = append(experience, placeholderExperience)
	}
	return experience
}

// extractEducation collects up to 3 degree/institution matches. An empty
// result is permitted.
func extractEducation(text string) []string {
	education := []string{}
	for _, pattern := range educationPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			if len(education) >= maxEducationEntries {
				return education
			}
			education = append(education, match[1]+" "+match[2])
		}
	}
	return education
}

// fallbackSummary truncates the source text to the first 200 characters
func fallbackSummary(text string) string {
	runes := []rune(text)
	if len(runes) > summaryLength {
		return string(runes[:summaryLength]) + "..."
	}
	return text
}
