// Package matching scores job postings against a candidate profile.
//
// Scoring is a pure function of the profile, the posting and a fixed
// keyword list, so identical inputs always produce identical scores.
package matching

import (
	"sort"
	"strings"

	"github.com/mariana/jobpilot/internal/types"
)

const (
	// neutralScore is returned for profiles with no extracted skills
	neutralScore = 50.0
	// skillWeight is the share of the score driven by skill overlap
	skillWeight = 70.0
	// seniorityBonus is added per seniority keyword found on both sides
	seniorityBonus = 5.0
	maxScore       = 100.0
)

// seniorityKeywords contribute a bonus when present in both the profile
// source text and the posting text
var seniorityKeywords = []string{"senior", "lead", "manager", "architect"}

// Score rates how well a profile fits a posting on a 0-100 scale.
//
// A profile without skills scores a neutral 50 regardless of the posting.
// Otherwise the skill-overlap ratio drives up to 70 points, and each
// seniority keyword appearing in both the resume and the posting adds 5.
func Score(profile *types.CandidateProfile, posting *types.JobPosting) float64 {
	if len(profile.Skills) == 0 {
		return neutralScore
	}

	postingText := strings.ToLower(posting.PostingText())

	matched := 0
	for _, skill := range profile.Skills {
		if strings.Contains(postingText, strings.ToLower(skill)) {
			matched++
		}
	}
	base := float64(matched) / float64(len(profile.Skills)) * skillWeight

	resumeText := strings.ToLower(profile.SourceText)
	bonus := 0.0
	for _, keyword := range seniorityKeywords {
		if strings.Contains(resumeText, keyword) && strings.Contains(postingText, keyword) {
			bonus += seniorityBonus
		}
	}

	score := base + bonus
	if score > maxScore {
		return maxScore
	}
	return score
}

// BuildPostings scores raw postings against a profile and converts them to
// stored postings, preserving the source order
func BuildPostings(profile *types.CandidateProfile, raw []types.RawPosting) []*types.JobPosting {
	postings := make([]*types.JobPosting, 0, len(raw))
	for _, r := range raw {
		posting := types.NewJobPosting(r, 0)
		posting.MatchScore = Score(profile, posting)
		postings = append(postings, posting)
	}
	return postings
}

// Rank orders postings by descending match score. Equal scores keep their
// insertion order.
func Rank(postings []*types.JobPosting) {
	sort.SliceStable(postings, func(i, j int) bool {
		return postings[i].MatchScore > postings[j].MatchScore
	})
}
