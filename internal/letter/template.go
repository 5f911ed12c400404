package letter

import (
	"fmt"
	"strings"

	"github.com/mariana/jobpilot/internal/types"
)

// defaultExperience substitutes a missing first experience entry
const defaultExperience = "relevant professional experience"

// maxTemplateSkills limits how many skills the template opening names
const maxTemplateSkills = 3

// FallbackLetter renders the fixed application letter template. Pure
// interpolation: posting title and company in the opening, up to three
// profile skills, the first experience entry, and the company again in
// the closing.
func FallbackLetter(profile *types.CandidateProfile, posting *types.JobPosting) string {
	skills := profile.Skills
	if len(skills) > maxTemplateSkills {
		skills = skills[:maxTemplateSkills]
	}

	experience := defaultExperience
	if len(profile.Experience) > 0 {
		experience = profile.Experience[0]
	}

	return fmt.Sprintf(`Dear Hiring Manager,

I am writing to express my strong interest in the %s position at %s. With my background in %s, I am excited about the opportunity to contribute to your team.

My experience includes %s, which aligns well with your requirements. I am particularly drawn to this role because of the opportunity to work with cutting-edge technologies and contribute to meaningful projects.

I would welcome the opportunity to discuss how my skills and enthusiasm can benefit %s. Thank you for considering my application.

Best regards`,
		posting.Title, posting.Company, strings.Join(skills, ", "), experience, posting.Company)
}
