package interview

// CandidateRecord is the profile collected during the interview. Every field is
// written at most once; empty strings and nil slices mean "not collected yet".
type CandidateRecord struct {
	Name              string   `json:"name,omitempty" mapstructure:"name,omitempty"`
	Email             string   `json:"email,omitempty" mapstructure:"email,omitempty"`
	Phone             string   `json:"phone,omitempty" mapstructure:"phone,omitempty"`
	YearsOfExperience *float64 `json:"years_of_experience,omitempty" mapstructure:"years_of_experience,omitempty"`
	DesiredPositions  []string `json:"desired_positions,omitempty" mapstructure:"desired_positions,omitempty"`
	Location          string   `json:"location,omitempty" mapstructure:"location,omitempty"`
	TechStack         []string `json:"tech_stack,omitempty" mapstructure:"tech_stack,omitempty"`
}

// Has reports whether the field collected at stage s is already set.
func (r *CandidateRecord) Has(s Stage) bool {
	switch s {
	case StageName:
		return r.Name != ""
	case StageEmail:
		return r.Email != ""
	case StagePhone:
		return r.Phone != ""
	case StageExperience:
		return r.YearsOfExperience != nil
	case StagePosition:
		return r.DesiredPositions != nil
	case StageLocation:
		return r.Location != ""
	case StageTechStack:
		return r.TechStack != nil
	case StageGreeting, StageQuestions, StageConclusion:
		return false
	default:
		return false
	}
}

// Years returns the collected experience, zero when it is missing.
func (r *CandidateRecord) Years() float64 {
	if r.YearsOfExperience == nil {
		return 0
	}
	return *r.YearsOfExperience
}

// PrimaryTech is the first listed technology, used to frame answer evaluation.
func (r *CandidateRecord) PrimaryTech() string {
	if len(r.TechStack) == 0 || r.TechStack[0] == "" {
		return "Technology"
	}
	return r.TechStack[0]
}

// Clone returns a deep copy safe to hand to collaborators.
func (r *CandidateRecord) Clone() CandidateRecord {
	out := *r
	if r.YearsOfExperience != nil {
		years := *r.YearsOfExperience
		out.YearsOfExperience = &years
	}
	if r.DesiredPositions != nil {
		out.DesiredPositions = append([]string{}, r.DesiredPositions...)
	}
	if r.TechStack != nil {
		out.TechStack = append([]string{}, r.TechStack...)
	}
	return out
}

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversational turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
