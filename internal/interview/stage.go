package interview

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stage is one step of the fixed interview sequence.
type Stage int

const (
	StageGreeting Stage = iota
	StageName
	StageEmail
	StagePhone
	StageExperience
	StagePosition
	StageLocation
	StageTechStack
	StageQuestions
	StageConclusion
)

// Stages lists every stage in transition order.
var Stages = []Stage{
	StageGreeting,
	StageName,
	StageEmail,
	StagePhone,
	StageExperience,
	StagePosition,
	StageLocation,
	StageTechStack,
	StageQuestions,
	StageConclusion,
}

var titleCaser = cases.Title(language.English)

func (s Stage) String() string {
	switch s {
	case StageGreeting:
		return "greeting"
	case StageName:
		return "name"
	case StageEmail:
		return "email"
	case StagePhone:
		return "phone"
	case StageExperience:
		return "experience"
	case StagePosition:
		return "position"
	case StageLocation:
		return "location"
	case StageTechStack:
		return "tech_stack"
	case StageQuestions:
		return "questions"
	case StageConclusion:
		return "conclusion"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Label is the human readable stage name, e.g. "Tech Stack".
func (s Stage) Label() string {
	return titleCaser.String(strings.ReplaceAll(s.String(), "_", " "))
}

// Progress reports how far into the interview the stage is, in percent.
func (s Stage) Progress() int {
	switch s {
	case StageGreeting:
		return 10
	case StageName:
		return 20
	case StageEmail:
		return 30
	case StagePhone:
		return 40
	case StageExperience:
		return 50
	case StagePosition:
		return 60
	case StageLocation:
		return 70
	case StageTechStack:
		return 80
	case StageQuestions:
		return 85
	case StageConclusion:
		return 100
	default:
		return 0
	}
}

// Collects reports whether the stage stores a candidate field.
func (s Stage) Collects() bool {
	switch s {
	case StageName, StageEmail, StagePhone, StageExperience, StagePosition, StageLocation, StageTechStack:
		return true
	case StageGreeting, StageQuestions, StageConclusion:
		return false
	default:
		return false
	}
}

// NextStage returns the stage that follows s. The conclusion stage is terminal,
// and anything unknown falls through to it.
func NextStage(s Stage) Stage {
	switch s {
	case StageGreeting:
		return StageName
	case StageName:
		return StageEmail
	case StageEmail:
		return StagePhone
	case StagePhone:
		return StageExperience
	case StageExperience:
		return StagePosition
	case StagePosition:
		return StageLocation
	case StageLocation:
		return StageTechStack
	case StageTechStack:
		return StageQuestions
	case StageQuestions, StageConclusion:
		return StageConclusion
	default:
		return StageConclusion
	}
}

// ParseStage resolves a stage from its String form.
func ParseStage(name string) (Stage, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Stages {
		if s.String() == name {
			return s, nil
		}
	}
	return StageConclusion, fmt.Errorf("unknown stage %q", name)
}
