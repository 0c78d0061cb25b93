package repository

import (
	"fmt"
	"slices"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mergington/activities/internal/domain/model"
)

// DefaultSeed returns the compiled-in activity fixtures the registry starts
// from. Restarting the process always returns the registry to this state
// (or to the seed-file override).
func DefaultSeed() map[string]model.Activity {
	return map[string]model.Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		"Baseball Team": {
			Description:     "Practice baseball skills and play in the local school league",
			Schedule:        "Wednesdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"liam@mergington.edu", "ethan@mergington.edu"},
		},
		"Tennis Club": {
			Description:     "Learn tennis techniques and play friendly matches",
			Schedule:        "Tuesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"sarah@mergington.edu", "lucas@mergington.edu"},
		},
		"Science Club": {
			Description:     "Hands-on experiments and exploration of scientific ideas",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"mia@mergington.edu", "noah@mergington.edu"},
		},
		"Drama Club": {
			Description:     "Act, direct, and produce school theater performances",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"ava@mergington.edu", "isabella@mergington.edu"},
		},
		"Art Club": {
			Description:     "Painting, drawing, and mixed-media projects",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
		},
		"Debate Team": {
			Description:     "Develop argumentation and public speaking skills",
			Schedule:        "Tuesdays and Thursdays, 5:00 PM - 6:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
		},
	}
}

// seedFile mirrors the YAML shape of a seed override file:
//
//	activities:
//	  Chess Club:
//	    description: ...
//	    schedule: ...
//	    max_participants: 12
//	    participants: [a@mergington.edu]
type seedFile struct {
	Activities map[string]model.Activity `koanf:"activities"`
}

// LoadSeedFile reads a YAML seed override. Every record must carry a
// positive capacity and a duplicate-free roster; a bad record fails the
// whole load rather than seeding a registry that violates its invariants.
func LoadSeedFile(path string) (map[string]model.Activity, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read seed file %q: %w", path, err)
	}

	var sf seedFile
	if err := k.UnmarshalWithConf("", &sf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("parse seed file %q: %w", path, err)
	}
	if len(sf.Activities) == 0 {
		return nil, fmt.Errorf("%w: %q defines no activities", ErrInvalidSeed, path)
	}
	for name, a := range sf.Activities {
		if name == "" {
			return nil, fmt.Errorf("%w: empty activity name", ErrInvalidSeed)
		}
		if a.MaxParticipants <= 0 {
			return nil, fmt.Errorf("%w: %q has non-positive max_participants", ErrInvalidSeed, name)
		}
		if hasDuplicates(a.Participants) {
			return nil, fmt.Errorf("%w: %q has duplicate participants", ErrInvalidSeed, name)
		}
	}
	return sf.Activities, nil
}

func hasDuplicates(emails []string) bool {
	for i, e := range emails {
		if slices.Contains(emails[i+1:], e) {
			return true
		}
	}
	return false
}
