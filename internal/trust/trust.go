// Package trust derives discrete permission tiers from a user's numeric
// experience level and gates forum actions on them.
package trust

// Level is a discrete trust tier.
type Level int

const (
	Novice    Level = 1
	Member    Level = 2
	Veteran   Level = 3
	Moderator Level = 4
)

// Action is a forum action gated by trust level.
type Action string

const (
	ActionPost     Action = "post"
	ActionReact    Action = "react"
	ActionWikiEdit Action = "wiki_edit"
	ActionModerate Action = "moderate"
)

// minLevel maps each action to the lowest tier allowed to perform it.
var minLevel = map[Action]Level{
	ActionPost:     Novice,
	ActionReact:    Novice,
	ActionWikiEdit: Veteran,
	ActionModerate: Moderator,
}

// Calculate maps a user's numeric level to a trust tier. A nil level (account
// never leveled) counts as Novice. The mapping is monotonic non-decreasing.
func Calculate(userLevel *int) Level {
	if userLevel == nil {
		return Novice
	}
	switch {
	case *userLevel >= 10:
		return Moderator
	case *userLevel >= 6:
		return Veteran
	case *userLevel >= 3:
		return Member
	default:
		return Novice
	}
}

// Can reports whether a trust tier permits the given action. Unknown actions
// are never permitted.
func Can(level Level, action Action) bool {
	min, ok := minLevel[action]
	if !ok {
		return false
	}
	return level >= min
}

// String returns the human-readable tier name.
func (l Level) String() string {
	switch l {
	case Novice:
		return "Novice"
	case Member:
		return "Member"
	case Veteran:
		return "Veteran"
	case Moderator:
		return "Moderator"
	default:
		return "Unknown"
	}
}
