package phase

// ModulePhase tracks the compilation phase of one source file.
//
// Phases advance strictly in order:
// NotStarted -> Lexed -> Parsed -> Resolved -> TypeChecked
//
// A stage refuses to run unless the unit sits exactly at its
// prerequisite phase, see CanAdvance.
type ModulePhase int

const (
	PhaseNotStarted  ModulePhase = iota // File loaded but not processed
	PhaseLexed                          // Tokens generated
	PhaseParsed                         // AST built
	PhaseResolved                       // Struct and function types in the table
	PhaseTypeChecked                    // Expression types recorded
)

// PhasePrerequisites maps each phase to its required predecessor phase
var PhasePrerequisites = map[ModulePhase]ModulePhase{
	PhaseLexed:       PhaseNotStarted,
	PhaseParsed:      PhaseLexed,
	PhaseResolved:    PhaseParsed,
	PhaseTypeChecked: PhaseResolved,
}

// CanAdvance reports whether a unit at current may move to target.
func CanAdvance(current, target ModulePhase) bool {
	prerequisite, ok := PhasePrerequisites[target]
	return ok && current == prerequisite
}

func (p ModulePhase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseLexed:
		return "Lexed"
	case PhaseParsed:
		return "Parsed"
	case PhaseResolved:
		return "Resolved"
	case PhaseTypeChecked:
		return "TypeChecked"
	default:
		return "Unknown"
	}
}
