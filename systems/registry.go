package systems

// Phase identifiers, in execution order.
const (
	PhaseEating       = "eating"
	PhaseDecay        = "decay"
	PhaseDeath        = "death"
	PhaseMovement     = "movement"
	PhaseReproduction = "reproduction"
	PhaseRegrowth     = "regrowth"
	PhaseAging        = "aging"
)

// PhaseInfo describes one tick phase for logs and perf output.
type PhaseInfo struct {
	ID          string
	Name        string
	Description string
}

// Phases lists the tick phases in the order Advance runs them.
var Phases = []PhaseInfo{
	{ID: PhaseEating, Name: "Eating", Description: "Eaters consume one adjacent victim each"},
	{ID: PhaseDecay, Name: "Decay", Description: "Eaters and victims lose energy by role"},
	{ID: PhaseDeath, Name: "Death", Description: "Starved and old animals are removed"},
	{ID: PhaseMovement, Name: "Movement", Description: "Animals close on food or wander to empty cells"},
	{ID: PhaseReproduction, Name: "Reproduction", Description: "Eligible animals place one offspring"},
	{ID: PhaseRegrowth, Name: "Regrowth", Description: "Grass reappears on a fixed cadence"},
	{ID: PhaseAging, Name: "Aging", Description: "Every entity ages one tick"},
}
