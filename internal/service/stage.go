package service

// Pipeline stages in order. The last one is terminal.
const (
	StageIdea       = "idea"
	StageResearch   = "research"
	StageFormula    = "formula"
	StageTesting    = "testing"
	StagePackaging  = "packaging"
	StagePrinting   = "printing"
	StageProduction = "production"
	StageReady      = "ready"
	StageLaunched   = "launched"
)

// Stages lists every pipeline stage in progression order.
var Stages = []string{
	StageIdea,
	StageResearch,
	StageFormula,
	StageTesting,
	StagePackaging,
	StagePrinting,
	StageProduction,
	StageReady,
	StageLaunched,
}

// StageIndex returns the position of stage in Stages, or -1.
func StageIndex(stage string) int {
	for i, s := range Stages {
		if s == stage {
			return i
		}
	}
	return -1
}

// IsValidStage reports whether stage is a known pipeline stage.
func IsValidStage(stage string) bool {
	return StageIndex(stage) >= 0
}

// IsTerminal reports whether stage is the last stage.
func IsTerminal(stage string) bool {
	return stage == StageLaunched
}

// NextStage returns the stage after stage. ok is false for the terminal
// stage and for unknown stages.
func NextStage(stage string) (next string, ok bool) {
	i := StageIndex(stage)
	if i < 0 || i == len(Stages)-1 {
		return "", false
	}
	return Stages[i+1], true
}

// LaunchConfirmationRequired reports whether advancing from stage would
// launch the product. Callers must obtain explicit confirmation first.
func LaunchConfirmationRequired(stage string) bool {
	next, ok := NextStage(stage)
	return ok && next == StageLaunched
}
