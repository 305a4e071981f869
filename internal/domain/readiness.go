package domain

import "fmt"

// ReadinessInput is the snapshot of the three status axes the score derives
// from. HasStaticLinks only matters while linking is inactive.
type ReadinessInput struct {
	QCStatus       QCStatus
	WorkflowStage  WorkflowStage
	LinkingActive  bool
	HasStaticLinks bool
}

// Readiness summarizes how close an asset is to being fully reviewed, linked,
// and published.
type Readiness struct {
	Score    int    `json:"readinessPercentage"`
	IsReady  bool   `json:"isReady"`
	NextStep string `json:"nextStep"`
}

var qcScores = map[QCStatus]int{
	QCPass:    40,
	QCPending: 10,
	QCRework:  5,
	QCFail:    0,
}

var stageScores = map[WorkflowStage]int{
	StageAdd:     5,
	StageSubmit:  10,
	StageQC:      15,
	StageApprove: 25,
	StagePublish: 30,
}

// ComputeReadiness is pure and safe for concurrent use; the score is never
// stored, so it cannot drift from the underlying fields.
func ComputeReadiness(in ReadinessInput) Readiness {
	score := qcScores[in.QCStatus]
	switch {
	case in.LinkingActive:
		score += 30
	case in.HasStaticLinks:
		score += 15
	}
	score += stageScores[in.WorkflowStage]
	if score > 100 {
		score = 100
	}

	return Readiness{
		Score:    score,
		IsReady:  in.LinkingActive && in.QCStatus == QCPass && in.WorkflowStage == StagePublish,
		NextStep: nextStep(in),
	}
}

func nextStep(in ReadinessInput) string {
	if in.WorkflowStage != StagePublish {
		if next, ok := in.WorkflowStage.Next(); ok {
			return fmt.Sprintf("Advance workflow to %s", next)
		}
		return fmt.Sprintf("Advance workflow to %s", StageSubmit)
	}
	if in.QCStatus != QCPass {
		return "Submit the asset for QC review"
	}
	if !in.LinkingActive {
		return "Activate linking"
	}
	return "Ready and published"
}
