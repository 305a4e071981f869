package domain

import "fmt"

// QCStatus is the outcome of a quality-control review.
type QCStatus string

const (
	QCPending QCStatus = "Pending"
	QCPass    QCStatus = "Pass"
	QCFail    QCStatus = "Fail"
	QCRework  QCStatus = "Rework"
)

// ParseQCStatus validates a raw status value coming in from a caller.
func ParseQCStatus(raw string) (QCStatus, error) {
	switch QCStatus(raw) {
	case QCPending, QCPass, QCFail, QCRework:
		return QCStatus(raw), nil
	default:
		return "", NewError(CodeInvalidArgument, "ParseQCStatus", fmt.Sprintf("unknown qc status %q", raw), nil)
	}
}

// WorkflowStage is the asset's position in the production pipeline.
type WorkflowStage string

const (
	StageAdd     WorkflowStage = "Add"
	StageSubmit  WorkflowStage = "Submit"
	StageQC      WorkflowStage = "QC"
	StageApprove WorkflowStage = "Approve"
	StagePublish WorkflowStage = "Publish"
)

// WorkflowStages is the fixed pipeline order.
var WorkflowStages = []WorkflowStage{StageAdd, StageSubmit, StageQC, StageApprove, StagePublish}

func ParseWorkflowStage(raw string) (WorkflowStage, error) {
	switch WorkflowStage(raw) {
	case StageAdd, StageSubmit, StageQC, StageApprove, StagePublish:
		return WorkflowStage(raw), nil
	default:
		return "", NewError(CodeInvalidArgument, "ParseWorkflowStage", fmt.Sprintf("unknown workflow stage %q", raw), nil)
	}
}

// Index returns the stage's position in the pipeline order, or -1.
func (s WorkflowStage) Index() int {
	for i, stage := range WorkflowStages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Next returns the following stage in pipeline order; ok is false at Publish
// or for an unrecognized stage.
func (s WorkflowStage) Next() (WorkflowStage, bool) {
	i := s.Index()
	if i < 0 || i >= len(WorkflowStages)-1 {
		return "", false
	}
	return WorkflowStages[i+1], true
}

// Audited status fields, the only values allowed in a status change record.
const (
	FieldQCStatus      = "qc_status"
	FieldWorkflowStage = "workflow_stage"
	FieldLinkingActive = "linking_active"
)
