package domain

// Presentation carries the display metadata for one status value. Values are
// static lookup data, never persisted.
type Presentation struct {
	Status      string `json:"status"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

var qcPresentations = map[QCStatus]Presentation{
	QCPending: {Status: string(QCPending), Label: "QC Pending", Color: "amber", Icon: "clock", Description: "Awaiting quality review"},
	QCPass:    {Status: string(QCPass), Label: "QC Passed", Color: "green", Icon: "check-circle", Description: "Quality review passed"},
	QCFail:    {Status: string(QCFail), Label: "QC Failed", Color: "red", Icon: "x-circle", Description: "Quality review failed"},
	QCRework:  {Status: string(QCRework), Label: "Needs Rework", Color: "orange", Icon: "refresh", Description: "Sent back for changes"},
}

var stagePresentations = map[WorkflowStage]Presentation{
	StageAdd:     {Status: string(StageAdd), Label: "Added", Color: "gray", Icon: "plus", Description: "Asset captured in the system"},
	StageSubmit:  {Status: string(StageSubmit), Label: "Submitted", Color: "blue", Icon: "upload", Description: "Submitted for review"},
	StageQC:      {Status: string(StageQC), Label: "In QC", Color: "amber", Icon: "search", Description: "Under quality review"},
	StageApprove: {Status: string(StageApprove), Label: "Approved", Color: "teal", Icon: "thumbs-up", Description: "Approved for publishing"},
	StagePublish: {Status: string(StagePublish), Label: "Published", Color: "green", Icon: "globe", Description: "Live in the production pipeline"},
}

var linkingPresentations = map[bool]Presentation{
	true:  {Status: "Active", Label: "Linking Active", Color: "green", Icon: "link", Description: "Eligible to be served through its links"},
	false: {Status: "Inactive", Label: "Linking Inactive", Color: "gray", Icon: "link-off", Description: "Not currently served through links"},
}

func QCPresentation(s QCStatus) Presentation {
	if p, ok := qcPresentations[s]; ok {
		return p
	}
	return Presentation{Status: string(s), Label: string(s)}
}

func StagePresentation(s WorkflowStage) Presentation {
	if p, ok := stagePresentations[s]; ok {
		return p
	}
	return Presentation{Status: string(s), Label: string(s)}
}

func LinkingPresentation(active bool) Presentation {
	return linkingPresentations[active]
}
