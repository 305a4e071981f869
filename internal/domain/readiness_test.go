package domain

import "testing"

func TestComputeReadinessScores(t *testing.T) {
	cases := []struct {
		name string
		in   ReadinessInput
		want int
	}{
		{
			name: "fresh asset",
			in:   ReadinessInput{QCStatus: QCPending, WorkflowStage: StageAdd},
			want: 15,
		},
		{
			name: "pass active add",
			in:   ReadinessInput{QCStatus: QCPass, WorkflowStage: StageAdd, LinkingActive: true},
			want: 75,
		},
		{
			name: "fully ready",
			in:   ReadinessInput{QCStatus: QCPass, WorkflowStage: StagePublish, LinkingActive: true},
			want: 100,
		},
		{
			name: "static links without active linking",
			in:   ReadinessInput{QCStatus: QCPass, WorkflowStage: StagePublish, HasStaticLinks: true},
			want: 85,
		},
		{
			name: "static links ignored when linking active",
			in:   ReadinessInput{QCStatus: QCPass, WorkflowStage: StageApprove, LinkingActive: true, HasStaticLinks: true},
			want: 95,
		},
		{
			name: "rework mid pipeline",
			in:   ReadinessInput{QCStatus: QCRework, WorkflowStage: StageQC, HasStaticLinks: true},
			want: 35,
		},
		{
			name: "fail contributes nothing",
			in:   ReadinessInput{QCStatus: QCFail, WorkflowStage: StageSubmit},
			want: 10,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeReadiness(tc.in)
			if got.Score != tc.want {
				t.Fatalf("score: want %d, got %d", tc.want, got.Score)
			}
			if got.Score < 0 || got.Score > 100 {
				t.Fatalf("score out of range: %d", got.Score)
			}
		})
	}
}

func TestComputeReadinessIsReady(t *testing.T) {
	ready := ComputeReadiness(ReadinessInput{QCStatus: QCPass, WorkflowStage: StagePublish, LinkingActive: true})
	if !ready.IsReady {
		t.Fatalf("expected ready asset")
	}

	notReady := []ReadinessInput{
		{QCStatus: QCPending, WorkflowStage: StagePublish, LinkingActive: true},
		{QCStatus: QCPass, WorkflowStage: StageApprove, LinkingActive: true},
		{QCStatus: QCPass, WorkflowStage: StagePublish, LinkingActive: false},
	}
	for _, in := range notReady {
		if ComputeReadiness(in).IsReady {
			t.Fatalf("expected not ready for %+v", in)
		}
	}
}

func TestComputeReadinessNextStep(t *testing.T) {
	cases := []struct {
		in   ReadinessInput
		want string
	}{
		{ReadinessInput{QCStatus: QCPending, WorkflowStage: StageAdd}, "Advance workflow to Submit"},
		{ReadinessInput{QCStatus: QCPass, WorkflowStage: StageApprove, LinkingActive: true}, "Advance workflow to Publish"},
		{ReadinessInput{QCStatus: QCPending, WorkflowStage: StagePublish, LinkingActive: true}, "Submit the asset for QC review"},
		{ReadinessInput{QCStatus: QCPass, WorkflowStage: StagePublish}, "Activate linking"},
		{ReadinessInput{QCStatus: QCPass, WorkflowStage: StagePublish, LinkingActive: true}, "Ready and published"},
	}
	for _, tc := range cases {
		if got := ComputeReadiness(tc.in).NextStep; got != tc.want {
			t.Fatalf("next step for %+v: want %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestComputeReadinessStageMonotonic(t *testing.T) {
	prev := -1
	for _, stage := range WorkflowStages {
		got := ComputeReadiness(ReadinessInput{QCStatus: QCPending, WorkflowStage: stage}).Score
		if got <= prev {
			t.Fatalf("score must grow with stage, got %d after %d at %s", got, prev, stage)
		}
		prev = got
	}
}
