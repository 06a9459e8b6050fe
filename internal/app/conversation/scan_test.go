package conversation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/PabloGalante/farum-demo/internal/domain"
)

func steps(triggers ...string) []domain.Step {
	out := []domain.Step{{Speaker: domain.RoleAgent, Content: "opening"}}
	for _, tr := range triggers {
		out = append(out, domain.Step{Speaker: domain.RoleAgent, Content: "step " + tr, Trigger: tr})
	}
	return out
}

func TestBranchRun(t *testing.T) {
	tests := []struct {
		name   string
		steps  []domain.Step
		cursor int
		option string
		want   []int
	}{
		{
			name:   "stops at other trigger after match",
			steps:  steps("A", "A", "B", ""),
			option: "A",
			want:   []int{1, 2},
		},
		{
			name:   "includes default step after match",
			steps:  steps("A", "", "B"),
			option: "A",
			want:   []int{1, 2},
		},
		{
			name:   "skips other branches before match",
			steps:  steps("B", "B", "A", "", "C"),
			option: "A",
			want:   []int{3, 4},
		},
		{
			name:   "leading default step is not part of the run",
			steps:  steps("", "A", ""),
			option: "A",
			want:   []int{2, 3},
		},
		{
			name:   "default steps only never match",
			steps:  steps("", ""),
			option: "A",
			want:   nil,
		},
		{
			name:   "no match",
			steps:  steps("B", "C"),
			option: "A",
			want:   nil,
		},
		{
			name:   "scan starts after cursor",
			steps:  steps("A", "B", "A"),
			cursor: 1,
			option: "A",
			want:   []int{3},
		},
		{
			name:   "cursor at end",
			steps:  steps("A"),
			cursor: 1,
			option: "A",
			want:   nil,
		},
		{
			name:   "run reaches end of script",
			steps:  steps("A", "", ""),
			option: "A",
			want:   []int{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := branchRun(tt.steps, tt.cursor, tt.option)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("branchRun mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
