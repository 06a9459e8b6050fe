package conversation

import "github.com/PabloGalante/farum-demo/internal/domain"

// branchRun returns the indices of the steps unlocked by choosing option,
// scanning forward from the step after cursor.
//
// Steps before the first step triggered by option are skipped, default
// (untriggered) ones included. Once the run has started it absorbs steps
// triggered by option and default steps, and ends at the first step
// triggered by anything else. There is no backtracking.
func branchRun(steps []domain.Step, cursor int, option string) []int {
	var run []int
	for i := cursor + 1; i < len(steps); i++ {
		trigger := steps[i].Trigger
		if len(run) == 0 {
			if trigger == option {
				run = append(run, i)
			}
			continue
		}
		if trigger != "" && trigger != option {
			break
		}
		run = append(run, i)
	}
	return run
}
