// Package report renders run results: a results CSV file per run and an
// aligned text table for the terminal.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/procsched/sim"
	"github.com/inference-sim/procsched/sim/trace"
)

// OutputPath returns the results file path for a run: the label is prefixed
// to the base name of output, keeping its directory.
func OutputPath(label, output string) string {
	return filepath.Join(filepath.Dir(output), label+"_"+filepath.Base(output))
}

// WriteCSV writes one row per finished process, in completion order:
//
//	"id",arrival,service,start,total_wait,finish,turnaround,normalized_turnaround
//
// followed by a final row holding the mean turnaround and mean normalized
// turnaround. Ids are wrapped in double quotes verbatim, without escaping.
// Floats carry two decimals; the final row has no trailing newline.
func WriteCSV(w io.Writer, r *sim.Results) error {
	bw := bufio.NewWriter(w)
	for _, p := range r.Processes {
		if _, err := fmt.Fprintf(bw, "\"%s\",%d,%d,%d,%d,%d,%d,%.02f\n",
			p.ID, p.ArrivalTime, p.ServiceTime, p.StartTime,
			p.TotalWait, p.FinishTime, p.Turnaround, p.NormalizedTurnaround); err != nil {
			return fmt.Errorf("writing row for %s: %w", p.ID, err)
		}
	}
	if _, err := fmt.Fprintf(bw, "%.02f,%.02f", r.MeanTurnaround, r.MeanNormalizedTurnaround); err != nil {
		return fmt.Errorf("writing means: %w", err)
	}
	return bw.Flush()
}

// SaveCSV writes the results CSV to path, replacing any existing file.
func SaveCSV(path string, r *sim.Results) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()
	if err := WriteCSV(file, r); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logrus.Debugf("Successfully wrote to '%s'", path)
	return nil
}

// PrintTable renders the results as an aligned table, rows sorted by process id.
func PrintTable(w io.Writer, r *sim.Results) {
	rows := make([]sim.ProcessStats, len(r.Processes))
	copy(rows, r.Processes)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	_, _ = fmt.Fprintf(w, "*** %s ***\n", r.Name)
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader([]string{"Process", "Arrival Time", "Service Time (Ts)", "Start Time", "Wait", "Finish Time", "Turnaround Time (Tr)", "Tr/Ts"})
	for _, p := range rows {
		table.Append([]string{
			p.ID,
			fmt.Sprint(p.ArrivalTime),
			fmt.Sprint(p.ServiceTime),
			fmt.Sprint(p.StartTime),
			fmt.Sprint(p.TotalWait),
			fmt.Sprint(p.FinishTime),
			fmt.Sprint(p.Turnaround),
			fmt.Sprintf("%.02f", p.NormalizedTurnaround),
		})
	}
	table.SetFooter([]string{"Mean", "", "", "", "", "",
		fmt.Sprintf("%.02f", r.MeanTurnaround),
		fmt.Sprintf("%.02f", r.MeanNormalizedTurnaround)})
	table.Render()
}

// PrintTraceSummary renders the decision counts of a traced run.
func PrintTraceSummary(w io.Writer, r *sim.Results) {
	s := trace.Summarize(r.Trace)
	_, _ = fmt.Fprintf(w, "--- %s decisions ---\n", r.Name)
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Dispatches", "Context Switches", "Preemptions", "I/O Blocks", "Idle Ticks"})
	table.Append([]string{
		fmt.Sprint(s.Dispatches),
		fmt.Sprint(s.ContextSwitches),
		fmt.Sprint(s.Preemptions),
		fmt.Sprint(s.Blocks),
		fmt.Sprint(s.IdleTicks),
	})
	table.Render()
}
