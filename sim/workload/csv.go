package workload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/procsched/sim"
)

// ErrMalformedWorkload is returned when a workload file cannot be parsed.
var ErrMalformedWorkload = errors.New("malformed workload")

// LoadCSV reads a CSV workload file. See ParseCSV for the row format.
func LoadCSV(path string) ([]sim.ProcessSpec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workload %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	specs, err := ParseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("workload %s: %w", path, err)
	}
	return specs, nil
}

// ParseCSV parses the continuation-row workload format. A row with an id
// defines a process (id, arrival_time, service_time); a row with an empty id
// attaches an I/O burst (offset, duration) to the most recently defined process.
// The parsed descriptors are validated before they are returned.
func ParseCSV(r io.Reader) ([]sim.ProcessSpec, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var specs []sim.ProcessSpec
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformedWorkload, row, err)
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("%w: row %d: expected 3 columns, got %d", ErrMalformedWorkload, row, len(record))
		}
		if len(record) > 3 {
			logrus.Warnf("workload row %d: ignoring %d extra columns", row, len(record)-3)
		}
		first, err := parseField(record[1], row, 2)
		if err != nil {
			return nil, err
		}
		second, err := parseField(record[2], row, 3)
		if err != nil {
			return nil, err
		}

		id := strings.TrimSpace(record[0])
		if id != "" {
			specs = append(specs, sim.ProcessSpec{ID: id, ArrivalTime: first, ServiceTime: second})
			continue
		}
		if len(specs) == 0 {
			return nil, fmt.Errorf("%w: row %d: io burst row precedes any process row", ErrMalformedWorkload, row)
		}
		last := &specs[len(specs)-1]
		last.IOBursts = append(last.IOBursts, sim.IOBurst{Offset: first, Duration: second})
	}

	if err := sim.ValidateProcessSpecs(specs); err != nil {
		return nil, err
	}
	return specs, nil
}

func parseField(s string, row, col int) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: row %d column %d: invalid integer %q", ErrMalformedWorkload, row, col, s)
	}
	return v, nil
}

// FormatCSV writes specs in the continuation-row format accepted by ParseCSV.
func FormatCSV(w io.Writer, specs []sim.ProcessSpec) error {
	writer := csv.NewWriter(w)
	for _, ps := range specs {
		row := []string{ps.ID, strconv.FormatInt(ps.ArrivalTime, 10), strconv.FormatInt(ps.ServiceTime, 10)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing process %s: %w", ps.ID, err)
		}
		for _, b := range ps.IOBursts {
			if err := writer.Write([]string{"", strconv.FormatInt(b.Offset, 10), strconv.FormatInt(b.Duration, 10)}); err != nil {
				return fmt.Errorf("writing io burst of %s: %w", ps.ID, err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
