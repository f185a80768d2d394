package results

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lixenwraith/rdk/schedule"
)

// FormatRecord renders one record as "[<coherence>, <0|1>]"; whole coherences print without a decimal point
func FormatRecord(r schedule.Record) string {
	return "[" + strconv.FormatFloat(r.Coherence, 'f', -1, 64) + ", " + strconv.Itoa(r.Flag()) + "]"
}

// Encode writes records separated by single spaces, with no trailing newline
func Encode(w io.Writer, records []schedule.Record) error {
	bw := bufio.NewWriter(w)
	for i, r := range records {
		if i > 0 {
			if err := bw.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(FormatRecord(r)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// TextFile writes the records of a run to a plain-text file, replacing its contents
type TextFile struct {
	Path string
}

func (t TextFile) Save(ctx context.Context, run *Run) (retErr error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(t.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create results dir: %w", err)
		}
	}
	f, err := os.Create(t.Path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && retErr == nil {
			retErr = fmt.Errorf("close results file: %w", cerr)
		}
	}()
	if err := Encode(f, run.Records); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
