package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clawplot/pkg/frame"
)

// frameRow summarizes one frame for tables and the browser.
type frameRow struct {
	Number int
	Time   float64
	Meqn   int
	Cells  int
	Ranges [][2]float64 // per component min and max
}

// readFrameRows reads every frame in dir. Unreadable frames are skipped
// with a warning.
func (c *CLI) readFrameRows(dir string) ([]frameRow, error) {
	nums, err := frame.List(dir)
	if err != nil {
		return nil, err
	}
	rows := make([]frameRow, 0, len(nums))
	for _, n := range nums {
		f, err := frame.Read(dir, n)
		if err != nil {
			c.Logger.Warn("skipping frame", "frame", n, "err", err)
			continue
		}
		row := frameRow{Number: n, Time: f.Time, Meqn: f.Meqn, Cells: f.Cells()}
		for m := 0; m < f.Meqn; m++ {
			lo, hi, err := f.Range(m)
			if err != nil {
				c.Logger.Warn("no data", "frame", n, "q", m, "err", err)
			}
			row.Ranges = append(row.Ranges, [2]float64{lo, hi})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// framesTable renders rows as a table with one min..max column per
// component.
func framesTable(rows []frameRow) string {
	meqn := 0
	for _, r := range rows {
		meqn = max(meqn, r.Meqn)
	}
	headers := []string{"Frame", "Time", "Cells"}
	for m := range meqn {
		headers = append(headers, fmt.Sprintf("q[%d]", m))
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells := []string{strconv.Itoa(r.Number), formatFloat(r.Time), strconv.Itoa(r.Cells)}
		for m := range meqn {
			if m < len(r.Ranges) {
				cells = append(cells, formatFloat(r.Ranges[m][0])+" .. "+formatFloat(r.Ranges[m][1]))
			} else {
				cells = append(cells, "")
			}
		}
		data = append(data, cells)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(colorAccent)
			default:
				return cellStyle
			}
		}).
		Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 5, 64)
}

// framesCommand creates the frames command.
func (c *CLI) framesCommand() *cobra.Command {
	var outdir string

	cmd := &cobra.Command{
		Use:   "frames",
		Short: "List the frames in the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.Config.OutDir
			if outdir != "" {
				dir = outdir
			}
			rows, err := c.readFrameRows(dir)
			if err != nil {
				return err
			}
			return printFrames(cmd.OutOrStdout(), dir, rows)
		},
	}
	cmd.Flags().StringVar(&outdir, "outdir", "", "directory holding fort.t/fort.q frames")
	cmd.AddCommand(c.framesSynthCommand())
	return cmd
}

func printFrames(w io.Writer, dir string, rows []frameRow) error {
	if len(rows) == 0 {
		p := newPrinter(w)
		p.info("No frames in %s", dir)
		p.next("Write demo frames", appName+" frames synth")
		return nil
	}
	_, err := fmt.Fprintln(w, framesTable(rows))
	return err
}

// framesSynthCommand creates the "frames synth" subcommand.
func (c *CLI) framesSynthCommand() *cobra.Command {
	var (
		outdir string
		count  int
		cells  int
		dt     float64
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write a synthetic shock tube frame set for demos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.Config.OutDir
			if outdir != "" {
				dir = outdir
			}
			if count < 1 || cells < 1 || dt <= 0 {
				return fmt.Errorf("count, cells and dt must be positive")
			}
			for n := range count {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if err := frame.Write(dir, frame.Synthetic(n, float64(n)*dt, cells)); err != nil {
					return fmt.Errorf("frame %d: %w", n, err)
				}
			}
			p := newPrinter(cmd.OutOrStdout())
			p.success("Wrote %d frames with %d cells", count, cells)
			p.detail("Directory: %s", dir)
			p.next("Plot them", appName+" plot --outdir "+dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outdir, "outdir", "", "directory to write frames into")
	cmd.Flags().IntVarP(&count, "count", "n", 11, "number of frames")
	cmd.Flags().IntVar(&cells, "cells", 200, "cells per frame")
	cmd.Flags().Float64Var(&dt, "dt", 0.05, "time between frames")
	return cmd
}
