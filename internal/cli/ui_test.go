package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinter(t *testing.T) {
	tests := []struct {
		name  string
		print func(p printer)
		want  []string
	}{
		{"success", func(p printer) { p.success("Wrote %d frames", 3) }, []string{iconSuccess, "Wrote 3 frames"}},
		{"failure", func(p printer) { p.failure("Printing failed") }, []string{iconError, "Printing failed"}},
		{"warn", func(p printer) { p.warn("no figures") }, []string{iconWarning, "no figures"}},
		{"file", func(p printer) { p.file("_PlotIndex.html") }, []string{iconArrow, "_PlotIndex.html"}},
		{"keyValue", func(p printer) { p.keyValue("Entries", "4") }, []string{"Entries", "4"}},
		{"next", func(p printer) { p.next("Plot them", "clawplot plot") }, []string{"Plot them:", "clawplot plot"}},
		{"fresh run", func(p printer) { p.runStats(11, 2, 25, 0) }, []string{"11 frames", "2 figures", "25 files", "fresh"}},
		{"cached run", func(p printer) { p.runStats(11, 2, 25, 22) }, []string{"22 cached"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(newPrinter(&buf))
			out := buf.String()
			if !strings.HasSuffix(out, "\n") {
				t.Errorf("output %q is not a full line", out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
		})
	}
}
