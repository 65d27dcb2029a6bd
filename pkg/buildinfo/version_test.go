package buildinfo

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGet(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v0.3.0", "4f2a9c1", "2024-03-01T12:00:00Z"

	want := Info{Version: "v0.3.0", Commit: "4f2a9c1", Date: "2024-03-01T12:00:00Z"}
	if diff := cmp.Diff(want, Get()); diff != "" {
		t.Errorf("Get() (-want +got):\n%s", diff)
	}
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version v0.3.0\ncommit: 4f2a9c1\n") {
		t.Errorf("Template() = %q", got)
	}
}
