package frame

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/clawplot/pkg/errors"
)

// List returns the sorted numbers of all frames in dir that have both a
// header and a data file.
func List(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "output directory %s does not exist", dir)
	}
	if err != nil {
		return nil, err
	}

	var nums []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n, ok := parseNumber(e.Name(), "fort.q")
		if !ok {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, TFile(n))); err != nil {
			continue
		}
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums, nil
}

// parseNumber extracts NNNN from names like "fort.qNNNN".
func parseNumber(name, prefix string) (int, bool) {
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	digits := name[len(prefix):]
	if len(digits) < 4 {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
