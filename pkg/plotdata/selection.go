package plotdata

import (
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/clawplot/pkg/errors"
)

// Selection chooses frames or figures by number. The zero value selects
// nothing.
type Selection struct {
	All   bool
	Items []int
}

// SelectAll selects every number.
func SelectAll() Selection {
	return Selection{All: true}
}

// Select selects exactly the given numbers.
func Select(nums ...int) Selection {
	items := append([]int(nil), nums...)
	sort.Ints(items)
	return Selection{Items: items}
}

// Contains reports whether n is selected.
func (s Selection) Contains(n int) bool {
	if s.All {
		return true
	}
	for _, v := range s.Items {
		if v == n {
			return true
		}
	}
	return false
}

// Filter returns the selected elements of nums, keeping their order.
func (s Selection) Filter(nums []int) []int {
	var out []int
	for _, n := range nums {
		if s.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// String returns "all" or a comma separated list.
func (s Selection) String() string {
	if s.All {
		return "all"
	}
	parts := make([]string, len(s.Items))
	for i, n := range s.Items {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// Value returns the TOML representation: "all" or an integer array.
func (s Selection) Value() any {
	if s.All {
		return "all"
	}
	items := s.Items
	if items == nil {
		items = []int{}
	}
	return items
}

// MaxSelectionSize bounds the number of entries ParseSelection expands
// ranges into.
const MaxSelectionSize = 100000

// ParseSelection parses "all", "" (also all), or a comma separated list
// of numbers and inclusive ranges such as "0,2,5-8".
func ParseSelection(s string) (Selection, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return SelectAll(), nil
	}
	var nums []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if lo, hi, ok := strings.Cut(part, "-"); ok && lo != "" {
			a, err1 := strconv.Atoi(strings.TrimSpace(lo))
			b, err2 := strconv.Atoi(strings.TrimSpace(hi))
			if err1 != nil || err2 != nil || a > b || a < 0 {
				return Selection{}, errors.New(errors.ErrCodeInvalidInput, "invalid range %q", part)
			}
			if b-a >= MaxSelectionSize-len(nums) {
				return Selection{}, errors.New(errors.ErrCodeInvalidInput, "range %q selects more than %d numbers", part, MaxSelectionSize)
			}
			for n := a; n <= b; n++ {
				nums = append(nums, n)
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Selection{}, errors.New(errors.ErrCodeInvalidInput, "invalid number %q", part)
		}
		nums = append(nums, n)
	}
	return Select(nums...), nil
}

// SelectionFromValue converts a decoded TOML value: a missing value or
// "all" selects everything, an integer array selects those numbers, and
// a string is parsed with ParseSelection.
func SelectionFromValue(v any) (Selection, error) {
	switch v := v.(type) {
	case nil:
		return SelectAll(), nil
	case string:
		return ParseSelection(v)
	case []any:
		nums := make([]int, 0, len(v))
		for _, e := range v {
			n, ok := e.(int64)
			if !ok || n < 0 {
				return Selection{}, errors.New(errors.ErrCodeInvalidPlotData, "selection entries must be non-negative integers, got %v", e)
			}
			nums = append(nums, int(n))
		}
		return Select(nums...), nil
	}
	return Selection{}, errors.New(errors.ErrCodeInvalidPlotData, "selection must be \"all\" or an integer array, got %T", v)
}
