package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var taskTitlePattern = regexp.MustCompile(`(?i)Task\s+(\w+)`)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
}

// sortKey orders a remote task: explicit sequence first, then the number
// word of a "Task One" style title, then the numeric id.
func sortKey(sequence *int, title, id string) int {
	if sequence != nil && *sequence != 0 {
		return *sequence
	}
	if m := taskTitlePattern.FindStringSubmatch(title); m != nil {
		if n := numberWords[strings.ToLower(m[1])]; n > 0 {
			return n
		}
	}
	n, _ := strconv.Atoi(id)
	return n
}

type sortable struct {
	key int
	row supabaseTask
}

func sortTasks(rows []supabaseTask) []supabaseTask {
	items := make([]sortable, len(rows))
	for i, r := range rows {
		items[i] = sortable{key: sortKey(r.Sequence, r.Title, r.ID.String()), row: r}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].key < items[j].key })

	out := make([]supabaseTask, len(items))
	for i, it := range items {
		out[i] = it.row
	}
	return out
}
