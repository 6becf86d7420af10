// Package allocator distributes a study-minute budget across subjects.
//
// Every subject first receives its minimum. When the minimums do not fit they
// are scaled down, floored at MinBlockMinutes, and the lowest priority
// subjects are dropped until they fit. Whatever is left is shared in
// proportion to priority, with rounding shortfalls handed out one minute at a
// time round-robin.
package allocator

import (
	"math"
	"sort"

	"github.com/kilianp07/studyplan/core/model"
)

// MinBlockMinutes is both the floor applied to scaled minimums and the
// smallest block kept in the final allocation.
const MinBlockMinutes = 10

// FocusMultiplier is applied to the priority of the focus subject.
const FocusMultiplier = 2

// Allocate returns one block per surviving subject. focus names the subject
// whose priority is doubled; an empty focus disables the bonus. The input
// slice is never modified.
func Allocate(subjects []model.Subject, totalMinutes int, focus string) []model.RawBlock {
	return dropShortBlocks(allocate(subjects, totalMinutes, focus))
}

// allocate runs every step except the final short-block filter.
func allocate(subjects []model.Subject, totalMinutes int, focus string) []model.RawBlock {
	list := applyFocusBonus(subjects, focus)
	if len(list) == 0 || totalMinutes <= 0 {
		return []model.RawBlock{}
	}

	list, sumMin := fitMinimums(list, totalMinutes)
	if len(list) == 0 {
		return []model.RawBlock{}
	}

	remaining := totalMinutes - sumMin
	if remaining < 0 {
		remaining = 0
	}
	totalWeight := 0
	blocks := make([]model.RawBlock, len(list))
	for i, s := range list {
		totalWeight += s.Priority
		blocks[i] = model.RawBlock{Subject: s.Name, Minutes: s.MinMinutes}
	}

	if remaining > 0 && totalWeight > 0 {
		distribute(list, blocks, remaining, totalWeight)
	}
	return blocks
}

// applyFocusBonus copies subjects and doubles the priority of every subject
// matching focus case-insensitively.
func applyFocusBonus(subjects []model.Subject, focus string) []model.Subject {
	list := make([]model.Subject, len(subjects))
	copy(list, subjects)
	if focus == "" {
		return list
	}
	for i := range list {
		if list[i].Matches(focus) {
			list[i].Priority *= FocusMultiplier
		}
	}
	return list
}

// fitMinimums scales the minimums down when their sum exceeds the budget and,
// if they still do not fit, drops subjects from the lowest priority upwards.
// The returned slice is in ascending priority order whenever subjects had to
// be dropped, and in input order otherwise.
func fitMinimums(list []model.Subject, totalMinutes int) ([]model.Subject, int) {
	sumMin := sumMinimums(list)
	if sumMin <= totalMinutes {
		return list, sumMin
	}

	factor := float64(totalMinutes) / float64(sumMin)
	for i := range list {
		scaled := int(math.Round(float64(list[i].MinMinutes) * factor))
		if scaled < MinBlockMinutes {
			scaled = MinBlockMinutes
		}
		list[i].MinMinutes = scaled
	}
	sumMin = sumMinimums(list)
	if sumMin <= totalMinutes {
		return list, sumMin
	}

	sort.SliceStable(list, func(i, j int) bool { return list[i].Priority < list[j].Priority })
	for sumMin > totalMinutes && len(list) > 0 {
		sumMin -= list[0].MinMinutes
		list = list[1:]
	}
	return list, sumMin
}

// distribute adds each subject's proportional share of remaining to its block.
// Rounding may hand out more than remaining; that overshoot is kept. A
// shortfall is spread one minute at a time over the blocks in order.
func distribute(list []model.Subject, blocks []model.RawBlock, remaining, totalWeight int) {
	distributed := 0
	for i, s := range list {
		extra := int(math.Round(float64(remaining) * float64(s.Priority) / float64(totalWeight)))
		blocks[i].Minutes += extra
		distributed += extra
	}
	for i := 0; distributed < remaining; i++ {
		blocks[i%len(blocks)].Minutes++
		distributed++
	}
}

func dropShortBlocks(blocks []model.RawBlock) []model.RawBlock {
	kept := blocks[:0]
	for _, b := range blocks {
		if b.Minutes >= MinBlockMinutes {
			kept = append(kept, b)
		}
	}
	return kept
}

func sumMinimums(list []model.Subject) int {
	sum := 0
	for _, s := range list {
		sum += s.MinMinutes
	}
	return sum
}
