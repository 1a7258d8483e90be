// Package order turns the winning placement into a firing sequence.
//
// Each shot's launch cost is split into on/off flags over a fixed table of
// [Denominations], one copy per axis, by greedy largest-first subtraction
// ([Decompose]). A slot is "on" when its charge fires for that shot.
//
// [Order] counts how often each slot fires across the whole plan, ranks the
// slots by that count ([SlotPriority]) and stable-sorts the shots so that
// shots with the same activation pattern sit next to each other. Grouping
// like patterns keeps the charge modules emitted downstream short.
package order
