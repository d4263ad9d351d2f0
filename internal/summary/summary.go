// Package summary describes executed instruction batches as a readable
// change log.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sha1n/mcp-docs-server/internal/domain"
)

const maxQuoted = 60

// Build returns one line per instruction. replies holds the per-instruction
// reply objects reported by the document service and may be shorter than
// instrs or nil.
func Build(instrs []domain.Instruction, replies []map[string]any) []string {
	lines := make([]string, 0, len(instrs))
	for i, ins := range instrs {
		line := describe(ins)
		if i < len(replies) && len(replies[i]) > 0 {
			line += " (reply: " + strings.Join(replyKeys(replies[i]), ", ") + ")"
		}
		lines = append(lines, line)
	}
	return lines
}

// Format renders Build's output as a numbered list.
func Format(instrs []domain.Instruction, replies []map[string]any) string {
	return Join(Build(instrs, replies))
}

// Join renders summary lines as a numbered list.
func Join(lines []string) string {
	if len(lines) == 0 {
		return "No changes applied."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Applied %d change(s):\n", len(lines))
	for i, line := range lines {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, line)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func describe(ins domain.Instruction) string {
	switch in := ins.(type) {
	case domain.InsertText:
		return fmt.Sprintf("Inserted %s at index %d", quote(in.Text), in.Index)
	case domain.DeleteRange:
		return fmt.Sprintf("Deleted range [%d, %d)", in.Start, in.End)
	case domain.SetParagraphStyle:
		return fmt.Sprintf("Set paragraph style %s on [%d, %d)", fieldList(in.Fields), in.Start, in.End)
	case domain.SetTextStyle:
		return fmt.Sprintf("Set text style %s on [%d, %d)", fieldList(in.Fields), in.Start, in.End)
	case domain.CreateBullets:
		return fmt.Sprintf("Created bullets (%s) on [%d, %d)", in.Preset, in.Start, in.End)
	case nil:
		return "Applied unknown request"
	default:
		return fmt.Sprintf("Applied %s request", ins.Kind())
	}
}

func quote(s string) string {
	r := []rune(s)
	if len(r) > maxQuoted {
		return fmt.Sprintf("%q...", string(r[:maxQuoted]))
	}
	return fmt.Sprintf("%q", s)
}

func fieldList(fields []string) string {
	if len(fields) == 0 {
		return "(no fields)"
	}
	return "(" + strings.Join(fields, ", ") + ")"
}

func replyKeys(reply map[string]any) []string {
	keys := make([]string, 0, len(reply))
	for k := range reply {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
