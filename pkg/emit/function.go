package emit

import (
	"bufio"
	"fmt"
	"io"
)

// WriteFunction writes one give command per box of every module.
// Boxes are named after their module and numbered from 1.
func WriteFunction(w io.Writer, mods []*Module) error {
	bw := bufio.NewWriter(w)
	for _, m := range mods {
		for i, b := range m.Boxes {
			fmt.Fprintf(bw, `give @s red_shulker_box{display:{Name:'"%s #%d"'},BlockEntityTag:{Items:[`, m.Name, i+1)
			for slot, it := range b.Items {
				if slot > 0 {
					bw.WriteByte(',')
				}
				fmt.Fprintf(bw, "{Slot:%d,id:%s,Count:%d}", slot, it.ID(), it.Count)
			}
			bw.WriteString("]}}\n")
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write function: %w", err)
	}
	return nil
}
