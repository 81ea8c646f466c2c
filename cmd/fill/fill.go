// fill pads a memory image to the full depth of the instruction memory:
//
//	./fill main.txt main.coe
//
// main.txt holds one 8-bit binary word per line. The output holds the same
// words followed by 00000000 lines, 8192 lines in total. An input that does
// not fit is rejected and no output is written.
package main

import (
	"fmt"
	"os"

	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/logx"
	"github.com/YanWQ-monad/SUSTech-CS202-Project-CPU/internal/memimage"
)

func main() {
	log := logx.NewLogToX(logx.NewConsoleLogger(os.Stderr, logx.INFO, logx.ColorAuto), "fill")

	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: fill <input> <output>")
		os.Exit(2)
	}
	in, out := os.Args[1], os.Args[2]

	n, err := memimage.PadFile(in, out)
	if err != nil {
		log.LogPrintln(logx.ERROR, err)
		os.Exit(1)
	}
	log.LogPrintf(logx.INFO, "%s: %d words padded to %d", out, n, memimage.Depth)
}
