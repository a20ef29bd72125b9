package main

import (
	"fmt"
	"os"
)

const usage = "Encode: flimage encode-to-bmp|encode-to-png <input-file>\n" +
	"Decode: flimage decode-from-bmp|decode-from-png <image-file>\n"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// no arguments is a no-op, same as running one of the tools bare
	if len(args) == 0 {
		return 0
	}

	mode := args[0]
	var encode bool
	var adapter Adapter
	switch mode {
	case "encode-to-bmp":
		encode, adapter = true, BMPAdapter{}
	case "decode-from-bmp":
		encode, adapter = false, BMPAdapter{}
	case "encode-to-png":
		encode, adapter = true, PNGAdapter{}
	case "decode-from-png":
		encode, adapter = false, PNGAdapter{}
	default:
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	if len(args) < 2 {
		return 0
	}
	if len(args) > 2 {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}
	inputPath := args[1]

	if encode {
		outPath, err := NewEncoder(adapter).EncodeFile(inputPath, ".")
		if err != nil {
			fmt.Fprintln(os.Stderr, "encode error:", err)
			return 1
		}
		fmt.Printf("Encoded %s → %s\n", inputPath, outPath)
		return 0
	}

	outPath, err := NewDecoder(adapter).DecodeFile(inputPath, ".")
	if err != nil {
		fmt.Fprintln(os.Stderr, "decode error:", err)
		return 1
	}
	fmt.Printf("Decoded %s → %s\n", inputPath, outPath)
	return 0
}
