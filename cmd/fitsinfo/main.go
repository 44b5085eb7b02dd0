// fitsinfo inspects and serves FITS files.
package main

import "github.com/robert-malhotra/go-fits/cmd/fitsinfo/cmd"

func main() {
	cmd.Execute()
}
