/*
Package tambour is an embroidery pattern library. It holds stitch designs in a
format independent model, transforms them, and transcodes them so that they fit
the physical limits of a target file format or machine.

Coordinates are absolute and expressed in 0.1mm units. Every stitch carries a
command word whose low byte is the action (STITCH, JUMP, TRIM, COLOR_CHANGE...)
and whose upper bytes may hold thread, needle and order metadata.

The package provides a command line interface for converting between the
supported formats. To check the supported commands type:

	$ tambour --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"

		"github.com/esimov/tambour"
	)

	func main() {
		p := tambour.NewPattern()
		p.AddThread(tambour.NewThread(0xFF0000))
		p.Stitch(100, 0)
		p.Stitch(0, 300)
		p.End()

		out, err := tambour.Transcode(p, tambour.DSTSettings())
		if err != nil {
			fmt.Printf("Error transcoding pattern: %s", err.Error())
		}
		fmt.Println(out.CountStitches())
	}

Reading and writing files is handled by the format package and its
subpackages.
*/
package tambour
