/*
Package seamcarve is a content aware image resize library, which reduces the width
of an image by repeatedly removing the vertical seam of lowest energy,
leaving the important parts of the image untouched.

The package provides a command line interface, supporting various flags for
protecting image regions and for visualizing the removed seams.
To check the supported commands type:

	$ seamcarve --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/esimov/seamcarve"
	)

	func main() {
		c, err := seamcarve.NewCarverFromImage(img)
		if err != nil {
			fmt.Printf("Error creating the carver: %s", err.Error())
		}
		if err := c.ResizeWidth(100); err != nil {
			fmt.Printf("Error rescaling image: %s", err.Error())
		}
		resized := c.ResizedPicture()
		seams := c.PathPicture()
	}
*/
package seamcarve
