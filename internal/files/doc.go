// Package files provides source file discovery and reading for the auelect tools.
//
// FindCSVFiles lists the CSV exports in a directory in name order. OpenSource and
// NewSourceReader decode sources as UTF-8 and drop a leading byte order mark,
// so the first header of a spreadsheet-saved export matches like any other.
//
// Example usage:
//
//	sources, err := files.FindCSVFiles("data/raw")
//	for _, src := range sources {
//	    rc, err := files.OpenSource(src.Path)
//	    ...
//	    rc.Close()
//	}
package files
