// Command genpaths precomputes the all-pairs shortest paths for a school
// graph and writes the room-to-room route table and distance table consumed
// by cmd/routeopt.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/ashgrove-school/routeopt/internal/apsp"
	"github.com/ashgrove-school/routeopt/internal/ioformat"
	"github.com/ashgrove-school/routeopt/internal/schoolgraph"
)

func main() {
	graphPath := flag.String("graph", "data/paths.txt", "edge-list file")
	outPaths := flag.String("out-paths", "data/shortest_paths.json", "output file for the room-to-room route table")
	outDistances := flag.String("out-distances", "data/distances.json", "output file for the room-to-room distance table")
	flag.Parse()

	g, err := schoolgraph.Load(*graphPath)
	if err != nil {
		log.Printf("genpaths: %s", err)
		os.Exit(1)
	}

	table := apsp.Build(g)

	if err := ioformat.WriteShortestPaths(*outPaths, g, table); err != nil {
		log.Printf("genpaths: %s", err)
		os.Exit(1)
	}
	if err := ioformat.WriteDistances(*outDistances, g, table); err != nil {
		log.Printf("genpaths: %s", err)
		os.Exit(1)
	}
}
