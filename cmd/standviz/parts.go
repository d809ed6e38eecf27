package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/standviz/pkg/mesh"
	"github.com/philipparndt/standviz/pkg/stand"
	"github.com/spf13/cobra"
)

var partsCmd = &cobra.Command{
	Use:   "parts",
	Short: "Print the placement list and overall dimensions",
	Long:  "Build the stand for the selected parameters and list every primitive in emission order, followed by a summary.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printParts(cmd.OutOrStdout(), cfg.Params)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(partsCmd)
}

func printParts(w io.Writer, p stand.Params) {
	placements := stand.Build(p)
	summary := stand.Summarize(placements)

	fmt.Fprintln(w, "Cooling Stand")
	fmt.Fprintln(w, "=============")
	fmt.Fprintf(w, "Parameters: %s\n\n", p)

	fmt.Fprintln(w, "Placements:")
	for i, pl := range placements {
		size := fmt.Sprintf("%.1f x %.1f x %.1f", pl.Size.X, pl.Size.Y, pl.Size.Z)
		if pl.Shape == stand.Cylinder {
			size = fmt.Sprintf("r %.1f h %.1f", pl.Radius, pl.Height)
		}
		fmt.Fprintf(w, "  %2d  %-14s %-8s %-22s at %s\n", i+1, pl.Part, pl.Shape, size, stand.FormatVector(pl.Center))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Parts:")
	for _, pc := range summary.PartsByCount() {
		fmt.Fprintf(w, "  %-14s %d\n", pc.Part, pc.Count)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Dimensions:")
	fmt.Fprintf(w, "  Width (X): %.1f mm\n", summary.Dimensions.X)
	fmt.Fprintf(w, "  Depth (Y): %.1f mm\n", summary.Dimensions.Y)
	fmt.Fprintf(w, "  Height (Z): %.1f mm\n", summary.Dimensions.Z)
	fmt.Fprintf(w, "  Seat height: %.1f mm\n", summary.SeatHeight)
	fmt.Fprintf(w, "  Primitives: %d\n\n", summary.Primitives)

	stats := mesh.Measure(placements)
	fmt.Fprintln(w, "Tessellation:")
	fmt.Fprintf(w, "  Triangles: %d\n", stats.Triangles)
	fmt.Fprintf(w, "  Outline edges: %d\n", stats.OutlineEdges)
	fmt.Fprintf(w, "  Surface area: %.0f mm²\n", stats.SurfaceArea)
	fmt.Fprintf(w, "  Edge length: %.1f to %.1f mm (avg %.1f)\n", stats.MinEdgeLength, stats.MaxEdgeLength, stats.AvgEdgeLength)
}
