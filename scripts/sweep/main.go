package main

import (
	"fmt"
	"log"
	"os"

	plt "github.com/phil-mansfield/pyplot"
	"github.com/phil-mansfield/table"

	"github.com/mbakken/pontoon"
	"github.com/mbakken/pontoon/geom"
	"github.com/mbakken/pontoon/io"
)

// Recomputes the equilibrium of a design across a table of conditions. The
// table has two columns: fluid density in kg/m^3 and extra ballast in kg
// hung at the root. Writes a text report and a rate-vs-density figure.
func main() {
	if len(os.Args) != 4 {
		log.Fatalf(
			"Usage: $ %s design_file sweep_table out_prefix", os.Args[0],
		)
	}
	designFile, sweepFile, outPrefix := os.Args[1], os.Args[2], os.Args[3]

	cols, err := table.ReadTable(sweepFile, []int{0, 1}, nil)
	if err != nil {
		log.Fatal(err.Error())
	}
	densities, ballasts := cols[0], cols[1]

	rates := make([]float64, len(densities))
	depths := make([]float64, len(densities))

	for i := range densities {
		// The tree is immutable once built, so each condition gets a fresh
		// one with its own ballast component.
		con, root, err := io.ReadDesignFile(designFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		if ballasts[i] != 0 {
			root.Attach(pontoon.NewComponent(
				"sweep ballast", ballasts[i], 0, pontoon.NotSubmerged,
			), geom.Vec{})
		}

		eq, err := pontoon.ComputeCB(root, con.PoleLength, densities[i])
		if err != nil {
			// Infeasible conditions stay in the report so the edge of the
			// feasible region is visible.
			log.Printf("Row %d: %s", i, err.Error())
		}
		if eq == nil {
			log.Fatalf("Row %d: no equilibrium computed.", i)
		}

		rates[i], depths[i] = eq.Rate, eq.Depth
	}

	printReport(outPrefix+"_sweep.txt", densities, ballasts, rates, depths)

	plt.Reset()
	plt.Figure()
	plt.Plot(densities, rates, "ok")
	plt.XLabel("Fluid density [kg/m^3]", plt.FontSize(16))
	plt.YLabel("Submersion rate", plt.FontSize(16))
	plt.SaveFig(outPrefix + "_rate.png")
	plt.Execute()
}

func printReport(fname string, densities, ballasts, rates, depths []float64) {
	f, err := os.Create(fname)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer f.Close()

	fmt.Fprintln(f, "# density [kg/m^3]  ballast [kg]  rate  depth [m]")
	for i := range densities {
		fmt.Fprintf(
			f, "%9.4g %9.4g %9.4g %9.4g\n",
			densities[i], ballasts[i], rates[i], depths[i],
		)
	}
}
