package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"path"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/mbakken/pontoon"
	"github.com/mbakken/pontoon/geom"
	"github.com/mbakken/pontoon/io"
)

func main() {
	var (
		design, plotDir string
		exampleConfig   bool
	)

	flag.StringVar(
		&design, "Design", "",
		"Design configuration file describing the assembly.",
	)
	flag.StringVar(
		&plotDir, "PlotDir", "",
		"Directory which view figures will be written to. No figures are "+
			"drawn if empty.",
	)
	flag.BoolVar(
		&exampleConfig, "ExampleConfig", false,
		"Prints an example design file to stdout.",
	)

	flag.Parse()

	if exampleConfig {
		fmt.Println(io.ExampleDesignFile)
		return
	}
	if design == "" {
		log.Fatal("A design file must be given with -Design.")
	}

	con, root, err := io.ReadDesignFile(design)
	if err != nil {
		log.Fatal(err.Error())
	}

	fmt.Print(root.Tree())

	cg, weight, err := pontoon.ComputeCG(root)
	if err != nil {
		log.Fatal(err.Error())
	}

	eq, err := pontoon.ComputeCB(root, con.PoleLength, con.FluidDensity)
	if errors.Is(err, pontoon.ErrInfeasibleEquilibrium) {
		log.Printf("Warning: %s", err.Error())
	} else if err != nil {
		log.Fatal(err.Error())
	}

	bm := pontoon.MetacentricRadius(
		con.PoleRadius, con.PoleHalfSpan, eq.DisplacedVolume, con.PoleCount,
	)

	fmt.Printf(
		"\nTotal weight:     %8.3f kg\n"+
			"Displaced volume: %8.4f m^3\n"+
			"Submersion rate:  %8.4f\n"+
			"Submersion depth: %8.4f m\n"+
			"CG: %7.4f %7.4f %7.4f\n"+
			"CB: %7.4f %7.4f %7.4f\n"+
			"BM: %7.4f %7.4f %7.4f\n",
		weight, eq.DisplacedVolume, eq.Rate, eq.Depth,
		cg[0], cg[1], cg[2],
		eq.CB[0], eq.CB[1], eq.CB[2],
		bm[0], bm[1], bm[2],
	)

	if plotDir != "" {
		plotViews(plotDir, cg, eq.CB, eq.CB.Add(bm))
	}
}

type view struct {
	name         string
	xAxis, yAxis int
}

// plotViews draws the metacentre, CG and CB in the three axis-aligned views
// the original design studies used.
func plotViews(dir string, cg, cb, metacentre geom.Vec) {
	views := []view{
		{"TopView", 1, 0},
		{"SideView", 0, 2},
		{"FrontView", 1, 2},
	}
	labels := []string{"X", "Y", "Z"}

	plt.Reset()
	for _, v := range views {
		plt.Figure()
		plt.Plot(
			[]float64{metacentre[v.xAxis]}, []float64{metacentre[v.yAxis]},
			"^b",
		)
		plt.Plot([]float64{cg[v.xAxis]}, []float64{cg[v.yAxis]}, "ok")
		plt.Plot([]float64{cb[v.xAxis]}, []float64{cb[v.yAxis]}, "sr")
		plt.Title(fmt.Sprintf(
			"%s (blue: CB+BM, black: CG, red: CB)", v.name,
		))
		plt.XLabel(labels[v.xAxis], plt.FontSize(16))
		plt.YLabel(labels[v.yAxis], plt.FontSize(16))
		plt.SaveFig(path.Join(dir, fmt.Sprintf("figure_%s.png", v.name)))
	}
	plt.Execute()
}
