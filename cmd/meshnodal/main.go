package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"meshnodal/pkg/analysis"
	"meshnodal/pkg/config"
	"meshnodal/pkg/netlist"
	"meshnodal/pkg/util"
)

func getKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func printPoint(results map[string][]float64) {
	for _, name := range getKeys(results) {
		if name == "SWEEP1" {
			continue
		}
		series := results[name]
		if len(series) == 0 {
			continue
		}
		unit := "V"
		if strings.HasPrefix(name, "I(") {
			unit = "A"
		}
		fmt.Printf("  %-12s = %s\n", name, util.FormatValueFactor(series[0], unit))
	}
}

func printSweep(results map[string][]float64) {
	sweep := results["SWEEP1"]
	names := make([]string, 0)
	for _, name := range getKeys(results) {
		if name != "SWEEP1" {
			names = append(names, name)
		}
	}

	fmt.Printf("\nSweep Results (%d points):\n", len(sweep))
	fmt.Printf("%-12s", "SWEEP")
	for _, name := range names {
		fmt.Printf("%-14s", name)
	}
	fmt.Println()
	for i, v := range sweep {
		fmt.Printf("%-12g", v)
		for _, name := range names {
			fmt.Printf("%-14g", results[name][i])
		}
		fmt.Println()
	}
}

func printWarnings(res *analysis.Result) {
	for _, w := range res.Warnings {
		fmt.Printf("warning: branch %s skipped: %s\n", w.BranchID, w.Detail)
	}
}

func main() {
	configPath := flag.String("config", "", "YAML solver configuration")
	meshFlag := flag.Bool("mesh", false, "also decompose into loop currents")
	sweepArg := flag.String("sweep", "", "sweep one source: \"NAME start stop step\"")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: meshnodal [-config cfg.yaml] [-mesh] [-sweep \"V1 0 10 1\"] circuit.cir")
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *meshFlag {
		cfg.Mesh = true
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	deck, err := netlist.Parse(string(data))
	if err != nil {
		log.Fatalf("parsing netlist: %v", err)
	}
	ckt, err := deck.BuildCircuit()
	if err != nil {
		log.Fatalf("building circuit: %v", err)
	}

	if deck.Title != "" {
		fmt.Printf("Circuit: %s\n", deck.Title)
	}

	if *sweepArg != "" {
		var name string
		var start, stop, step float64
		if _, err := fmt.Sscanf(*sweepArg, "%s %g %g %g", &name, &start, &stop, &step); err != nil {
			log.Fatalf("bad sweep argument %q: %v", *sweepArg, err)
		}
		sweep := analysis.NewSweep(name, start, stop, step)
		if err := sweep.Setup(ckt); err != nil {
			log.Fatal(err)
		}
		if err := sweep.Execute(); err != nil {
			log.Fatal(err)
		}
		printSweep(sweep.GetResults())
		return
	}

	if cfg.Mesh {
		ma := analysis.NewMeshWithBackend(cfg.Backend())
		if err := ma.Setup(ckt); err != nil {
			log.Fatal(err)
		}
		if err := ma.Execute(); err != nil {
			log.Fatal(err)
		}
		res := ma.Result()
		printWarnings(res)
		fmt.Println("\nOperating Point:")
		printPoint(ma.GetResults())
		fmt.Printf("\nLoop currents (%d components):\n", res.Components)
		for i, m := range res.MeshCurrents {
			fmt.Printf("  mesh %d [%s] = %s\n",
				i+1, strings.Join(res.Cycles[i], "-"), util.FormatValueFactor(m, "A"))
		}
		return
	}

	nodal := analysis.NewNodalWithBackend(cfg.Backend())
	if err := nodal.Setup(ckt); err != nil {
		log.Fatal(err)
	}
	if err := nodal.Execute(); err != nil {
		log.Fatal(err)
	}
	printWarnings(nodal.Result())
	fmt.Println("\nOperating Point:")
	printPoint(nodal.GetResults())
}
