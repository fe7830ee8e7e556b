package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/config"
	"github.com/shopspring/decimal"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <config-file>")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	engine, err := calc.NewCalculationEngineWithConfig(cfg.GlobalAssumptions.TaxTableYear, decimal.Zero)
	if err != nil {
		panic(err)
	}
	res, err := engine.RunScenarios(context.Background(), cfg)
	if err != nil {
		panic(err)
	}
	if len(res.Scenarios) < 1 {
		fmt.Println("no scenarios")
		return
	}

	for _, s := range res.Scenarios {
		fmt.Printf("# %s\n", s.Name)
		if len(s.AlternativeWealth) == 0 {
			fmt.Println("no capital-market alternative configured")
			continue
		}

		fmt.Println("Index,Year,Property,Alternative,Diff")
		n := min(len(s.PropertyWealth), len(s.AlternativeWealth), len(s.Records))
		for i := 0; i < n; i++ {
			prop := s.PropertyWealth[i]
			alt := s.AlternativeWealth[i]
			fmt.Printf("%d,%d,%s,%s,%s\n", i, s.Records[i].Year, prop.StringFixed(0), alt.StringFixed(0), prop.Sub(alt).StringFixed(0))
		}

		be, err := calc.FindWealthBreakEven(s.Params.StartYear, s.PropertyWealth, s.AlternativeWealth)
		fmt.Printf("\nBreakEven: %+v, err=%v\n\n", be, err)
	}
}
