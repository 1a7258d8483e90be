package plan_test

import (
	"context"
	"fmt"
	"image"

	"github.com/matzehuels/cannon/pkg/coverage"
	"github.com/matzehuels/cannon/pkg/plan"
)

func ExamplePropulsion() {
	fmt.Println(plan.Propulsion(100, plan.ParityA))
	fmt.Println(plan.Propulsion(3, plan.ParityB))
	// Output:
	// 402
	// 13
}

func ExampleSelect() {
	m := coverage.FromRects(image.Rect(200, 100, 207, 107))
	sel, err := plan.Select(context.Background(), m, plan.SelectOptions{})
	if err != nil {
		panic(err)
	}
	best := sel.Best
	fmt.Println(best.ShotCount, best.Shots[0].Row, best.Shots[0].Col)
	fmt.Println(best.Accuracy, best.Efficiency, best.Miss)
	// Output:
	// 1 103 203
	// 100 100 0
}
