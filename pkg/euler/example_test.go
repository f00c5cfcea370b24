package euler_test

import (
	"fmt"

	"github.com/matzehuels/eulerdraw/pkg/euler"
)

func ExampleParse() {
	d, err := euler.Parse("abc ab a b c ac bc")
	if err != nil {
		panic(err)
	}
	fmt.Println("Zones:", d.Informal())
	fmt.Println("Labels:", d.Labels())
	fmt.Println("Zones with c:", d.ZoneCount("c"))
	// Output:
	// Zones: a b c ab ac bc abc
	// Labels: [a b c]
	// Zones with c: 4
}

func ExampleDescription_Slot() {
	host := euler.MustParse("a b ab")
	guest := euler.MustParse("c")

	d, err := host.Slot(euler.MustZone("ab"), guest)
	if err != nil {
		panic(err)
	}
	fmt.Println(d)
	fmt.Println(d.Without("c"))
	// Output:
	// a b ab abc
	// a b ab
}

func ExampleAbstractZone_StraddledLabel() {
	l, ok := euler.MustZone("ab").StraddledLabel(euler.MustZone("abc"))
	fmt.Println(l, ok)
	// Output:
	// c true
}
