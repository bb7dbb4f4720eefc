package confit_test

import (
	"fmt"
	"os"

	"github.com/thoreinstein/confit/pkg/confit"
	"github.com/thoreinstein/confit/pkg/format"
)

type Settings struct {
	Theme string `json:"theme" yaml:"theme" toml:"theme"`
	Width int    `json:"width" yaml:"width" toml:"width"`
}

func (s *Settings) SetDefaults() {
	s.Theme = "dark"
	s.Width = 80
}

func ExampleLoadOrInit() {
	root, err := os.MkdirTemp("", "confit-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(root)

	s, err := confit.LoadOrInit[Settings]("myapp", "settings", format.TOML, confit.WithRoot(root))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(s.Theme, s.Width)

	s.Width = 120
	if err := confit.Store("myapp", "settings", format.TOML, s, confit.WithRoot(root)); err != nil {
		fmt.Println(err)
		return
	}

	s, err = confit.LoadOrInit[Settings]("myapp", "settings", format.TOML, confit.WithRoot(root))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(s.Theme, s.Width)
	// Output:
	// dark 80
	// dark 120
}
