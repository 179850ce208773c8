package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anggasct/signalctl"
	"github.com/anggasct/signalctl/shell"
	"github.com/anggasct/signalctl/visualization"
)

var (
	rankdir = flag.String("rankdir", "TB", "Graph layout direction. Expected values: TB / LR / BT / RL")
	out     = flag.String("out", "", "Write the graph to this file instead of stdout")
)

func main() {
	flag.Parse()

	store, err := signalctl.NewStore(signalctl.DefaultLocations())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg := signalctl.DefaultConfig()
	session := shell.NewSession(cfg, store, cfg.Policy(), strings.NewReader(""), io.Discard, shell.Options{})

	opts := visualization.DefaultDOTOptions()
	opts.Title = "Traffic Signal Menu"
	opts.RankDirection = *rankdir
	opts.Labels = menuLabels()

	generator := visualization.NewDOTGenerator(shell.BuildMenuMachine(session), opts)
	if *out != "" {
		err = generator.GenerateToFile(*out)
	} else {
		_, err = generator.WriteTo(os.Stdout)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func menuLabels() map[string]string {
	labels := map[string]string{shell.StateMainMenu: "Main Menu"}
	for _, item := range shell.Menu() {
		labels[item.State] = fmt.Sprintf("%d. %s", item.Choice, item.Label)
	}
	return labels
}
