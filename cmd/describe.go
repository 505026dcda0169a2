package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/toposim/toposim/config"
	"github.com/toposim/toposim/internal/testtopology"
	"github.com/toposim/toposim/pattern"
	"github.com/toposim/toposim/rng"
)

var (
	describeFixturePath string
	describeConfigPath  string
	describeSeed        int64
	describeSamples     int
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Build a Pattern over the internal/testtopology fixture and print sample destinations",
	Run: func(cobraCmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		fixture, err := config.LoadFixtureSpec(describeFixturePath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		topo := testtopology.New(fixture.Routers, fixture.Concentration)

		raw, err := os.ReadFile(describeConfigPath)
		if err != nil {
			logrus.Fatalf("reading pattern config %s: %v", describeConfigPath, err)
		}
		cv, err := config.Parse(string(raw))
		if err != nil {
			logrus.Fatalf("parsing pattern config %s: %v", describeConfigPath, err)
		}

		prng := rng.New(rng.NewSimulationKey(describeSeed))
		p := pattern.Build(cv, prng)
		n := topo.NumServers()
		p.Initialize(n, n, topo, prng.ForSubsystem(rng.SubsystemGlobal))

		samples := describeSamples
		if samples > n {
			samples = n
		}
		for origin := 0; origin < samples; origin++ {
			dest := p.GetDestination(origin, topo, prng.ForSubsystem(rng.SubsystemGlobal))
			fmt.Printf("%d -> %d\n", origin, dest)
		}
	},
}

func init() {
	describeCmd.Flags().StringVar(&describeFixturePath, "fixture", "", "path to a topology fixture YAML file")
	describeCmd.Flags().StringVar(&describeConfigPath, "pattern", "", "path to a Pattern ConfigValue text file")
	describeCmd.Flags().Int64Var(&describeSeed, "seed", 1, "simulation key seed")
	describeCmd.Flags().IntVar(&describeSamples, "samples", 16, "number of origins to sample")
	describeCmd.MarkFlagRequired("fixture")
	describeCmd.MarkFlagRequired("pattern")
}
