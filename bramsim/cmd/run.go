package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/bram/datarecording"
	"github.com/sarchlab/bram/mem/bram"
	"github.com/sarchlab/bram/mem/bram/trace"
	"github.com/sarchlab/bram/monitoring"
	"github.com/sarchlab/bram/sim"
	"github.com/sarchlab/bram/sim/naming"
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a block RAM over a stimulus file.",
		Long: "`run --init FILE --depth N --width M --stimulus CSV` evaluates " +
			"one cycle per stimulus record and prints the value emitted by " +
			"the memory in each cycle.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulation(cmd)
		},
	}

	runCmd.Flags().String("name", "BRAM", "name of the memory")
	runCmd.Flags().String("init", "",
		"memory initialization file; all cells start undefined if empty")
	runCmd.Flags().Int("depth", 0, "number of words")
	runCmd.Flags().Int("width", 8, "number of bits per word")
	runCmd.Flags().String("stimulus", "-",
		"CSV file with one cycle per record, - for stdin")
	runCmd.Flags().String("domain", "Clk", "name of the clock domain")
	runCmd.Flags().Float64("freq", 1e9, "clock frequency in Hz")
	runCmd.Flags().String("record", "",
		"record every cycle into RECORD.sqlite3")
	runCmd.Flags().Bool("monitor", false, "serve the memory state over HTTP")
	runCmd.Flags().Int("port", 0, "port of the monitoring server, 0 for any")
	runCmd.Flags().Bool("open-browser", false,
		"open the monitoring server in a browser")

	return runCmd
}

func runSimulation(cmd *cobra.Command) error {
	freq := getFloat(cmd, "freq")
	if freq <= 0 {
		return errors.New("--freq must be positive")
	}

	domainName := getString(cmd, "domain")
	if err := naming.ValidateName(domainName); err != nil {
		return fmt.Errorf("--domain: %w", err)
	}

	name := getString(cmd, "name")
	if err := naming.ValidateName(name); err != nil {
		return fmt.Errorf("--name: %w", err)
	}

	domain := sim.NewDomain(domainName, sim.Freq(freq))

	builder := bram.MakeBuilder().
		WithDepth(getInt(cmd, "depth")).
		WithWidth(getInt(cmd, "width")).
		WithDomain(domain)
	if path := getString(cmd, "init"); path != "" {
		builder = builder.WithInitFile(path)
	}

	memory, err := builder.Build(name)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"memory": memory.Name(),
		"depth":  memory.Depth(),
		"width":  memory.Width(),
		"domain": domain.String(),
	}).Debug("memory built")

	inputs, err := readStimulusFile(cmd, getString(cmd, "stimulus"), memory.Width())
	if err != nil {
		return err
	}

	counter := trace.NewTagCounter()
	memory.AcceptHook(counter)

	if getBool(cmd, "verbose") {
		memory.AcceptHook(bram.NewCycleLogger(log.StandardLogger()))
	}

	if path := getString(cmd, "record"); path != "" {
		recorder, err := datarecording.Create(path)
		if err != nil {
			return fmt.Errorf("--record: %w", err)
		}
		defer recorder.Close()

		memory.AcceptHook(trace.NewTracer(recorder))
	}

	if getBool(cmd, "monitor") {
		bar := startMonitor(cmd, memory, uint64(len(inputs)))
		memory.AcceptHook(monitoring.CycleProgress{Bar: bar})
	}

	out := cmd.OutOrStdout()
	cycle := 0
	for w := range memory.Stream(slices.Values(inputs)) {
		fmt.Fprintf(out, "%d %s\n", cycle, w)
		cycle++
	}

	fields := log.Fields{}
	for _, tag := range counter.GetTagNames() {
		fields[tag] = counter.GetTagCount(tag)
	}

	log.WithFields(fields).Info("simulation finished")

	return nil
}

func readStimulusFile(
	cmd *cobra.Command,
	path string,
	width int,
) ([]bram.CycleInput, error) {
	var r io.Reader = cmd.InOrStdin()

	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open stimulus: %w", err)
		}
		defer f.Close()

		r = f
	}

	return bram.ReadStimulus(r, width)
}

func startMonitor(
	cmd *cobra.Command,
	memory *bram.Comp,
	cycles uint64,
) *monitoring.ProgressBar {
	monitor := monitoring.NewMonitor().WithPortNumber(getInt(cmd, "port"))
	monitor.RegisterMemory(memory)

	url := monitor.StartServer()
	if getBool(cmd, "open-browser") {
		if err := monitor.OpenBrowser(url); err != nil {
			log.WithError(err).Warn("cannot open browser")
		}
	}

	return monitor.CreateProgressBar(memory.Name(), cycles)
}
