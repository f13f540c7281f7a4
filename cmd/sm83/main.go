// Command sm83 runs, disassembles and profiles programs on the
// Game Boy CPU core.
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thelolagemann/gomeboy-core/internal/cpu"
	"github.com/thelolagemann/gomeboy-core/internal/gameboy"
	"github.com/thelolagemann/gomeboy-core/internal/io"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
	"github.com/thelolagemann/gomeboy-core/pkg/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// machine holds the flags shared by the run and profile commands.
type machine struct {
	model       string
	loadAt      uint16
	startAt     uint16
	legacyTimer bool
	debug       bool
}

func (m *machine) flags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&m.model, "model", "DMG", "Hardware model (DMG, MGB, SGB, SGB2, CGB)")
	cmd.Flags().Uint16Var(&m.loadAt, "load-at", 0x0000, "Address to load the image at")
	cmd.Flags().Uint16Var(&m.startAt, "start-at", 0x0100, "Address to start execution at")
	cmd.Flags().BoolVar(&m.legacyTimer, "legacy-timer", false, "Use the legacy timer frequency table")
	cmd.Flags().BoolVarP(&m.debug, "debug", "d", false, "Log every executed instruction")
}

// load reads the image at path and returns a GameBoy ready to run it.
func (m *machine) load(path string) (*gameboy.GameBoy, error) {
	image, err := utils.LoadFile(path)
	if err != nil {
		return nil, err
	}

	logger := log.New()
	if m.debug {
		logger = log.NewWithLevel(logrus.DebugLevel)
	}

	opts := []gameboy.Opt{
		gameboy.AsModel(types.StringToModel(m.model)),
		gameboy.WithLogger(logger),
		gameboy.LoadAt(m.loadAt),
		gameboy.StartAt(m.startAt),
	}
	if m.legacyTimer {
		opts = append(opts, gameboy.WithTimerFrequencies(types.LegacyTimerFrequencies))
	}
	if m.debug {
		opts = append(opts, gameboy.Debug())
	}

	return gameboy.New(image, opts...)
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "sm83",
		Short:        "Game Boy CPU core harness",
		SilenceUsage: true,
	}

	// run command
	var m machine
	var steps int

	runCmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Run an image until the CPU halts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gb, err := m.load(args[0])
			if err != nil {
				return err
			}

			n, err := gb.RunUntilHalt(steps)
			if err != nil && !errors.Is(err, gameboy.ErrStepLimit) {
				return err
			}

			c := gb.CPU
			fmt.Printf("Model:       %s (%dHz)\n", gb.Model(), c.ClockSpeed())
			fmt.Printf("Steps:       %d (%d cycles)\n", n, gb.Cycles())
			fmt.Printf("Halted:      %v  Stopped: %v  IME: %v\n", c.Halted(), c.Stopped(), c.IME())
			fmt.Printf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X\n",
				c.AF.Uint16(), c.BC.Uint16(), c.DE.Uint16(), c.HL.Uint16(), c.SP, c.PC)
			fmt.Printf("DIV=%02X TIMA=%02X TMA=%02X TAC=%02X IF=%02X IE=%02X\n",
				gb.Bus.Read(types.DIV), gb.Bus.Read(types.TIMA), gb.Bus.Read(types.TMA),
				gb.Bus.Read(types.TAC), gb.Bus.Read(types.IF), gb.Bus.Read(types.IE))
			fmt.Printf("Fingerprint: %016x\n", c.Fingerprint())
			fmt.Printf("Memory:      %016x\n", gb.Bus.Checksum())
			return nil
		},
	}
	m.flags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", 1_000_000, "Maximum number of steps to run")

	// disasm command
	var from, loadAt uint16
	var count int

	disasmCmd := &cobra.Command{
		Use:   "disasm [image]",
		Short: "Disassemble an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}

			image, err := utils.LoadFile(args[0])
			if err != nil {
				return err
			}
			if int(loadAt)+len(image) > 0x10000 {
				return fmt.Errorf("image of %d bytes does not fit at %04X", len(image), loadAt)
			}

			bus := io.NewBus()
			bus.Load(loadAt, image)

			for _, d := range cpu.Disassemble(bus, from, count) {
				raw := make([]byte, 0, 3)
				for addr := d.PC; addr != d.Next; addr++ {
					raw = append(raw, bus.Read(addr))
				}
				fmt.Printf("%04X  %-9X %-20s ; %d\n", d.PC, raw, d, d.Cycles)
			}
			return nil
		},
	}
	disasmCmd.Flags().Uint16Var(&from, "from", 0x0100, "Address to start disassembling at")
	disasmCmd.Flags().Uint16Var(&loadAt, "load-at", 0x0000, "Address to load the image at")
	disasmCmd.Flags().IntVarP(&count, "count", "n", 32, "Number of instructions to disassemble")

	// profile command
	var pm machine
	var profileSteps, top int
	var output string

	profileCmd := &cobra.Command{
		Use:   "profile [image]",
		Short: "Plot how often each instruction is executed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gb, err := pm.load(args[0])
			if err != nil {
				return err
			}

			counts, err := profile(gb, profileSteps)
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				return errors.New("no instructions were executed")
			}
			if top > 0 && len(counts) > top {
				counts = counts[:top]
			}

			for _, c := range counts {
				fmt.Printf("%8d  %s\n", c.n, c.name)
			}
			if output == "" {
				return nil
			}
			if err := plotProfile(counts, output); err != nil {
				return err
			}
			fmt.Printf("Written to %s\n", output)
			return nil
		},
	}
	pm.flags(profileCmd)
	profileCmd.Flags().IntVar(&profileSteps, "steps", 1_000_000, "Number of steps to profile")
	profileCmd.Flags().IntVar(&top, "top", 20, "Number of instructions to report (0 = all)")
	profileCmd.Flags().StringVarP(&output, "output", "o", "", "Output PNG file path")

	rootCmd.AddCommand(runCmd, disasmCmd, profileCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type instructionCount struct {
	name string
	n    int
}

// profile steps gb, counting the instructions executed, and returns
// them sorted by frequency. The profile ends early when the CPU halts
// with nothing left to wake it.
func profile(gb *gameboy.GameBoy, steps int) ([]instructionCount, error) {
	seen := make(map[string]int)
	for i := 0; i < steps; i++ {
		if !gb.CPU.Halted() && !gb.CPU.Stopped() && !gb.CPU.IsInterrupt() {
			d, err := gb.CPU.Decode(gb.CPU.PC)
			if err != nil {
				return nil, err
			}
			seen[d.Instruction.Name()]++
		}
		if _, err := gb.Step(); err != nil {
			return nil, err
		}
		if gb.CPU.Halted() && !gb.Interrupts.HasInterrupts() && gb.Bus.Read(types.IE) == 0 {
			break
		}
	}

	counts := make([]instructionCount, 0, len(seen))
	for name, n := range seen {
		counts = append(counts, instructionCount{name, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].n == counts[j].n {
			return counts[i].name < counts[j].name
		}
		return counts[i].n > counts[j].n
	})
	return counts, nil
}

// plotProfile saves a bar chart of counts as a PNG.
func plotProfile(counts []instructionCount, path string) error {
	p := plot.New()
	p.Title.Text = "Executed instructions"
	p.Y.Label.Text = "Count"

	values := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.n)
		names[i] = c.name
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 1.2

	return p.Save(vg.Length(len(counts)+4)*vg.Centimeter, 10*vg.Centimeter, path)
}
