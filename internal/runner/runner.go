// Package runner prints the reference fuel figures and the accumulated fuel
// for every module listed in an input file.
package runner

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/big"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/fuel-calculator/internal/fuel"
)

// DefaultInputPath is the module manifest read from the working directory.
const DefaultInputPath = "modules.txt"

var (
	sampleMasses    = []int{12, 14, 1969, 100756}
	sampleRecursive = []int{14, 100756}
)

// Runner drives a single batch computation.
type Runner struct {
	calculator fuel.Calculator
	logger     *zap.Logger
}

// New constructs a Runner. A nil logger is replaced with a no-op logger.
func New(calc fuel.Calculator, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		calculator: calc,
		logger:     logger,
	}
}

// Run writes the sample figures to w, then sums the module totals for every
// mass in the file at path. The final "Acc:" line is only written when the
// whole file was read and parsed.
func (r *Runner) Run(w io.Writer, path string) error {
	if err := r.writeSamples(w); err != nil {
		return err
	}

	acc, err := r.accumulate(path)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Acc: %s\n", acc); err != nil {
		return fmt.Errorf("write total: %w", err)
	}
	return nil
}

func (r *Runner) writeSamples(w io.Writer) error {
	for _, mass := range sampleMasses {
		if _, err := fmt.Fprintf(w, "%d: %d\n", mass, r.calculator.Base(mass)); err != nil {
			return fmt.Errorf("write sample: %w", err)
		}
	}
	for _, mass := range sampleRecursive {
		if _, err := fmt.Fprintf(w, "r%d: %d\n", mass, r.calculator.Total(mass)); err != nil {
			return fmt.Errorf("write sample: %w", err)
		}
	}
	return nil
}

// accumulate parses masses as arbitrary-precision integers so no line is
// rejected for its size alone.
func (r *Runner) accumulate(path string) (*big.Int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open module list: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	acc := new(big.Int)
	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		text := strings.TrimSpace(scanner.Text())
		mass, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, &ParseError{Line: lines, Text: text, Err: errNotInteger}
		}
		acc.Add(acc, r.total(mass))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read module list: %w", err)
	}

	r.logger.Debug("module list processed",
		zap.String("path", path),
		zap.Int("modules", lines),
		zap.Stringer("total_fuel", acc),
	)
	return acc, nil
}

// total uses the calculator when the mass fits an int.
func (r *Runner) total(mass *big.Int) *big.Int {
	if mass.IsInt64() {
		if m := mass.Int64(); m >= math.MinInt && m <= math.MaxInt {
			return big.NewInt(int64(r.calculator.Total(int(m))))
		}
	}
	return fuel.TotalBig(mass)
}
