package bench

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MixinNetwork/sigbench/common"
)

type TimingSample struct {
	RunId        string        `msgpack:"run_id"`
	Provider     string        `msgpack:"provider"`
	Cell         Cell          `msgpack:"cell"`
	Elapsed      time.Duration `msgpack:"elapsed"`
	OpsPerSecond float64       `msgpack:"ops_per_second"`
}

func newTimingSample(runId, provider string, cell Cell, elapsed time.Duration) (*TimingSample, error) {
	if elapsed <= 0 {
		return nil, fmt.Errorf("%w: %s elapsed %d", ErrMeasurement, cell, elapsed)
	}
	return &TimingSample{
		RunId:        runId,
		Provider:     provider,
		Cell:         cell,
		Elapsed:      elapsed,
		OpsPerSecond: float64(cell.Executed()) / elapsed.Seconds(),
	}, nil
}

func (s *TimingSample) Seconds() float64 {
	return s.Elapsed.Seconds()
}

func (s *TimingSample) WriteReport(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s: took %.6f second(s)\n%s: %.2f signatures/sec\n",
		s.Cell, s.Seconds(), s.Cell, s.OpsPerSecond)
	return err
}

func WriteDump(path string, samples []*TimingSample) error {
	data, err := common.CompressMsgpackMarshal(samples)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ReadDump(path string) ([]*TimingSample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var samples []*TimingSample
	err = common.DecompressMsgpackUnmarshal(data, &samples)
	return samples, err
}
