package aggregator

import (
	"fmt"
	"io"
)

const (
	userAgent        = "JobRadarAggregator/0.1"
	maxResponseBytes = 10 << 20
)

func readAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if lr.N <= 0 {
		return nil, fmt.Errorf("response too large")
	}
	return b, nil
}
