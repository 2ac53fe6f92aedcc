// SPDX-License-Identifier: MIT

package shapley

import (
	"encoding/json"
	"time"

	"github.com/IDEAL-Lab/shapley-value-simple-game/owner"
)

// seconds wraps time.Duration so it serializes as a plain number of
// seconds.
type seconds time.Duration

func (s seconds) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(s).Seconds())
}

func (s *seconds) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = seconds(time.Duration(f * float64(time.Second)))
	return nil
}

// SVResult is the aggregate outcome of a Shapley-value run: the merged
// per-owner values plus timing breakdown, with durations encoded as
// seconds in the serialized form.
type SVResult struct {
	ShapleyValues Values  `json:"shapley_values"`
	TotalTime     seconds `json:"total_time"`
	AvgTime       seconds `json:"avg_time"`
	LoadTime      seconds `json:"load_time"`
	SVCalTime     seconds `json:"sv_cal_time"`
	NumOfOwners   int     `json:"num_of_owners"`
}

// NewSVResult builds a result from timing measurements and the values
// produced by a run across every game in a dataset. avgTime is total
// elapsed divided evenly across the number of distinct owners observed.
func NewSVResult(values Values, totalTime, loadTime, svCalTime time.Duration) SVResult {
	n := len(values)
	avg := time.Duration(0)
	if n > 0 {
		avg = totalTime / time.Duration(n)
	}
	return SVResult{
		ShapleyValues: values,
		TotalTime:     seconds(totalTime),
		AvgTime:       seconds(avg),
		LoadTime:      seconds(loadTime),
		SVCalTime:     seconds(svCalTime),
		NumOfOwners:   n,
	}
}

// MarshalJSON renders ShapleyValues with string-keyed owner ids, since JSON
// object keys must be strings and owner.ID is a numeric type.
func (r SVResult) MarshalJSON() ([]byte, error) {
	values := make(map[string]float64, len(r.ShapleyValues))
	for id, v := range r.ShapleyValues {
		values[owner.NewSet(id).String()] = v
	}

	type alias SVResult
	return json.Marshal(struct {
		ShapleyValues map[string]float64 `json:"shapley_values"`
		alias
	}{ShapleyValues: values, alias: alias(r)})
}
