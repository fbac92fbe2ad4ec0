package records

import (
	"github.com/montanaflynn/stats"
)

// ColumnInfo summarizes one column the way a table preview reports it
type ColumnInfo struct {
	Name     string `json:"name"`
	NonNull  int    `json:"non_null"`
	Dtype    string `json:"dtype"` // number, string, mixed or empty
	RowCount int    `json:"row_count"`
}

// ColumnStats holds descriptive statistics for a numeric column
type ColumnStats struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Q1    float64 `json:"q1"`
	Q2    float64 `json:"median"`
	Q3    float64 `json:"q3"`
	Max   float64 `json:"max"`
}

// Info reports non-missing counts and the value kind of every column
func (rs *RecordSet) Info() []ColumnInfo {
	infos := make([]ColumnInfo, 0, len(rs.Headers))
	for _, h := range rs.Headers {
		info := ColumnInfo{Name: h, RowCount: len(rs.Rows)}
		numbers, strs := 0, 0
		for _, v := range rs.Column(h) {
			switch {
			case v.IsNumber():
				numbers++
			case v.IsString():
				strs++
			}
		}
		info.NonNull = numbers + strs
		switch {
		case info.NonNull == 0:
			info.Dtype = "empty"
		case strs == 0:
			info.Dtype = "number"
		case numbers == 0:
			info.Dtype = "string"
		default:
			info.Dtype = "mixed"
		}
		infos = append(infos, info)
	}
	return infos
}

// Describe computes statistics for columns whose non-missing values are all numbers
func (rs *RecordSet) Describe() ([]ColumnStats, error) {
	var out []ColumnStats
	for _, info := range rs.Info() {
		if info.Dtype != "number" {
			continue
		}
		data := make(stats.Float64Data, 0, info.NonNull)
		for _, v := range rs.Column(info.Name) {
			if v.IsNumber() {
				data = append(data, v.AsFloat64())
			}
		}
		cs, err := describeColumn(info.Name, data)
		if err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, nil
}

func describeColumn(name string, data stats.Float64Data) (ColumnStats, error) {
	cs := ColumnStats{Name: name, Count: data.Len()}
	var err error
	if cs.Mean, err = data.Mean(); err != nil {
		return cs, err
	}
	if cs.Min, err = data.Min(); err != nil {
		return cs, err
	}
	if cs.Max, err = data.Max(); err != nil {
		return cs, err
	}
	if cs.Q2, err = data.Median(); err != nil {
		return cs, err
	}
	// sample deviation and quartiles need more than one observation
	if data.Len() > 1 {
		if cs.Std, err = data.StandardDeviationSample(); err != nil {
			return cs, err
		}
		q, err := stats.Quartile(data)
		if err != nil {
			return cs, err
		}
		cs.Q1, cs.Q3 = q.Q1, q.Q3
	} else {
		cs.Q1, cs.Q3 = cs.Q2, cs.Q2
	}
	return cs, nil
}
