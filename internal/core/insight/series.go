package insight

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Granularity selects the calendar bucket size for a time series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// GroupBy partitions records by the stringified value of keyField, preserving
// input order inside each partition. Records lacking the key field are
// silently excluded.
func GroupBy(records []Record, keyField string) map[string][]Record {
	groups := make(map[string][]Record)
	for _, rec := range records {
		v, ok := rec[keyField]
		if !ok || v == nil {
			continue
		}
		key := stringifyKey(v)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], rec)
	}
	return groups
}

func stringifyKey(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// bucketKey formats a timestamp into a lexicographically sortable bucket key
// so string ordering of keys equals chronological ordering.
func bucketKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityDay:
		return t.Format("2006-01-02")
	case GranularityWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	default:
		return t.Format("2006-01")
	}
}

type seriesBucket struct {
	count  int
	sum    float64
	values []float64
}

// TimeSeries aggregates records into calendar buckets of the given
// granularity. Records are normalized first; records missing the time field
// are skipped, not defaulted. Each emitted record carries the bucket key
// under "date" plus count, sum, average, min and max of valueField, sorted
// ascending by bucket key.
func TimeSeries(records []Record, timeField, valueField string, g Granularity) []Record {
	normalized := Normalize(records)
	buckets := make(map[string]*seriesBucket)

	for _, rec := range normalized {
		t, ok := rec.Time(timeField)
		if !ok {
			continue
		}
		key := bucketKey(t, g)
		b := buckets[key]
		if b == nil {
			b = &seriesBucket{}
			buckets[key] = b
		}
		v := rec.Float(valueField)
		b.count++
		b.sum += v
		b.values = append(b.values, v)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]Record, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		min, max := b.values[0], b.values[0]
		for _, v := range b.values[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		series = append(series, Record{
			"date":    key,
			"count":   b.count,
			"sum":     b.sum,
			"average": b.sum / float64(b.count),
			"min":     min,
			"max":     max,
		})
	}
	return series
}
