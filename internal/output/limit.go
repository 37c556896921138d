package output

import (
	"github.com/vegasq/csvselect/internal/query"
)

// limitSink forwards at most n rows
type limitSink struct {
	sink      query.Sink
	remaining int
}

// Limit wraps sink so that only the first n rows reach it. Later rows are
// dropped silently. n <= 0 means no limit and returns sink unchanged.
func Limit(sink query.Sink, n int) query.Sink {
	if n <= 0 {
		return sink
	}
	return &limitSink{sink: sink, remaining: n}
}

func (l *limitSink) SetHeader(columns []string) error {
	return l.sink.SetHeader(columns)
}

func (l *limitSink) AppendRow(row []string) error {
	if l.remaining == 0 {
		return nil
	}
	l.remaining--
	return l.sink.AppendRow(row)
}
